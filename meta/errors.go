package meta

import "errors"

// ErrInvalidDeclaration is matched by every error returned when a declaration cannot be recorded.
var ErrInvalidDeclaration = errors.New("invalid declaration")
