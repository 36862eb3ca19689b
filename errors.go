package shifter

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArgument is returned for nil values, nil types, empty names or argument-less methods.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIncompatibleRegistration is returned when a value or a type is not assignable to its key.
	ErrIncompatibleRegistration = errors.New("incompatible registration")

	// ErrNotRegistered is returned when nothing usable is registered for a request.
	ErrNotRegistered = errors.New("not registered")

	// ErrUnsupportedConfiguration is returned when a type marks more than one constructor.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")

	// ErrAmbiguous is returned when a single value is requested and several are registered.
	ErrAmbiguous = errors.New("ambiguous registration")

	// ErrActivationFailed is returned by the Locator when it cannot produce the requested service.
	ErrActivationFailed = errors.New("activation failed")
)

// NotRegisteredError tells which type (or name) could not be resolved.
type NotRegisteredError struct {
	Type   reflect.Type
	Name   string
	Reason string
}

func (e *NotRegisteredError) Error() string {
	msg := fmt.Sprintf("%s is not registered", describeKey(e.Type, e.Name))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *NotRegisteredError) Is(target error) bool {
	return target == ErrNotRegistered
}

// AmbiguousError is a NotRegisteredError flavour, for lookups matching more than one registration.
type AmbiguousError struct {
	Type  reflect.Type
	Name  string
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s is registered %d times, expected one and only one", describeKey(e.Type, e.Name), e.Count)
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous || target == ErrNotRegistered
}

// IncompatibleRegistrationError is returned when Actual cannot be registered under Key.
type IncompatibleRegistrationError struct {
	Key    reflect.Type
	Actual reflect.Type
}

func (e *IncompatibleRegistrationError) Error() string {
	return fmt.Sprintf("%s is not assignable to %s", e.Actual, e.Key)
}

func (e *IncompatibleRegistrationError) Is(target error) bool {
	return target == ErrIncompatibleRegistration
}

// ActivationError wraps the failure of the Locator, Cause keeps the container error.
type ActivationError struct {
	Type  reflect.Type
	Name  string
	Cause error
}

func (e *ActivationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("activation of %s failed", describeKey(e.Type, e.Name))
	}
	return fmt.Sprintf("activation of %s failed:\n\t%v", describeKey(e.Type, e.Name), e.Cause)
}

func (e *ActivationError) Is(target error) bool {
	return target == ErrActivationFailed
}

func (e *ActivationError) Unwrap() error {
	return e.Cause
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func describeKey(t reflect.Type, name string) string {
	switch {
	case t == nil && name == "":
		return "<nil>"
	case t == nil:
		return fmt.Sprintf("<name = %s>", name)
	case name == "":
		return fmt.Sprintf("<type = %s>", t)
	default:
		return fmt.Sprintf("<type = %s and name = %s>", t, name)
	}
}
