package shifter

import (
	"fmt"
	"reflect"
)

type (
	validator interface {
		validate(q query, results []registration) error

		fmt.Stringer
	}

	validatorUniqueMandatory struct{}

	validatorMultiple struct{}
)

func (c validatorUniqueMandatory) validate(q query, results []registration) error {
	typ, name := keyOf(q)
	if len(results) == 0 {
		return &NotRegisteredError{Type: typ, Name: name}
	}
	if len(results) > 1 {
		return &AmbiguousError{Type: typ, Name: name, Count: len(results)}
	}

	return nil
}

func (c validatorUniqueMandatory) String() string {
	return "<unique mandatory>"
}

func (c validatorMultiple) validate(query, []registration) error {
	return nil
}

func (c validatorMultiple) String() string {
	return "<multiple>"
}

func keyOf(q query) (typ reflect.Type, name string) {
	switch q := q.(type) {
	case queryByType:
		return q.typ, ""
	case queryByName:
		return nil, q.name
	}
	return nil, ""
}
