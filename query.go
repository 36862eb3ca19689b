package shifter

import (
	"fmt"
	"reflect"
)

type (
	query interface {
		want(reg registration) bool

		fmt.Stringer
	}

	// queryByType matches the exact key, an implementation is never found through its interface.
	queryByType struct {
		typ reflect.Type
	}

	queryByName struct {
		name string
	}
)

func (q queryByType) want(reg registration) bool {
	return reg.key == q.typ
}

func (q queryByType) String() string {
	return fmt.Sprintf("<type = %s>", q.typ)
}

func (q queryByName) want(reg registration) bool {
	return reg.name != "" && reg.name == q.name
}

func (q queryByName) String() string {
	return fmt.Sprintf("<name = %s>", q.name)
}
