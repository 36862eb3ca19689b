package shifter

import (
	"fmt"
	"reflect"

	"github.com/a-peyrard/shifter/fn"
	"github.com/a-peyrard/shifter/meta"
	"github.com/a-peyrard/shifter/slices"
)

// selectConstructor picks the constructor to build t:
// the single marked one, else the first visible one, else the zero value allocator.
func selectConstructor(inspector meta.Inspector, t reflect.Type, resolvePrivate bool) (meta.Constructor, error) {
	visible := slices.Filter(inspector.Constructors(t), isVisible[meta.Constructor](resolvePrivate))
	marked := slices.Filter(visible, isInjectable[meta.Constructor])

	switch {
	case len(marked) > 1:
		return meta.Constructor{}, fmt.Errorf(
			"%w: %s has %d constructors marked for injection, expected at most one",
			ErrUnsupportedConfiguration, t, len(marked),
		)
	case len(marked) == 1:
		return marked[0], nil
	case len(visible) > 0:
		return visible[0], nil
	}

	if zero, ok := inspector.ZeroConstructor(t); ok {
		return zero, nil
	}
	return meta.Constructor{}, &NotRegisteredError{Type: t, Reason: "no usable constructor"}
}

type member interface {
	meta.Constructor | meta.Field | meta.Property | meta.Method
}

// selectMembers keeps the members marked for injection and visible under the options.
func selectMembers[M member](members []M, resolvePrivate bool) []M {
	return slices.Filter(members, fn.And[M](isInjectable[M], isVisible[M](resolvePrivate)))
}

func isInjectable[M member](m M) bool {
	return memberOf(m).Injectable
}

func isVisible[M member](resolvePrivate bool) fn.Predicate[M] {
	return func(m M) bool {
		return resolvePrivate || memberOf(m).IsPublic()
	}
}

func memberOf[M member](m M) meta.Member {
	switch m := any(m).(type) {
	case meta.Constructor:
		return m.Member
	case meta.Field:
		return m.Member
	case meta.Property:
		return m.Member
	case meta.Method:
		return m.Member
	}
	return meta.Member{}
}
