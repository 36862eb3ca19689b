package meta

import (
	"fmt"
	"reflect"

	"github.com/a-peyrard/shifter/option"
	"github.com/a-peyrard/shifter/reflectutils"
)

type (
	// Declaration records one member of a type in a Catalog.
	Declaration interface {
		apply(t reflect.Type, decl *typeDeclaration) error
	}

	declarationFunc func(t reflect.Type, decl *typeDeclaration) error

	// MemberOptions tune a declared member.
	MemberOptions struct {
		injectable bool
		visibility *Visibility
		setter     any
	}
)

func (f declarationFunc) apply(t reflect.Type, decl *typeDeclaration) error {
	return f(t, decl)
}

// Inject marks the member as injectable.
func Inject() option.Option[MemberOptions] {
	return func(opts *MemberOptions) {
		opts.injectable = true
	}
}

// AsPrivate forces the member to be non-public, whatever its Go name.
func AsPrivate() option.Option[MemberOptions] {
	return withVisibility(NonPublic)
}

// AsPublic forces the member to be public, whatever its Go name.
func AsPublic() option.Option[MemberOptions] {
	return withVisibility(Public)
}

// Setter gives the method expression used to set a property, such as (*Worker).setName.
func Setter(methodExpr any) option.Option[MemberOptions] {
	return func(opts *MemberOptions) {
		opts.setter = methodExpr
	}
}

func withVisibility(v Visibility) option.Option[MemberOptions] {
	return func(opts *MemberOptions) {
		opts.visibility = &v
	}
}

func (o MemberOptions) visibilityOr(fallback Visibility) Visibility {
	if o.visibility != nil {
		return *o.visibility
	}
	return fallback
}

// DeclareConstructor declares fn as a constructor of the type, fn returns the type and optionally an error.
func DeclareConstructor(fn any, opts ...option.Option[MemberOptions]) Declaration {
	return declarationFunc(func(t reflect.Type, decl *typeDeclaration) error {
		options := option.Build(&MemberOptions{}, opts...)

		fnVal := reflect.ValueOf(fn)
		if fnVal.Kind() != reflect.Func || fnVal.IsNil() {
			return invalid(t, "constructor must be a function, got %T", fn)
		}
		fnType := fnVal.Type()
		if fnType.IsVariadic() {
			return invalid(t, "variadic constructor %s is not supported", fnType)
		}
		switch {
		case fnType.NumOut() == 1:
		case fnType.NumOut() == 2 && fnType.Out(1) == errorType:
		default:
			return invalid(t, "constructor %s must return (%s) or (%s, error)", fnType, t, t)
		}
		if fnType.Out(0) != t {
			return invalid(t, "constructor %s returns %s", fnType, fnType.Out(0))
		}

		qualified := reflectutils.FuncName(fnVal)
		name := reflectutils.ShortFuncName(qualified)
		if name == "" {
			name = "func"
		}
		visibility := Public
		if !reflectutils.IsExportedFunc(qualified) {
			visibility = NonPublic
		}

		decl.constructors = append(decl.constructors, Constructor{
			Member: Member{
				Name:       name,
				Visibility: options.visibilityOr(visibility),
				Injectable: options.injectable,
			},
			target: t,
			fn:     fnVal,
		})
		return nil
	})
}

// DeclareProperty declares the property name, set through SetName unless a Setter is given.
func DeclareProperty(name string, opts ...option.Option[MemberOptions]) Declaration {
	return declarationFunc(func(t reflect.Type, decl *typeDeclaration) error {
		options := option.Build(&MemberOptions{}, opts...)

		var (
			setter     reflect.Value
			visibility = Public
		)
		if options.setter != nil {
			setter = reflect.ValueOf(options.setter)
			if setter.Kind() != reflect.Func || setter.IsNil() {
				return invalid(t, "setter of property %s must be a method expression, got %T", name, options.setter)
			}
			if !reflectutils.IsExportedFunc(reflectutils.FuncName(setter)) {
				visibility = NonPublic
			}
		} else {
			method, found := t.MethodByName("Set" + name)
			if !found {
				return invalid(t, "no setter Set%s for property %s", name, name)
			}
			setter = method.Func
		}

		setterType := setter.Type()
		if setterType.NumIn() != 2 || !acceptsReceiver(setterType, t) {
			return invalid(t, "setter %s of property %s must take a %s receiver and one value", setterType, name, t)
		}
		if !returnsNothingOrError(setterType) {
			return invalid(t, "setter %s of property %s must return nothing or an error", setterType, name)
		}

		decl.putProperty(Property{
			Member: Member{
				Name:       name,
				Visibility: options.visibilityOr(visibility),
				Injectable: options.injectable,
			},
			Type:   setterType.In(1),
			setter: setter,
		})
		return nil
	})
}

// DeclareMethod declares a method of the type, ref is either the name of an exported method or a method
// expression such as (*Worker).init for unexported ones.
func DeclareMethod(ref any, opts ...option.Option[MemberOptions]) Declaration {
	return declarationFunc(func(t reflect.Type, decl *typeDeclaration) error {
		options := option.Build(&MemberOptions{}, opts...)

		var (
			fn         reflect.Value
			name       string
			visibility = Public
		)
		switch r := ref.(type) {
		case string:
			method, found := t.MethodByName(r)
			if !found {
				return invalid(t, "no method %s", r)
			}
			fn, name = method.Func, r
		default:
			fn = reflect.ValueOf(ref)
			if fn.Kind() != reflect.Func || fn.IsNil() {
				return invalid(t, "method must be a name or a method expression, got %T", ref)
			}
			qualified := reflectutils.FuncName(fn)
			name = reflectutils.ShortFuncName(qualified)
			if name == "" {
				return invalid(t, "cannot name method %s, use a method expression", fn.Type())
			}
			if !reflectutils.IsExportedFunc(qualified) {
				visibility = NonPublic
			}
		}

		fnType := fn.Type()
		if !acceptsReceiver(fnType, t) {
			return invalid(t, "method %s must take a %s receiver", name, t)
		}
		if fnType.IsVariadic() {
			return invalid(t, "variadic method %s is not supported", name)
		}
		if !returnsNothingOrError(fnType) {
			return invalid(t, "method %s must return nothing or an error", name)
		}

		decl.putMethod(Method{
			Member: Member{
				Name:       name,
				Visibility: options.visibilityOr(visibility),
				Injectable: options.injectable,
			},
			fn: fn,
		})
		return nil
	})
}

// DeclareField declares options for a struct field, as an alternative to the `inject` tag.
func DeclareField(name string, opts ...option.Option[MemberOptions]) Declaration {
	return declarationFunc(func(t reflect.Type, decl *typeDeclaration) error {
		structType, ok := reflectutils.DerefType(t)
		if !ok {
			return invalid(t, "field %s declared on a non struct type", name)
		}
		if _, found := structType.FieldByName(name); !found {
			return invalid(t, "no field %s", name)
		}
		decl.fields[name] = *option.Build(&MemberOptions{}, opts...)
		return nil
	})
}

func acceptsReceiver(fnType reflect.Type, t reflect.Type) bool {
	if fnType.NumIn() == 0 {
		return false
	}
	receiver := fnType.In(0)
	if t.AssignableTo(receiver) {
		return true
	}
	// value types are injected on an addressable copy, pointer receivers are reachable
	return t.Kind() != reflect.Pointer && reflect.PointerTo(t).AssignableTo(receiver)
}

func returnsNothingOrError(fnType reflect.Type) bool {
	return fnType.NumOut() == 0 || (fnType.NumOut() == 1 && fnType.Out(0) == errorType)
}

func invalid(t reflect.Type, format string, args ...any) error {
	return fmt.Errorf("%w for %s: %s", ErrInvalidDeclaration, t, fmt.Sprintf(format, args...))
}
