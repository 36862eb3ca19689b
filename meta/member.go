package meta

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/a-peyrard/shifter/reflectutils"
)

// Visibility is the Go counterpart of member accessibility: exported members are Public.
type Visibility int

const (
	Public Visibility = iota
	NonPublic
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "non-public"
}

type (
	// Member holds what the engine needs to know to select a constructor, field, property or method.
	Member struct {
		Name       string
		Visibility Visibility
		Injectable bool
	}

	// Constructor builds a value of its target type.
	Constructor struct {
		Member
		target reflect.Type
		fn     reflect.Value
	}

	// Field is a struct field of the target type (or of the struct it points to).
	Field struct {
		Member
		Type  reflect.Type
		index []int
	}

	// Property is a value set through a setter method, SetName for the property Name.
	Property struct {
		Member
		Type   reflect.Type
		setter reflect.Value
	}

	// Method is a method of the target type, its function takes the receiver as first argument.
	Method struct {
		Member
		fn reflect.Value
	}
)

// IsPublic reports whether the member is exported.
func (m Member) IsPublic() bool {
	return m.Visibility == Public
}

// Target returns the type built by the constructor.
func (c Constructor) Target() reflect.Type {
	return c.target
}

// Params returns the types of the constructor arguments.
func (c Constructor) Params() []reflect.Type {
	if !c.fn.IsValid() {
		return nil
	}
	return paramsOf(c.fn.Type(), 0)
}

// Invoke calls the constructor, a constructor without function allocates the zero value.
func (c Constructor) Invoke(args []reflect.Value) (reflect.Value, error) {
	if !c.fn.IsValid() {
		if c.target.Kind() == reflect.Pointer {
			return reflect.New(c.target.Elem()), nil
		}
		return reflect.New(c.target).Elem(), nil
	}

	results, err := call(c.fn, args, c.String())
	if err != nil {
		return reflect.Value{}, err
	}
	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	instance := results[0]
	if isNil(instance) {
		return reflect.Value{}, fmt.Errorf("constructor %s returned a nil %s", c, c.target)
	}
	if instance.Kind() == reflect.Struct {
		// struct results are copied so that their fields can be set
		addressable := reflect.New(instance.Type()).Elem()
		addressable.Set(instance)
		instance = addressable
	}
	return instance, nil
}

func (c Constructor) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, c.target)
}

// Set assigns value to the field of instance, which must be a non nil pointer or an addressable struct.
func (f Field) Set(instance reflect.Value, value reflect.Value) error {
	target := reflectutils.Deref(instance)
	if !target.IsValid() {
		return fmt.Errorf("cannot set field %s on a nil instance", f.Name)
	}
	if target.Kind() != reflect.Struct {
		return fmt.Errorf("cannot set field %s on a %s", f.Name, target.Kind())
	}
	fieldVal, err := target.FieldByIndexErr(f.index)
	if err != nil {
		return fmt.Errorf("cannot reach field %s:\n\t%w", f.Name, err)
	}
	settable, ok := reflectutils.Settable(fieldVal)
	if !ok {
		return fmt.Errorf("field %s of %s is not addressable", f.Name, target.Type())
	}
	if !value.IsValid() || !value.Type().AssignableTo(f.Type) {
		return fmt.Errorf("value of type %s is not assignable to field %s of type %s", typeName(value), f.Name, f.Type)
	}
	settable.Set(value)
	return nil
}

// Set calls the property setter on instance.
func (p Property) Set(instance reflect.Value, value reflect.Value) error {
	receiver, err := receiverFor(p.setter.Type(), instance)
	if err != nil {
		return fmt.Errorf("cannot set property %s:\n\t%w", p.Name, err)
	}
	if !value.IsValid() || !value.Type().AssignableTo(p.Type) {
		return fmt.Errorf("value of type %s is not assignable to property %s of type %s", typeName(value), p.Name, p.Type)
	}
	results, err := call(p.setter, []reflect.Value{receiver, value}, "Set"+p.Name)
	if err != nil {
		return err
	}
	return trailingError(results)
}

// Params returns the types of the method arguments, the receiver excluded.
func (m Method) Params() []reflect.Type {
	return paramsOf(m.fn.Type(), 1)
}

// Invoke calls the method on instance, a trailing non nil error result is returned.
func (m Method) Invoke(instance reflect.Value, args []reflect.Value) error {
	receiver, err := receiverFor(m.fn.Type(), instance)
	if err != nil {
		return fmt.Errorf("cannot invoke method %s:\n\t%w", m.Name, err)
	}
	results, err := call(m.fn, append([]reflect.Value{receiver}, args...), m.Name)
	if err != nil {
		return err
	}
	return trailingError(results)
}

func paramsOf(fnType reflect.Type, skip int) []reflect.Type {
	if fnType.NumIn() <= skip {
		return nil
	}
	params := make([]reflect.Type, 0, fnType.NumIn()-skip)
	for i := skip; i < fnType.NumIn(); i++ {
		params = append(params, fnType.In(i))
	}
	return params
}

// call invokes fn, turning a panic into an error as `Call` panics on bad arguments too.
func call(fn reflect.Value, args []reflect.Value, what string) (results []reflect.Value, err error) {
	if fn.Type().NumIn() != len(args) {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", what, fn.Type().NumIn(), len(args))
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic calling %s: %v", what, r)
		}
	}()
	return fn.Call(args), nil
}

func receiverFor(fnType reflect.Type, instance reflect.Value) (reflect.Value, error) {
	if fnType.NumIn() == 0 {
		return reflect.Value{}, errors.New("function has no receiver")
	}
	want := fnType.In(0)
	if !instance.IsValid() {
		return reflect.Value{}, errors.New("instance is invalid")
	}
	if instance.Type().AssignableTo(want) {
		return instance, nil
	}
	if instance.CanAddr() && instance.Addr().Type().AssignableTo(want) {
		return instance.Addr(), nil
	}
	if instance.Kind() == reflect.Pointer && !instance.IsNil() && instance.Elem().Type().AssignableTo(want) {
		return instance.Elem(), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not a receiver of type %s", instance.Type(), want)
}

func trailingError(results []reflect.Value) error {
	if len(results) == 0 {
		return nil
	}
	last := results[len(results)-1]
	if last.Type() == errorType && !last.IsNil() {
		return last.Interface().(error)
	}
	return nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	case reflect.Invalid:
		return true
	default:
		return false
	}
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "<invalid>"
	}
	return v.Type().String()
}
