package reflectutils

import (
	"reflect"
	"unsafe"

	"github.com/a-peyrard/shifter/fn"
)

// WalkStruct applies a tri-consumer on all fields and nested fields of a given object.
func WalkStruct[T any](element T, consumer fn.TriConsumer[reflect.Value, reflect.Type, []string]) {
	walkStructInternal(reflect.ValueOf(element), []string{}, consumer)
}

func walkStructInternal(val reflect.Value, path []string, consumer fn.TriConsumer[reflect.Value, reflect.Type, []string]) {
	var (
		nestedVal   reflect.Value
		structField reflect.StructField
	)
	// apply the consumer
	consumer(val, val.Type(), path)

	// dereference the value
	val = Deref(val)

	if !val.IsValid() {
		return
	}

	// loop on fields
	if val.Kind() == reflect.Struct {
		typ := val.Type()
		for i := 0; i < typ.NumField(); i++ {
			structField = typ.Field(i)
			if !structField.IsExported() {
				continue
			}
			nestedVal = val.Field(i)

			walkStructInternal(nestedVal, append(path, structField.Name), consumer)
		}
	}
}

// Deref dereferences recursively a reflect.Value until it reaches a non-pointer or non-interface value
func Deref(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		return Deref(value.Elem())
	}
	return value
}

// DerefType returns the struct type behind t, if t is a struct or a pointer to a struct.
func DerefType(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	return t, true
}

// CreateNilStructs creates new struct instances for nil struct pointers
func CreateNilStructs(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer &&
		val.IsNil() &&
		typ.Elem().Kind() == reflect.Struct {

		val.Set(reflect.New(typ.Elem()))
	}
}

// Settable returns a settable view of an addressable value, even if it was obtained
// through an unexported struct field.
func Settable(val reflect.Value) (reflect.Value, bool) {
	if val.CanSet() {
		return val, true
	}
	if !val.CanAddr() {
		return reflect.Value{}, false
	}
	return reflect.NewAt(val.Type(), unsafe.Pointer(val.UnsafeAddr())).Elem(), true
}
