// Package meta describes what the container may construct and inject for a type: constructors,
// fields, properties and methods, each with a visibility and an injectable marker.
package meta

import "reflect"

// Inspector answers the container's questions about a type.
type Inspector interface {
	// IsConcrete reports whether values of t can be built, interface kinds cannot.
	IsConcrete(t reflect.Type) bool
	// Constructors returns the constructors declared for t, in declaration order.
	Constructors(t reflect.Type) []Constructor
	// ZeroConstructor returns the zero value allocator of t, when t is a struct or a pointer to one.
	ZeroConstructor(t reflect.Type) (Constructor, bool)
	Fields(t reflect.Type) []Field
	Properties(t reflect.Type) []Property
	Methods(t reflect.Type) []Method
}

// Declarer records explicit member declarations for a type.
type Declarer interface {
	Declare(t reflect.Type, decls ...Declaration) error
}
