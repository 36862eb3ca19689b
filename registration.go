package shifter

import (
	"fmt"
	"reflect"
	"sync"
)

// registration is one entry of the container, holding either an instance or a type to build.
type registration struct {
	key      reflect.Type
	instance any
	implType reflect.Type
	name     string

	// injecting serializes the strategies applied on a shared instance.
	injecting *sync.Mutex
}

func (r registration) isType() bool {
	return r.implType != nil
}

// value is what ResolveAll and ResolveNamed hand back: the raw stored instance or type.
func (r registration) value() any {
	if r.isType() {
		return r.implType
	}
	return r.instance
}

func (r registration) String() string {
	var stored string
	if r.isType() {
		stored = fmt.Sprintf("type %s", r.implType)
	} else {
		stored = fmt.Sprintf("instance %T", r.instance)
	}
	if r.name != "" {
		return fmt.Sprintf("%s -> %s (name=%s)", r.key, stored, r.name)
	}
	return fmt.Sprintf("%s -> %s", r.key, stored)
}
