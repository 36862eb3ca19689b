// Package shifter is a reflection driven dependency resolution container.
//
// Values and types are registered under a key type, then resolved: types are built through
// their selected constructor, and every resolved value gets its injectable properties,
// methods and fields filled with other registered values.
package shifter

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/a-peyrard/shifter/meta"
	"github.com/a-peyrard/shifter/option"
	"github.com/a-peyrard/shifter/slices"
)

// ContainerName is the name under which a container registers itself.
const ContainerName = "shifter.container"

// Container holds the registrations, it is safe for concurrent use.
// Resolutions of the same registered instance are serialized, they all inject into it.
type Container struct {
	mu            sync.Mutex
	registrations []registration

	options Options
}

// New creates a container, registered in itself as a named *Container.
func New(opts ...option.Option[Options]) *Container {
	c := &Container{
		options: *option.Build(defaultOptions(), opts...),
	}

	// Register itself, so that constructors and members can depend on the container.
	c.MustAddNamedInstance(ContainerName, c)

	return c
}

// Options returns the options the container was created with.
func (c *Container) Options() Options {
	return c.options
}

// Declare records declarations for t in the container inspector, when it accepts declarations.
func (c *Container) Declare(t reflect.Type, decls ...meta.Declaration) error {
	declarer, ok := c.options.inspector.(meta.Declarer)
	if !ok {
		return fmt.Errorf("%w: inspector %T does not accept declarations", ErrUnsupportedConfiguration, c.options.inspector)
	}
	return declarer.Declare(t, decls...)
}

// Declare records declarations for T in the container inspector.
func Declare[T any](c *Container, decls ...meta.Declaration) error {
	return c.Declare(TypeOf[T](), decls...)
}

// AddInstance registers value under its own type.
func (c *Container) AddInstance(value any) error {
	if isNil(value) {
		return invalidArgument("cannot register a nil instance")
	}
	return c.AddInstanceAs(reflect.TypeOf(value), value)
}

// AddInstanceAs registers value under keyType, value must be assignable to it.
func (c *Container) AddInstanceAs(keyType reflect.Type, value any) error {
	if keyType == nil {
		return invalidArgument("cannot register an instance under a nil type")
	}
	if isNil(value) {
		return invalidArgument("cannot register a nil instance for %s", keyType)
	}
	if actual := reflect.TypeOf(value); !actual.AssignableTo(keyType) {
		return &IncompatibleRegistrationError{Key: keyType, Actual: actual}
	}
	c.add(registration{key: keyType, instance: value})
	return nil
}

// AddInstanceFor registers value under K.
func AddInstanceFor[K any](c *Container, value any) error {
	return c.AddInstanceAs(TypeOf[K](), value)
}

// AddType registers implType under keyType, it is built on every resolution.
func (c *Container) AddType(keyType, implType reflect.Type) error {
	if keyType == nil || implType == nil {
		return invalidArgument("cannot register a nil type")
	}
	if !implType.AssignableTo(keyType) {
		return &IncompatibleRegistrationError{Key: keyType, Actual: implType}
	}
	c.add(registration{key: keyType, implType: implType})
	return nil
}

// AddTypeFor registers I under K.
func AddTypeFor[K any, I any](c *Container) error {
	return c.AddType(TypeOf[K](), TypeOf[I]())
}

// AddNamedInstance registers value under name, and under its own type.
func (c *Container) AddNamedInstance(name string, value any) error {
	if name == "" {
		return invalidArgument("cannot register an instance with an empty name")
	}
	if isNil(value) {
		return invalidArgument("cannot register a nil instance named %s", name)
	}
	c.add(registration{key: reflect.TypeOf(value), instance: value, name: name})
	return nil
}

// MustAddInstance is like AddInstance but panics on error, it returns the container for chaining.
func (c *Container) MustAddInstance(value any) *Container {
	return c.must(c.AddInstance(value), "instance %T", value)
}

// MustAddInstanceAs is like AddInstanceAs but panics on error.
func (c *Container) MustAddInstanceAs(keyType reflect.Type, value any) *Container {
	return c.must(c.AddInstanceAs(keyType, value), "instance %T as %s", value, keyType)
}

// MustAddType is like AddType but panics on error.
func (c *Container) MustAddType(keyType, implType reflect.Type) *Container {
	return c.must(c.AddType(keyType, implType), "type %s as %s", implType, keyType)
}

// MustAddNamedInstance is like AddNamedInstance but panics on error.
func (c *Container) MustAddNamedInstance(name string, value any) *Container {
	return c.must(c.AddNamedInstance(name, value), "instance %T named %s", value, name)
}

func (c *Container) must(err error, format string, args ...any) *Container {
	if err != nil {
		panic(fmt.Sprintf("failed to register %s:\n\t%v", fmt.Sprintf(format, args...), err))
	}
	return c
}

func (c *Container) add(reg registration) {
	if !reg.isType() {
		reg.injecting = &sync.Mutex{}
	}

	c.mu.Lock()
	c.registrations = append(c.registrations, reg)
	c.mu.Unlock()

	c.options.logger.Debug().
		Stringer("key", reg.key).
		Str("name", reg.name).
		Bool("type", reg.isType()).
		Msg("registered")
}

// Resolve returns the single value registered under exactly t, built and injected.
func (c *Container) Resolve(t reflect.Type) (any, error) {
	if t == nil {
		return nil, invalidArgument("cannot resolve a nil type")
	}

	start := time.Now()
	reg, err := c.findUnique(queryByType{typ: t})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s:\n\t%w", t, err)
	}
	if reg.injecting != nil {
		reg.injecting.Lock()
		defer reg.injecting.Unlock()
	}

	ctx, err := c.contextFor(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s:\n\t%w", t, err)
	}
	instance, err := ctx.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s:\n\t%w", t, err)
	}

	c.options.logger.Debug().
		Stringer("type", t).
		Dur("duration", time.Since(start)).
		Msg("resolved")
	return instance, nil
}

// Resolve returns the single value registered under exactly T.
func Resolve[T any](c *Container) (T, error) {
	var zero T
	resolved, err := c.Resolve(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	return unReflect[T](resolved)
}

// ResolveNamed returns the value registered under name, as it was registered.
func (c *Container) ResolveNamed(name string) (any, error) {
	if name == "" {
		return nil, invalidArgument("cannot resolve an empty name")
	}
	reg, err := c.findUnique(queryByName{name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve named %s:\n\t%w", name, err)
	}
	return reg.value(), nil
}

// ResolveNamed returns the value registered under name, if it is a T.
func ResolveNamed[T any](c *Container, name string) (T, error) {
	var zero T
	resolved, err := c.ResolveNamed(name)
	if err != nil {
		return zero, err
	}
	return unReflect[T](resolved)
}

// ResolveAll returns the values registered under exactly t, in registration order.
// Registered types are returned as reflect.Type, they are never built.
func (c *Container) ResolveAll(t reflect.Type) []any {
	if t == nil {
		return nil
	}
	results, err := c.lookup(queryByType{typ: t}, validatorMultiple{})
	if err != nil {
		return nil
	}
	return slices.Map(results, registration.value)
}

// ResolveAll returns the values registered under exactly T which are T values.
func ResolveAll[T any](c *Container) []T {
	var all []T
	for _, v := range c.ResolveAll(TypeOf[T]()) {
		if typed, ok := v.(T); ok {
			all = append(all, typed)
		}
	}
	return all
}

// Unregister removes every registration under exactly t.
func (c *Container) Unregister(t reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registrations = slices.Filter(c.registrations, func(reg registration) bool {
		return reg.key != t
	})
}

// Unregister removes every registration under exactly T.
func Unregister[T any](c *Container) {
	c.Unregister(TypeOf[T]())
}

// Reset removes every registration, the container itself included.
func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registrations = nil
}

// IsTypeRegistered reports whether something is registered under exactly t.
func (c *Container) IsTypeRegistered(t reflect.Type) bool {
	return len(c.find(queryByType{typ: t})) > 0
}

func (c *Container) find(q query) []registration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Filter(c.registrations, q.want)
}

func (c *Container) lookup(q query, v validator) ([]registration, error) {
	results := c.find(q)
	if err := v.validate(q, results); err != nil {
		if len(results) > 1 {
			c.options.logger.Warn().
				Stringer("query", q).
				Stringer("validator", v).
				Int("count", len(results)).
				Msg("ambiguous lookup")
		}
		return nil, err
	}
	return results, nil
}

func (c *Container) findUnique(q query) (registration, error) {
	results, err := c.lookup(q, validatorUniqueMandatory{})
	if err != nil {
		return registration{}, err
	}
	return results[0], nil
}

func (c *Container) contextFor(reg registration) (*ResolutionContext, error) {
	if reg.isType() {
		ctx := newResolutionContext(reg.implType, c, c.options.strategies)
		if !ctx.CanCreate() {
			return nil, &NotRegisteredError{Type: reg.key, Reason: fmt.Sprintf("%s cannot be created", reg.implType)}
		}
		return ctx, nil
	}

	instance := reflect.ValueOf(reg.instance)
	if instance.Kind() == reflect.Struct {
		// struct values are injected on an addressable copy
		addressable := reflect.New(instance.Type()).Elem()
		addressable.Set(instance)
		instance = addressable
	}
	ctx := newResolutionContext(instance.Type(), c, c.options.strategies)
	if err := ctx.SetInstance(instance); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Describe returns a human readable dump of the options and registrations.
func (c *Container) Describe() string {
	c.mu.Lock()
	registrations := append([]registration(nil), c.registrations...)
	c.mu.Unlock()

	var b strings.Builder
	b.WriteString("* Options:\n")
	b.WriteString(fmt.Sprintf("\t- resolve private members: %t\n", c.options.ResolvePrivateMembers))
	b.WriteString("\t- strategies:\n")
	for _, s := range c.options.strategies {
		b.WriteString(fmt.Sprintf("\t\t- %s\n", s.Name()))
	}
	b.WriteString("* Registrations:\n")
	for _, reg := range registrations {
		b.WriteString(fmt.Sprintf("\t- %s\n", reg))
	}
	return b.String()
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func unReflect[T any](v any) (res T, err error) {
	res, ok := v.(T)
	if !ok {
		return res, fmt.Errorf("value %v is not of type %s", v, TypeOf[T]())
	}
	return res, nil
}
