package meta

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/a-peyrard/shifter/reflectutils"
)

const (
	injectTag    = "inject"
	setterPrefix = "Set"
)

type (
	// Catalog is the reflection backed Inspector, enriched with explicit declarations.
	//
	// Reflection alone discovers struct fields, exported methods and exported SetX properties.
	// Only fields tagged `inject` are injectable by default, constructors, properties and methods
	// must be declared to be used by the container.
	Catalog struct {
		mu           sync.RWMutex
		declarations map[reflect.Type]*typeDeclaration
	}

	typeDeclaration struct {
		constructors []Constructor
		properties   []Property
		methods      []Method
		fields       map[string]MemberOptions
	}
)

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		declarations: make(map[reflect.Type]*typeDeclaration),
	}
}

// Declare records declarations for T in the catalog.
func Declare[T any](catalog *Catalog, decls ...Declaration) error {
	return catalog.Declare(reflect.TypeFor[T](), decls...)
}

// Declare records declarations for t, nothing is recorded if one of them is invalid.
func (c *Catalog) Declare(t reflect.Type, decls ...Declaration) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrInvalidDeclaration)
	}
	if t.Kind() == reflect.Interface {
		return invalid(t, "interfaces have no members to declare")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	draft := c.declarationOf(t).clone()
	var errs []error
	for _, decl := range decls {
		if decl == nil {
			continue
		}
		if err := decl.apply(t, draft); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	c.declarations[t] = draft
	return nil
}

func (c *Catalog) IsConcrete(t reflect.Type) bool {
	return t != nil && t.Kind() != reflect.Interface
}

func (c *Catalog) Constructors(t reflect.Type) []Constructor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	decl, found := c.declarations[t]
	if !found {
		return nil
	}
	return append([]Constructor(nil), decl.constructors...)
}

func (c *Catalog) ZeroConstructor(t reflect.Type) (Constructor, bool) {
	if _, ok := reflectutils.DerefType(t); !ok {
		return Constructor{}, false
	}
	return Constructor{
		Member: Member{Name: "new", Visibility: Public},
		target: t,
	}, true
}

func (c *Catalog) Fields(t reflect.Type) []Field {
	structType, ok := reflectutils.DerefType(t)
	if !ok {
		return nil
	}

	c.mu.RLock()
	declared := c.declarations[t]
	c.mu.RUnlock()

	visible := reflect.VisibleFields(structType)
	fields := make([]Field, 0, len(visible))
	for _, sf := range visible {
		field := Field{
			Member: Member{
				Name:       sf.Name,
				Visibility: visibilityOf(sf.IsExported()),
				Injectable: hasInjectTag(sf),
			},
			Type:  sf.Type,
			index: sf.Index,
		}
		if declared != nil {
			if opts, found := declared.fields[sf.Name]; found {
				field.Visibility = opts.visibilityOr(field.Visibility)
				field.Injectable = field.Injectable || opts.injectable
			}
		}
		fields = append(fields, field)
	}
	return fields
}

func (c *Catalog) Properties(t reflect.Type) []Property {
	if t == nil || t.Kind() == reflect.Interface {
		return nil
	}

	var properties []Property
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if !isSetter(method) {
			continue
		}
		properties = append(properties, Property{
			Member: Member{Name: strings.TrimPrefix(method.Name, setterPrefix), Visibility: Public},
			Type:   method.Type.In(1),
			setter: method.Func,
		})
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if decl, found := c.declarations[t]; found {
		for _, declared := range decl.properties {
			properties = upsert(properties, declared, func(p Property) string { return p.Name })
		}
	}
	return properties
}

func (c *Catalog) Methods(t reflect.Type) []Method {
	if t == nil || t.Kind() == reflect.Interface {
		return nil
	}

	methods := make([]Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		methods = append(methods, Method{
			Member: Member{Name: method.Name, Visibility: Public},
			fn:     method.Func,
		})
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if decl, found := c.declarations[t]; found {
		for _, declared := range decl.methods {
			methods = upsert(methods, declared, func(m Method) string { return m.Name })
		}
	}
	return methods
}

func (c *Catalog) declarationOf(t reflect.Type) *typeDeclaration {
	if decl, found := c.declarations[t]; found {
		return decl
	}
	return &typeDeclaration{fields: make(map[string]MemberOptions)}
}

func (d *typeDeclaration) clone() *typeDeclaration {
	fields := make(map[string]MemberOptions, len(d.fields))
	for name, opts := range d.fields {
		fields[name] = opts
	}
	return &typeDeclaration{
		constructors: append([]Constructor(nil), d.constructors...),
		properties:   append([]Property(nil), d.properties...),
		methods:      append([]Method(nil), d.methods...),
		fields:       fields,
	}
}

func (d *typeDeclaration) putProperty(p Property) {
	d.properties = upsert(d.properties, p, func(p Property) string { return p.Name })
}

func (d *typeDeclaration) putMethod(m Method) {
	d.methods = upsert(d.methods, m, func(m Method) string { return m.Name })
}

func upsert[T any](members []T, member T, nameOf func(T) string) []T {
	for i, existing := range members {
		if nameOf(existing) == nameOf(member) {
			members[i] = member
			return members
		}
	}
	return append(members, member)
}

func isSetter(method reflect.Method) bool {
	return len(method.Name) > len(setterPrefix) &&
		strings.HasPrefix(method.Name, setterPrefix) &&
		method.Type.NumIn() == 2 &&
		returnsNothingOrError(method.Type)
}

func hasInjectTag(sf reflect.StructField) bool {
	value, found := sf.Tag.Lookup(injectTag)
	return found && value != "-"
}

func visibilityOf(exported bool) Visibility {
	if exported {
		return Public
	}
	return NonPublic
}

var (
	_ Inspector = (*Catalog)(nil)
	_ Declarer  = (*Catalog)(nil)
)
