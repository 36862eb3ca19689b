package shifter

import (
	"reflect"

	"github.com/a-peyrard/shifter/meta"
)

type (
	// Strategy is one step of the injection pipeline, applied on a materialized instance.
	Strategy interface {
		Name() string
		Apply(ctx *ResolutionContext) error
	}

	// PropertyStrategy sets the injectable properties through their setter.
	PropertyStrategy struct{}

	// MethodStrategy calls the injectable methods with resolved arguments.
	MethodStrategy struct{}

	// FieldStrategy sets the injectable fields.
	FieldStrategy struct{}
)

// DefaultStrategies returns the default pipeline: properties, then methods, then fields.
func DefaultStrategies() []Strategy {
	return []Strategy{PropertyStrategy{}, MethodStrategy{}, FieldStrategy{}}
}

func (PropertyStrategy) Name() string { return "property" }

func (PropertyStrategy) Apply(ctx *ResolutionContext) error {
	return applyOnMembers(ctx, meta.Inspector.Properties, injectProperty)
}

func (MethodStrategy) Name() string { return "method" }

func (MethodStrategy) Apply(ctx *ResolutionContext) error {
	return applyOnMembers(ctx, meta.Inspector.Methods, injectMethod)
}

func (FieldStrategy) Name() string { return "field" }

func (FieldStrategy) Apply(ctx *ResolutionContext) error {
	return applyOnMembers(ctx, meta.Inspector.Fields, injectField)
}

func applyOnMembers[M member](
	ctx *ResolutionContext,
	enumerate func(meta.Inspector, reflect.Type) []M,
	inject func(*ResolutionContext, reflect.Value, M) error,
) error {
	instance, err := ctx.requireInstance()
	if err != nil {
		return err
	}

	options := ctx.container.options
	for _, m := range selectMembers(enumerate(options.inspector, ctx.targetType), options.ResolvePrivateMembers) {
		if err := inject(ctx, instance, m); err != nil {
			return err
		}
	}
	return nil
}
