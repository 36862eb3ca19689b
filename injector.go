package shifter

import (
	"fmt"
	"reflect"

	"github.com/a-peyrard/shifter/meta"
)

func injectConstructor(ctx *ResolutionContext, constructor meta.Constructor, args []reflect.Value) error {
	instance, err := constructor.Invoke(args)
	if err != nil {
		return fmt.Errorf("failed to invoke constructor %s:\n\t%w", constructor, err)
	}
	return ctx.SetInstance(instance)
}

func injectField(ctx *ResolutionContext, instance reflect.Value, field meta.Field) error {
	value, err := ctx.resolveDependency(field.Type)
	if err != nil {
		return fmt.Errorf("failed to resolve field %s:\n\t%w", field.Name, err)
	}
	return field.Set(instance, value)
}

func injectProperty(ctx *ResolutionContext, instance reflect.Value, property meta.Property) error {
	value, err := ctx.resolveDependency(property.Type)
	if err != nil {
		return fmt.Errorf("failed to resolve property %s:\n\t%w", property.Name, err)
	}
	return property.Set(instance, value)
}

func injectMethod(ctx *ResolutionContext, instance reflect.Value, method meta.Method) error {
	params := method.Params()
	if len(params) == 0 {
		return invalidArgument("method %s of %s has no argument to inject", method.Name, ctx.targetType)
	}

	args, err := ctx.resolveArguments(params, "method "+method.Name)
	if err != nil {
		return err
	}
	return method.Invoke(instance, args)
}
