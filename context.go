package shifter

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/a-peyrard/shifter/slices"
)

// ResolutionContext carries the state of one resolution of targetType.
// The instance is set once, by the constructor or by the registration holding it.
type ResolutionContext struct {
	targetType reflect.Type
	container  *Container
	instance   reflect.Value
	strategies []Strategy
}

func newResolutionContext(targetType reflect.Type, container *Container, strategies []Strategy) *ResolutionContext {
	return &ResolutionContext{
		targetType: targetType,
		container:  container,
		strategies: strategies,
	}
}

func (ctx *ResolutionContext) TargetType() reflect.Type {
	return ctx.targetType
}

func (ctx *ResolutionContext) Container() *Container {
	return ctx.container
}

// Instance returns the instance, false until it has been set.
func (ctx *ResolutionContext) Instance() (reflect.Value, bool) {
	return ctx.instance, ctx.instance.IsValid()
}

// SetInstance sets the instance, once.
func (ctx *ResolutionContext) SetInstance(instance reflect.Value) error {
	if ctx.instance.IsValid() {
		return fmt.Errorf("instance of %s is already set", ctx.targetType)
	}
	if !instance.IsValid() {
		return invalidArgument("cannot set an invalid instance for %s", ctx.targetType)
	}
	ctx.instance = instance
	return nil
}

// CanCreate reports whether the target type can be built.
func (ctx *ResolutionContext) CanCreate() bool {
	return ctx.container.options.inspector.IsConcrete(ctx.targetType)
}

// Resolve materializes the instance if needed, then applies the strategies in order.
func (ctx *ResolutionContext) Resolve() (any, error) {
	if err := materialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to materialize %s:\n\t%w", ctx.targetType, err)
	}
	for _, strategy := range ctx.strategies {
		if err := strategy.Apply(ctx); err != nil {
			return nil, fmt.Errorf("failed to apply %s strategy on %s:\n\t%w", strategy.Name(), ctx.targetType, err)
		}
		ctx.container.options.logger.Debug().
			Stringer("type", ctx.targetType).
			Str("strategy", strategy.Name()).
			Msg("strategy applied")
	}
	return ctx.instance.Interface(), nil
}

// resolveDependency resolves a member or parameter type through the container, which must know it.
func (ctx *ResolutionContext) resolveDependency(t reflect.Type) (reflect.Value, error) {
	if !ctx.container.IsTypeRegistered(t) {
		return reflect.Value{}, &NotRegisteredError{Type: t, Reason: fmt.Sprintf("required by %s", ctx.targetType)}
	}
	resolved, err := ctx.container.Resolve(t)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(resolved), nil
}

// resolveArguments resolves the parameters of a constructor or method, stopping on the first failure.
func (ctx *ResolutionContext) resolveArguments(params []reflect.Type, of string) ([]reflect.Value, error) {
	return slices.UnsafeMap(params, func(param reflect.Type) (reflect.Value, error) {
		arg, err := ctx.resolveDependency(param)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("failed to resolve argument %s of %s:\n\t%w", param, of, err)
		}
		return arg, nil
	})
}

var errNoInstance = errors.New("no instance to inject into")

func (ctx *ResolutionContext) requireInstance() (reflect.Value, error) {
	instance, ok := ctx.Instance()
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w for %s", errNoInstance, ctx.targetType)
	}
	return instance, nil
}
