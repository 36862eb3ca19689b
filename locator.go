package shifter

import (
	"errors"
	"fmt"
	"reflect"
)

// Locator is a service locator view of a container.
//
// Unlike Container.Resolve, the located instance must be exactly of the requested type:
// locating an interface fails even when an implementation is registered under it.
type Locator struct {
	container *Container
}

// NewLocator creates a locator resolving from container.
func NewLocator(container *Container) *Locator {
	return &Locator{container: container}
}

// GetInstance resolves t and checks the instance is exactly a t.
func (l *Locator) GetInstance(t reflect.Type) (any, error) {
	resolved, err := l.container.Resolve(t)
	if err != nil {
		return nil, activationFailed(t, "", err)
	}
	return checkExactType(t, "", resolved)
}

// GetNamedInstance returns the instance registered under key, which must be exactly a t.
// An empty key resolves by type.
func (l *Locator) GetNamedInstance(t reflect.Type, key string) (any, error) {
	if key == "" {
		return l.GetInstance(t)
	}
	resolved, err := l.container.ResolveNamed(key)
	if err != nil {
		return nil, activationFailed(t, key, err)
	}
	return checkExactType(t, key, resolved)
}

// GetService is GetInstance, for callers expecting a service provider.
func (l *Locator) GetService(t reflect.Type) (any, error) {
	return l.GetInstance(t)
}

// GetAllInstances returns every value registered under t, as ResolveAll does.
func (l *Locator) GetAllInstances(t reflect.Type) ([]any, error) {
	if t == nil {
		return nil, invalidArgument("cannot locate a nil type")
	}
	return l.container.ResolveAll(t), nil
}

// GetInstance resolves T and checks the instance is exactly a T.
func GetInstance[T any](l *Locator) (T, error) {
	var zero T
	resolved, err := l.GetInstance(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	return unReflect[T](resolved)
}

// GetNamedInstance returns the instance registered under key, which must be exactly a T.
func GetNamedInstance[T any](l *Locator, key string) (T, error) {
	var zero T
	resolved, err := l.GetNamedInstance(TypeOf[T](), key)
	if err != nil {
		return zero, err
	}
	return unReflect[T](resolved)
}

// GetAllInstances returns the values registered under T which are T values.
func GetAllInstances[T any](l *Locator) ([]T, error) {
	all, err := l.GetAllInstances(TypeOf[T]())
	if err != nil {
		return nil, err
	}
	var typed []T
	for _, v := range all {
		if t, ok := v.(T); ok {
			typed = append(typed, t)
		}
	}
	return typed, nil
}

// activationFailed turns a missing or incompatible registration into an *ActivationError,
// other errors, invalid arguments included, are only wrapped.
func activationFailed(t reflect.Type, key string, err error) error {
	if errors.Is(err, ErrNotRegistered) || errors.Is(err, ErrIncompatibleRegistration) {
		return &ActivationError{Type: t, Name: key, Cause: err}
	}
	return fmt.Errorf("failed to locate %s:\n\t%w", describeKey(t, key), err)
}

func checkExactType(t reflect.Type, key string, resolved any) (any, error) {
	if actual := reflect.TypeOf(resolved); actual != t {
		return nil, &ActivationError{
			Type:  t,
			Name:  key,
			Cause: &IncompatibleRegistrationError{Key: t, Actual: actual},
		}
	}
	return resolved, nil
}
