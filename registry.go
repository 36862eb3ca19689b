package shifter

import (
	"errors"
	"fmt"
)

type (
	// Registry records declarations in a container, shifter-gen implements it from annotations.
	Registry interface {
		Declare(c *Container) error
	}

	// EmptyRegistry is embedded in the struct receiving the generated Declare method.
	EmptyRegistry struct{}
)

func (EmptyRegistry) Declare(*Container) error {
	return nil
}

// Install declares every registry in the container.
func (c *Container) Install(registries ...Registry) error {
	var errs []error
	for _, registry := range registries {
		if err := registry.Declare(c); err != nil {
			errs = append(errs, fmt.Errorf("failed to install registry %T:\n\t%w", registry, err))
		}
	}
	return errors.Join(errs...)
}
