package registry

import "github.com/a-peyrard/shifter"

//go:generate go run github.com/a-peyrard/shifter/cmd/shifter-gen
type Registry struct {
	shifter.EmptyRegistry
}
