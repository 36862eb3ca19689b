package shifter

import "sync"

var defaultContainer = sync.OnceValue(func() *Container {
	return New()
})

// Default returns the process wide container, created on first use.
func Default() *Container {
	return defaultContainer()
}
