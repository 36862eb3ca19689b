package hello

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Greeter formats the greetings of the playground.
type Greeter struct {
	Greeting string
	logger   zerolog.Logger
}

// NewGreeter creates a greeter saying "Hello".
//
// @constructor
func NewGreeter() *Greeter {
	return &Greeter{Greeting: "Hello", logger: zerolog.Nop()}
}

// SetLogger is called by the container once the greeter is built.
//
// @property
func (g *Greeter) SetLogger(logger *zerolog.Logger) {
	g.logger = logger.With().Str("component", "greeter").Logger()
}

func (g *Greeter) Greet(name string) string {
	g.logger.Debug().Str("name", name).Msg("greeting")
	return fmt.Sprintf("%s %s", g.Greeting, name)
}
