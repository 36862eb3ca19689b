package hello

import (
	"context"
	"time"

	"github.com/a-peyrard/shifter/playground/app/config"
	"github.com/rs/zerolog"
)

// HelloRunner greets the configured name a few times, then stops.
type HelloRunner struct {
	greeter *Greeter
	config  *config.Config
	logger  zerolog.Logger
}

// NewHelloRunner creates the runner, the greeter and the configuration come from the container.
//
// @constructor inject
func NewHelloRunner(greeter *Greeter, cfg *config.Config) *HelloRunner {
	return &HelloRunner{greeter: greeter, config: cfg, logger: zerolog.Nop()}
}

// UseLogger scopes the container logger to the runner.
//
// @inject
func (r *HelloRunner) UseLogger(logger *zerolog.Logger) {
	r.logger = logger.With().Str("component", "hello").Str("env", r.config.Environment).Logger()
}

func (r *HelloRunner) Run(ctx context.Context) error {
	for round := 1; round <= r.config.Rounds; round++ {
		r.logger.Info().Int("round", round).Msg(r.greeter.Greet(r.config.Foobar.Name))
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("context cancelled, exiting early")
			return ctx.Err()
		case <-time.After(r.config.Pause):
		}
	}
	r.logger.Info().Msg("done greeting, exiting now")
	return nil
}
