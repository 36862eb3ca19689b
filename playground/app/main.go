package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/a-peyrard/shifter"
	"github.com/a-peyrard/shifter/playground/app/config"
	"github.com/a-peyrard/shifter/playground/app/hello"
	"github.com/a-peyrard/shifter/playground/app/registry"
	"github.com/a-peyrard/shifter/runner"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	container, err := shifter.NewFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create the container")
	}
	if err := container.Install(registry.Registry{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to install the registry")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load the configuration")
	}
	container.
		MustAddInstance(&logger).
		MustAddInstance(cfg).
		MustAddType(shifter.TypeOf[*hello.Greeter](), shifter.TypeOf[*hello.Greeter]())

	if err := shifter.AddTypeFor[*hello.HelloRunner, *hello.HelloRunner](container); err != nil {
		logger.Fatal().Err(err).Msg("Failed to register the runner")
	}
	helloRunner, err := shifter.Resolve[*hello.HelloRunner](container)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to resolve the runner")
	}
	container.MustAddInstanceAs(runner.RunnableType, helloRunner)

	logger.Info().Msgf("here is what we have in the container before running:\n%s", container.Describe())

	ctx, cancel := runner.WithSyscallKillableContext(context.Background())
	defer cancel()
	if err := runner.RunRegistered(ctx, container); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("Error running app")
	}

	logger.Info().Msg("bye.")
}
