package shifter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/a-peyrard/shifter/config"
	"github.com/a-peyrard/shifter/meta"
	"github.com/a-peyrard/shifter/option"
	"github.com/rs/zerolog"
)

const envPrefix = "SHIFTER"

type (
	// Options are fixed when the container is created.
	Options struct {
		// ResolvePrivateMembers lets the container use non exported constructors and members.
		ResolvePrivateMembers bool

		logger     zerolog.Logger
		inspector  meta.Inspector
		strategies []Strategy
	}

	// EnvOptions are the options read by NewFromEnv, from SHIFTER_* variables.
	EnvOptions struct {
		ResolvePrivateMembers bool   `mapstructure:"resolve_private_members"`
		LogLevel              string `mapstructure:"log_level"`
	}
)

// WithResolvePrivateMembers lets the container use unexported constructors and members.
func WithResolvePrivateMembers(resolve bool) option.Option[Options] {
	return func(opts *Options) {
		opts.ResolvePrivateMembers = resolve
	}
}

// WithLogger sets the logger of the container, it logs nothing by default.
func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// WithInspector replaces the catalog used to discover constructors and members.
func WithInspector(inspector meta.Inspector) option.Option[Options] {
	return func(opts *Options) {
		opts.inspector = inspector
	}
}

// WithStrategies replaces the injection pipeline, run in the given order after materialization.
func WithStrategies(strategies ...Strategy) option.Option[Options] {
	return func(opts *Options) {
		opts.strategies = strategies
	}
}

func defaultOptions() *Options {
	return &Options{
		logger:     zerolog.Nop(),
		inspector:  meta.NewCatalog(),
		strategies: DefaultStrategies(),
	}
}

// NewFromEnv creates a container configured from the environment, opts are applied on top.
func NewFromEnv(opts ...option.Option[Options]) (*Container, error) {
	envOptions, err := config.Load[EnvOptions](config.WithEnvPrefix(envPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to load container options from environment:\n\t%w", err)
	}

	var level zerolog.Level
	if envOptions.LogLevel != "" {
		if level, err = zerolog.ParseLevel(strings.ToLower(envOptions.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid log level %s:\n\t%w", envOptions.LogLevel, err)
		}
	}

	return New(
		WithResolvePrivateMembers(envOptions.ResolvePrivateMembers),
		option.When(envOptions.LogLevel != "", WithLogger(newConsoleLogger(os.Stderr, level))),
		option.Merge(opts...),
	), nil
}

func newConsoleLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("component", "shifter").
		Logger()
}
