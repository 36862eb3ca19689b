package config

import (
	"time"

	shconfig "github.com/a-peyrard/shifter/config"
)

// Config contains the playground configuration, read from PG_* variables.
type Config struct {
	Environment string        `mapstructure:"env"`
	Rounds      int           `mapstructure:"rounds"`
	Pause       time.Duration `mapstructure:"pause"`
	Foobar      *FoobarConfig
}

func (c *Config) ApplyDefault() {
	if c.Environment == "" {
		c.Environment = "dev"
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return shconfig.Load[Config](
		shconfig.WithEnvPrefix("PG"),
		shconfig.WithDefaultValue("rounds", 3),
		shconfig.WithDefaultValue("pause", time.Second),
	)
}
