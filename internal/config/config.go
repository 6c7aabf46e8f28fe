// Package config holds the planner's runtime configuration.
package config

import (
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Configuration is the full runtime configuration, populated from defaults,
// environment variables, and command line flags, in that order.
type Configuration struct {
	Server  Server  `validate:"required"`
	Planner Planner `validate:"required"`
	Auth    Auth
}

// Server configures the HTTP API.
type Server struct {
	HTTPPort      int    `default:"8000" validate:"gte=1,lte=65535"`
	ServerMode    string `default:"dev" validate:"oneof=dev prod"`
	StaticsFolder string `default:"/app/www"`
}

// Planner configures the evaluation engine and its storage.
type Planner struct {
	NumWorkers       int    `default:"3" validate:"gte=1"`
	DataFolder       string `default:"/var/lib/capacity-planner"`
	DatabaseFilepath string `default:"/var/lib/capacity-planner/planner.db"`
}

// Auth configures bearer token authentication on the API.
type Auth struct {
	Enabled     bool   `default:"false"`
	JWTFilePath string `default:""`
}

// NewConfigurationWithOptionsAndDefaults returns a configuration with all
// defaults applied.
func NewConfigurationWithOptionsAndDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks the configuration against its struct constraints.
func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}
