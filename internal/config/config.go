// Package config loads and validates process configuration from the
// environment. The process refuses to start on any violation.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTesting     = "testing"
)

type Config struct {
	DatabaseURL        string `mapstructure:"DATABASE_URL" validate:"required,url"`
	AuthSecret         string `mapstructure:"BETTER_AUTH_SECRET" validate:"required,min=3"`
	AuthBaseURL        string `mapstructure:"BETTER_AUTH_URL" validate:"required,url"`
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID" validate:"required"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET" validate:"required"`
	Env                string `mapstructure:"NODE_ENV" validate:"omitempty,oneof=production development testing"`
	Port               int    `mapstructure:"PORT"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
}

// Load reads configuration from the environment. Variable names are part of
// the deployment interface and are kept as-is from the original stack.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface unset keys to Unmarshal; bind
	// each key explicitly.
	for _, key := range []string{
		"DATABASE_URL",
		"BETTER_AUTH_SECRET",
		"BETTER_AUTH_URL",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"NODE_ENV",
		"PORT",
		"REDIS_ADDR",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	v.SetDefault("NODE_ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s: failed %q", envName(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid environment: %s", strings.Join(problems, "; "))
}

func envName(field string) string {
	switch field {
	case "DatabaseURL":
		return "DATABASE_URL"
	case "AuthSecret":
		return "BETTER_AUTH_SECRET"
	case "AuthBaseURL":
		return "BETTER_AUTH_URL"
	case "GoogleClientID":
		return "GOOGLE_CLIENT_ID"
	case "GoogleClientSecret":
		return "GOOGLE_CLIENT_SECRET"
	case "Env":
		return "NODE_ENV"
	default:
		return field
	}
}

// IsProduction reports whether the process runs in the production runtime.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
