package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// minProductionSecretLength is the shortest signing secret accepted in production.
const minProductionSecretLength = 32

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from a .env file (if present), an optional
// config.yaml and environment variables with the MESTO_ prefix.
// Environment variables take precedence over values from config files.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.env", EnvDevelopment)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("auth.token_lifetime_hours", 24*7)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("MESTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about, so keys
	// without defaults are bound explicitly.
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := resolveJWTSecret(&cfg); err != nil {
		return nil, err
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// resolveJWTSecret applies the development fallback secret and enforces a
// real secret in production.
func resolveJWTSecret(cfg *Config) error {
	if cfg.Server.IsProduction() {
		if len(cfg.Auth.JWTSecret) < minProductionSecretLength {
			return fmt.Errorf(
				"config validation failed: auth.jwt_secret must be at least %d characters in production",
				minProductionSecretLength,
			)
		}
		return nil
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = DevJWTSecret
	}
	return nil
}
