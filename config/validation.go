package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequireJWTSecret     bool
	RequireDBPassword    bool
	AllowSQLite          bool
	RequireStorageBucket bool
}

var requirements = map[Environment]ConfigRequirements{
	Development: {AllowSQLite: true},
	Test:        {AllowSQLite: true},
	CI:          {RequireJWTSecret: true, RequireDBPassword: true, AllowSQLite: true},
	Production:  {RequireJWTSecret: true, RequireDBPassword: true, RequireStorageBucket: true},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		add("server.port", "must be between 1 and 65535")
	}

	switch cfg.Database.Driver {
	case "postgres":
		if reqs.RequireDBPassword && cfg.Database.Password == "" {
			add("database.password", fmt.Sprintf("is required in %s", env))
		}
	case "sqlite":
		if !reqs.AllowSQLite {
			add("database.driver", fmt.Sprintf("sqlite is not allowed in %s", env))
		}
	default:
		add("database.driver", "must be postgres or sqlite")
	}

	if reqs.RequireJWTSecret && cfg.Auth.JWTSecret == "" {
		add("auth.jwt_secret", fmt.Sprintf("is required in %s", env))
	}
	if reqs.RequireStorageBucket && cfg.Storage.Bucket == "" {
		add("storage.bucket", fmt.Sprintf("is required in %s", env))
	}

	if cfg.Catalog.BaseURL == "" {
		add("catalog.base_url", "is required")
	}
	if cfg.Catalog.LookupTimeout <= 0 {
		add("catalog.lookup_timeout", "must be positive")
	}
	if cfg.Catalog.MaxConcurrent < 1 {
		add("catalog.max_concurrent", "must be at least 1")
	}
	if cfg.Session.TTL <= 0 {
		add("session.ttl", "must be positive")
	}
	if cfg.Storage.PresignExpiry <= 0 {
		add("storage.presign_expiry", "must be positive")
	}
	if cfg.RateLimit.ChatPerMinute < 0 {
		add("rate_limit.chat_per_minute", "must not be negative")
	}

	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
	}

	return nil
}
