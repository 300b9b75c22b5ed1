package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/tessro/wellness/internal/logging"
)

// Validation errors.
var (
	ErrEmptyEndpoint   = errors.New("endpoint cannot be empty")
	ErrInvalidEndpoint = errors.New("endpoint must be an absolute http(s) URL")
	ErrNegativeTimeout = errors.New("request_timeout cannot be negative")
	ErrInvalidLogLevel = errors.New("log_level must be debug, info, warn, or error")
)

// ValidationError wraps a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := ValidateEndpoint(c.Endpoint); err != nil {
		return err
	}
	if c.RequestTimeout < 0 {
		return &ValidationError{
			Field:   "request_timeout",
			Value:   c.RequestTimeout.String(),
			Message: "cannot be negative",
			Err:     ErrNegativeTimeout,
		}
	}
	if c.LogLevel != "" && !logging.ValidLevel(c.LogLevel) {
		return &ValidationError{
			Field:   "log_level",
			Value:   c.LogLevel,
			Message: "must be debug, info, warn, or error",
			Err:     ErrInvalidLogLevel,
		}
	}
	return nil
}

// ValidateEndpoint checks that endpoint is an absolute http or https URL.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return &ValidationError{
			Field:   "endpoint",
			Message: "cannot be empty",
			Err:     ErrEmptyEndpoint,
		}
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{
			Field:   "endpoint",
			Value:   endpoint,
			Message: "must be an absolute http(s) URL",
			Err:     ErrInvalidEndpoint,
		}
	}
	return nil
}
