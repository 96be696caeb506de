package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API Errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidAPIKey      = errors.New("invalid API key")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// Configuration & Environment Error Constructors
func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

// NewServiceUnavailableError wraps a failed call to an outbound service
func NewServiceUnavailableError(service string, statusCode int, cause error) *ApiErr {
	err := ErrServiceUnavailable
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		err = fmt.Errorf("%w: %w", ErrServiceUnavailable, ErrInvalidAPIKey)
	}
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        err,
		Details:    fmt.Sprintf("Service %s failed (status %d)", service, statusCode),
		Cause:      cause,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) || errors.Is(err, ErrConfigMissing)
}

func IsEnvironmentVariableError(err error) bool {
	return errors.Is(err, ErrEnvironmentVariable)
}

func IsServiceUnavailableError(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}
