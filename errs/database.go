package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failed")
)

// Storage specific errors, all of which also match ErrPersistence
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageQuotaFull   = errors.New("storage quota full")
	ErrCorruptRecord      = errors.New("corrupt record")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewPersistenceError wraps a failure of the underlying key-value store
func NewPersistenceError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(errStr, "quota") || strings.Contains(errStr, "no space"):
			return &ApiErr{
				StatusCode: http.StatusInsufficientStorage,
				err:        fmt.Errorf("%w: %w", ErrPersistence, ErrStorageQuotaFull),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        fmt.Errorf("%w: %w", ErrPersistence, ErrStorageUnavailable),
				Details:    details,
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrPersistence,
		Details:    details,
		Cause:      cause,
	}
}

// NewCorruptRecordError reports a stored value that could not be decoded
func NewCorruptRecordError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("%w: %w", ErrPersistence, ErrCorruptRecord),
		Details:    fmt.Sprintf("Stored value for key %q could not be decoded", key),
		Cause:      cause,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

func IsStorageQuotaFullError(err error) bool {
	return errors.Is(err, ErrStorageQuotaFull)
}

func IsStorageUnavailableError(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
