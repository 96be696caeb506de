package errs

import (
	"errors"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistenceErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		cause       error
		status      int
		quota       bool
		unavailable bool
	}{
		{name: "quota", cause: errors.New("QuotaExceededError"), status: http.StatusInsufficientStorage, quota: true},
		{name: "disk full", cause: errors.New("write: no space left on device"), status: http.StatusInsufficientStorage, quota: true},
		{name: "connection", cause: errors.New("dial tcp: connection refused"), status: http.StatusServiceUnavailable, unavailable: true},
		{name: "other", cause: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPersistenceError("write", "projects", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.True(t, IsPersistence(err))
			assert.Equal(t, tt.quota, IsStorageQuotaFullError(err))
			assert.Equal(t, tt.unavailable, IsStorageUnavailableError(err))
			assert.ErrorIs(t, err, tt.cause)
			assert.Contains(t, err.GetFullError(), tt.cause.Error())
		})
	}
}

func TestRequestErrorsMatchValidation(t *testing.T) {
	for _, err := range []error{
		NewValidationError("x", "bad"),
		NewMissingRequiredFieldError("title"),
		NewInvalidFieldError("url", "not a URL"),
		NewInvalidJSONError(errors.New("eof")),
		NewUnsupportedMediaTypeError("text/plain", []string{"image/*"}),
		NewMaxBodySizeExceededError(10),
	} {
		assert.True(t, IsValidation(err), err.Error())
		assert.False(t, IsNotFound(err))
	}

	err := NewMissingRequiredFieldError("title")
	assert.Equal(t, "Missing required field: title", err.Details)
	assert.True(t, IsMissingRequiredFieldError(err))
	assert.False(t, IsInvalidFieldError(err))
}

func TestFromValidation(t *testing.T) {
	type form struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	f := form{Email: "x"}
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Email, validation.Length(5, 0)),
	)
	require.Error(t, err)

	converted := FromValidation(err, "owner.")
	var apiErr *ApiErr
	require.ErrorAs(t, converted, &apiErr)
	assert.Equal(t, "owner.email", apiErr.Field)
	assert.True(t, IsInvalidFieldError(converted))

	f.Email = "valid@example.com"
	err = validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
	)
	converted = FromValidation(err, "")
	assert.True(t, IsMissingRequiredFieldError(converted))

	assert.NoError(t, FromValidation(nil, ""))
	assert.True(t, IsValidation(FromValidation(errors.New("plain"), "media[0].")))
}

func TestNotFound(t *testing.T) {
	err := NewNotFound("project")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "project not found", err.Error())
	assert.True(t, IsNotFound(err))
}
