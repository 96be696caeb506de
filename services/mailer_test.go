package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
)

func TestNewMailerRequiresConfig(t *testing.T) {
	_, err := NewMailer("", "from@example.com")
	assert.True(t, errs.IsEnvironmentVariableError(err))

	_, err = NewMailerFromConfig(map[string]string{"RESEND_API_KEY": "key"})
	assert.True(t, errs.IsEnvironmentVariableError(err))

	m, err := NewMailerFromConfig(map[string]string{"RESEND_API_KEY": "key", "RESEND_FROM_EMAIL": "from@example.com"})
	require.NoError(t, err)
	assert.Equal(t, DefaultResendEndpoint, m.endpoint)
}

func TestMailerSend(t *testing.T) {
	var got ResendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer server.Close()

	m, err := NewMailer("key", "Site <site@example.com>", WithEndpoint(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	id, err := m.Send(context.Background(), Email{To: []string{"owner@example.com"}, Subject: "Hi", Html: "<p>x</p>", ReplyTo: "v@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "email-1", id)
	assert.Equal(t, "Site <site@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "v@example.com", got.ReplyTo)
}

func TestMailerSendErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		invalidAPIKey bool
	}{
		{name: "rejected key", status: http.StatusUnauthorized, body: `{"message":"API key is invalid"}`, invalidAPIKey: true},
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			m, err := NewMailer("key", "site@example.com", WithEndpoint(server.URL))
			require.NoError(t, err)

			_, err = m.Send(context.Background(), Email{To: []string{"owner@example.com"}})
			require.Error(t, err)
			assert.True(t, errs.IsServiceUnavailableError(err))
			assert.Equal(t, tt.invalidAPIKey, errors.Is(err, errs.ErrInvalidAPIKey))
		})
	}
}

func TestMailerSendRequiresRecipient(t *testing.T) {
	m, err := NewMailer("key", "site@example.com")
	require.NoError(t, err)

	_, err = m.Send(context.Background(), Email{})
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}
