package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/config"
	"github.com/rpupo63/portfolio-catalog-backend/errs"
)

const DefaultResendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Email is one outbound message
type Email struct {
	To      []string
	Subject string
	Html    string
	ReplyTo string
}

// Mailer sends mail through the Resend API
type Mailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

type MailerOption func(*Mailer)

// WithEndpoint points the mailer at another Resend-compatible URL
func WithEndpoint(endpoint string) MailerOption {
	return func(m *Mailer) {
		m.endpoint = endpoint
	}
}

func WithHTTPClient(client *http.Client) MailerOption {
	return func(m *Mailer) {
		m.client = client
	}
}

func NewMailer(apiKey, from string, opts ...MailerOption) (*Mailer, error) {
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_API_KEY")
	}
	if from == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_FROM_EMAIL")
	}

	m := &Mailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: DefaultResendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log.With().Str("component", "mailer").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewMailerFromConfig reads RESEND_API_KEY and RESEND_FROM_EMAIL
func NewMailerFromConfig(cfg map[string]string, opts ...MailerOption) (*Mailer, error) {
	return NewMailer(
		config.GetString(cfg, "RESEND_API_KEY", ""),
		config.GetString(cfg, "RESEND_FROM_EMAIL", ""),
		opts...,
	)
}

// Send delivers email and returns the Resend message id
func (m *Mailer) Send(ctx context.Context, email Email) (string, error) {
	if len(email.To) == 0 {
		return "", errs.NewMissingRequiredFieldError("to")
	}

	payload := ResendEmailRequest{
		From:    m.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.Html,
		ReplyTo: email.ReplyTo,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", errs.NewServiceUnavailableError("resend", 0, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewServiceUnavailableError("resend", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := string(bodyBytes)
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			message = errorResp.Message
		}
		return "", errs.NewServiceUnavailableError("resend", resp.StatusCode, fmt.Errorf("resend API error: %s", message))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
		return "", nil
	}

	m.logger.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	return emailResponse.ID, nil
}
