package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

type fakeSender struct {
	sent []Email
	err  error
}

func (f *fakeSender) Send(ctx context.Context, email Email) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, email)
	return "id", nil
}

type staticSettings models.SiteSettings

func (s staticSettings) Get(ctx context.Context) (models.SiteSettings, error) {
	return models.SiteSettings(s), nil
}

func validContact() models.ContactRequest {
	return models.ContactRequest{
		Name:    " Visitor ",
		Email:   "visitor@example.com",
		Subject: "Project question",
		Message: "Hello <there>\nSecond line",
	}
}

func TestValidateContactRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.ContactRequest)
		wantField string
	}{
		{name: "missing name", mutate: func(r *models.ContactRequest) { r.Name = "  " }, wantField: "name"},
		{name: "bad email", mutate: func(r *models.ContactRequest) { r.Email = "visitor" }, wantField: "email"},
		{name: "missing subject", mutate: func(r *models.ContactRequest) { r.Subject = " " }, wantField: "subject"},
		{name: "missing message", mutate: func(r *models.ContactRequest) { r.Message = "" }, wantField: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validContact()
			tt.mutate(&req)

			_, err := ValidateContactRequest(req)
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantField, apiErr.Field)
		})
	}

	req, err := ValidateContactRequest(validContact())
	require.NoError(t, err)
	assert.Equal(t, "Visitor", req.Name)
}

func TestNotifySendsToOwner(t *testing.T) {
	sender := &fakeSender{}
	settings := models.DefaultSiteSettings()
	settings.ContactEmail = "owner@example.com"
	n := NewContactNotifier(sender, staticSettings(settings))

	require.NoError(t, n.Notify(context.Background(), validContact()))
	require.Len(t, sender.sent, 1)

	email := sender.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, email.To)
	assert.Equal(t, "visitor@example.com", email.ReplyTo)
	assert.Equal(t, "[BA Portfolio] Project question from Visitor", email.Subject)
	assert.Contains(t, email.Html, "Hello &lt;there&gt;")
	assert.Contains(t, email.Html, "<p>Second line</p>")
}

func TestNotifyWithoutSender(t *testing.T) {
	n := NewContactNotifier(nil, staticSettings(models.DefaultSiteSettings()))
	assert.NoError(t, n.Notify(context.Background(), validContact()))

	bad := validContact()
	bad.Email = ""
	assert.True(t, errs.IsValidation(n.Notify(context.Background(), bad)))
}

func TestNotifySenderFailure(t *testing.T) {
	failure := errs.NewServiceUnavailableError("resend", 500, errors.New("boom"))
	n := NewContactNotifier(&fakeSender{err: failure}, staticSettings(models.DefaultSiteSettings()))

	err := n.Notify(context.Background(), validContact())
	assert.True(t, errs.IsServiceUnavailableError(err))
}
