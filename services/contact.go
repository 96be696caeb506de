package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

const maxContactMessageLength = 5000

// EmailSender is satisfied by *Mailer
type EmailSender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// SettingsSource supplies the address contact messages are delivered to
type SettingsSource interface {
	Get(ctx context.Context) (models.SiteSettings, error)
}

// ContactNotifier forwards contact form submissions to the site owner.
// With no sender the submission is only logged.
type ContactNotifier struct {
	sender   EmailSender
	settings SettingsSource
	logger   zerolog.Logger
}

func NewContactNotifier(sender EmailSender, settings SettingsSource) *ContactNotifier {
	return &ContactNotifier{
		sender:   sender,
		settings: settings,
		logger:   log.With().Str("component", "contact").Logger(),
	}
}

// ValidateContactRequest trims req and checks that it can be delivered
func ValidateContactRequest(req models.ContactRequest) (models.ContactRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Message, validation.Required, validation.Length(1, maxContactMessageLength)),
	)
	if err != nil {
		return models.ContactRequest{}, errs.FromValidation(err, "")
	}
	return req, nil
}

// Notify validates req and mails it to the owner's contact address
func (n *ContactNotifier) Notify(ctx context.Context, req models.ContactRequest) error {
	req, err := ValidateContactRequest(req)
	if err != nil {
		return err
	}

	if n.sender == nil {
		n.logger.Info().Str("from", req.Email).Str("subject", req.Subject).Msg("Contact message received, no mailer configured")
		return nil
	}

	settings, err := n.settings.Get(ctx)
	if err != nil {
		return err
	}

	id, err := n.sender.Send(ctx, Email{
		To:      []string{settings.ContactEmail},
		Subject: fmt.Sprintf("[%s] %s from %s", settings.SiteName, req.Subject, req.Name),
		Html:    contactHTML(req),
		ReplyTo: req.Email,
	})
	if err != nil {
		n.logger.Error().Err(err).Str("from", req.Email).Msg("Failed to forward contact message")
		return err
	}

	n.logger.Info().Str("emailId", id).Str("from", req.Email).Msg("Contact message forwarded")
	return nil
}

func contactHTML(req models.ContactRequest) string {
	var b strings.Builder
	b.WriteString("<p><strong>From:</strong> ")
	b.WriteString(html.EscapeString(req.Name))
	b.WriteString(" &lt;")
	b.WriteString(html.EscapeString(req.Email))
	b.WriteString("&gt;</p>")
	for _, line := range strings.Split(req.Message, "\n") {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}
