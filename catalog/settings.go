package catalog

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

// SettingsRepository persists the site settings slot
type SettingsRepository interface {
	Find(ctx context.Context) (models.SiteSettings, error)
	Save(ctx context.Context, settings models.SiteSettings) error
}

// Settings reads and writes the owner profile shown on the site
type Settings struct {
	repo   SettingsRepository
	logger zerolog.Logger
}

func NewSettings(repo SettingsRepository) *Settings {
	return &Settings{
		repo:   repo,
		logger: log.With().Str("component", "settings").Logger(),
	}
}

func (s *Settings) Get(ctx context.Context) (models.SiteSettings, error) {
	return s.repo.Find(ctx)
}

// Save validates and stores settings, returning what was stored
func (s *Settings) Save(ctx context.Context, settings models.SiteSettings) (models.SiteSettings, error) {
	settings = trimSettings(settings)

	err := validation.ValidateStruct(&settings,
		validation.Field(&settings.SiteName, validation.Required),
		validation.Field(&settings.OwnerName, validation.Required),
		validation.Field(&settings.ContactEmail, validation.Required, is.EmailFormat),
		validation.Field(&settings.LinkedinURL, is.URL),
		validation.Field(&settings.GithubURL, is.URL),
	)
	if err != nil {
		return models.SiteSettings{}, errs.FromValidation(err, "")
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return models.SiteSettings{}, err
	}
	s.logger.Info().Str("siteName", settings.SiteName).Msg("Site settings saved")
	return settings, nil
}

func trimSettings(s models.SiteSettings) models.SiteSettings {
	s.SiteName = strings.TrimSpace(s.SiteName)
	s.OwnerName = strings.TrimSpace(s.OwnerName)
	s.OwnerTitle = strings.TrimSpace(s.OwnerTitle)
	s.AboutShort = strings.TrimSpace(s.AboutShort)
	s.ContactEmail = strings.TrimSpace(s.ContactEmail)
	s.LinkedinURL = strings.TrimSpace(s.LinkedinURL)
	s.GithubURL = strings.TrimSpace(s.GithubURL)
	return s
}
