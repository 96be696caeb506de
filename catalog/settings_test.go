package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-catalog-backend/database"
	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings(database.New(database.NewMemoryStore()).SettingsRepo())

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSiteSettings(), got)
}

func TestSettingsSave(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(database.New(database.NewMemoryStore()).SettingsRepo())

	in := models.DefaultSiteSettings()
	in.SiteName = "  Portfolio  "
	in.ContactEmail = "owner@example.com"
	in.GithubURL = "https://github.com/owner"

	saved, err := s.Save(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", saved.SiteName)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.SiteSettings)
		wantField string
		missing   bool
	}{
		{name: "blank site name", mutate: func(s *models.SiteSettings) { s.SiteName = " " }, wantField: "siteName", missing: true},
		{name: "bad email", mutate: func(s *models.SiteSettings) { s.ContactEmail = "nope" }, wantField: "contactEmail"},
		{name: "bad github url", mutate: func(s *models.SiteSettings) { s.GithubURL = "not a url" }, wantField: "githubUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := database.NewMemoryStore()
			s := NewSettings(database.New(store).SettingsRepo())

			in := models.DefaultSiteSettings()
			in.ContactEmail = "owner@example.com"
			tt.mutate(&in)

			_, err := s.Save(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
			assert.Equal(t, tt.missing, errs.IsMissingRequiredFieldError(err))

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantField, apiErr.Field)
			assert.Equal(t, 0, store.Puts())
		})
	}
}
