package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

type SettingsRepo struct {
	store KVStore
	key   string
}

func NewSettingsRepo(store KVStore, key string) *SettingsRepo {
	return &SettingsRepo{store: store, key: key}
}

// Find returns the stored site settings, or the defaults if none were saved
func (r *SettingsRepo) Find(ctx context.Context) (models.SiteSettings, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrKeyNotFound) {
		return models.DefaultSiteSettings(), nil
	}
	if err != nil {
		return models.SiteSettings{}, errs.NewPersistenceError("read", "settings", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.DefaultSiteSettings(), nil
	}

	settings := models.DefaultSiteSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.SiteSettings{}, errs.NewCorruptRecordError(r.key, err)
	}
	return settings, nil
}

// Save overwrites the stored site settings
func (r *SettingsRepo) Save(ctx context.Context, settings models.SiteSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return errs.NewPersistenceError("encode", "settings", err)
	}
	if err := r.store.Put(ctx, r.key, raw); err != nil {
		return errs.NewPersistenceError("write", "settings", err)
	}
	return nil
}
