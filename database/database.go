package database

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get when nothing was ever written
// under the key.
var ErrKeyNotFound = errors.New("key not found")

const (
	DefaultProjectsKey = "portfolio-projects"
	DefaultSettingsKey = "portfolio-settings"
)

// KVStore is the persistence primitive: raw bytes by key, always
// overwritten as a whole.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type Database struct {
	projectRepo  *ProjectRepo
	settingsRepo *SettingsRepo
}

type options struct {
	projectsKey string
	settingsKey string
}

func WithProjectsKey(key string) func(*options) {
	return func(o *options) {
		if key != "" {
			o.projectsKey = key
		}
	}
}

func WithSettingsKey(key string) func(*options) {
	return func(o *options) {
		if key != "" {
			o.settingsKey = key
		}
	}
}

// New initializes a new Database struct with each repository sharing one store
func New(store KVStore, opts ...func(*options)) Database {
	o := options{
		projectsKey: DefaultProjectsKey,
		settingsKey: DefaultSettingsKey,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return Database{
		projectRepo:  NewProjectRepo(store, o.projectsKey),
		settingsRepo: NewSettingsRepo(store, o.settingsKey),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SettingsRepo() *SettingsRepo {
	return d.settingsRepo
}
