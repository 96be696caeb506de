package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpupo63/portfolio-catalog-backend/config"
	"github.com/rpupo63/portfolio-catalog-backend/errs"
)

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// StoreConfig selects and configures a KVStore backend
type StoreConfig struct {
	Type    string
	DataDir string
	DSN     string
	Bucket  string
	Prefix  string
	Region  string
}

// StoreConfigFromEnv reads STORE_TYPE and the settings of the chosen backend
func StoreConfigFromEnv(c map[string]string) StoreConfig {
	sc := StoreConfig{
		Type:    strings.ToLower(config.GetString(c, "STORE_TYPE", StoreFile)),
		DataDir: config.GetString(c, "DATA_DIR", "data"),
		Bucket:  config.GetString(c, "S3_BUCKET", ""),
		Prefix:  config.GetString(c, "S3_PREFIX", ""),
		Region:  config.GetString(c, "AWS_REGION", "us-east-1"),
	}

	// "supa" is accepted for older deployments
	if sc.Type == "supa" {
		sc.Type = StorePostgres
	}
	if host := config.GetString(c, "SUPABASE_DB_HOST", ""); host != "" {
		sc.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host,
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", "postgres"),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
			config.GetString(c, "SUPABASE_DB_SSLMODE", "require"),
		)
	}
	return sc
}

// Open builds the configured store
func Open(ctx context.Context, sc StoreConfig) (KVStore, error) {
	switch sc.Type {
	case StoreMemory:
		return NewMemoryStore(), nil
	case StoreFile:
		store, err := NewFileStore(sc.DataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case StorePostgres:
		if sc.DSN == "" {
			return nil, errs.NewEnvironmentVariableError("SUPABASE_DB_HOST")
		}
		db, err := OpenPostgres(sc.DSN)
		if err != nil {
			return nil, errs.NewConfigError("postgres", err)
		}
		store, err := NewGormStore(db)
		if err != nil {
			return nil, errs.NewConfigError("postgres", err)
		}
		return store, nil
	case StoreS3:
		if sc.Bucket == "" {
			return nil, errs.NewEnvironmentVariableError("S3_BUCKET")
		}
		store, err := NewS3StoreFromEnv(ctx, sc.Region, sc.Bucket, sc.Prefix)
		if err != nil {
			return nil, errs.NewConfigError("s3", err)
		}
		return store, nil
	default:
		return nil, errs.NewConfigError("STORE_TYPE", fmt.Errorf("unknown store type %q", sc.Type))
	}
}
