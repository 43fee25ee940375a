package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// StoreKind selects the persistence backend.
type StoreKind string

const (
	StoreSQLite    StoreKind = "sqlite"
	StoreFirestore StoreKind = "firestore"
)

// Config holds process-wide settings.
type Config struct {
	DBPath            string
	Store             StoreKind
	FirestoreProject  string
	FirestoreDatabase string
	LogLevel          string
	LogFormat         string
	HTTPAddr          string
	FetchTimeoutMs    int
}

// DefaultConfig returns a Config with sensible defaults. DBPath is left empty
// and resolved against the home directory by LoadConfig.
func DefaultConfig() Config {
	return Config{
		Store:             StoreSQLite,
		FirestoreDatabase: "(default)",
		LogLevel:          "info",
		LogFormat:         "auto",
		HTTPAddr:          ":8080",
		FetchTimeoutMs:    10000,
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("ALLOT_DB"); v != "" {
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".allot", "allot.db")
	}

	if v := os.Getenv("ALLOT_STORE"); v != "" {
		cfg.Store = StoreKind(strings.ToLower(v))
	}
	if v := os.Getenv("ALLOT_FIRESTORE_PROJECT"); v != "" {
		cfg.FirestoreProject = v
	}
	if v := os.Getenv("ALLOT_FIRESTORE_DATABASE"); v != "" {
		cfg.FirestoreDatabase = v
	}
	if v := os.Getenv("ALLOT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ALLOT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("ALLOT_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ALLOT_FETCH_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutMs = n
		}
	}

	return cfg, cfg.Validate()
}

// Validate reports settings that cannot be used together.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
	case StoreFirestore:
		if c.FirestoreProject == "" {
			return fmt.Errorf("ALLOT_FIRESTORE_PROJECT is required when ALLOT_STORE=firestore")
		}
	default:
		return fmt.Errorf("unknown store %q (expected sqlite or firestore)", c.Store)
	}
	return nil
}

// FetchTimeout bounds a single calendar load.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}
