// Package ops loads and validates runtime configuration for the radar
// process.
package ops

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const (
	defaultListenAddr   = ":8000"
	defaultDBPath       = "data/news.db"
	defaultFetchTimeout = 30 * time.Second
	defaultUnitDelay    = time.Second
)

// FileConfig mirrors the JSON config layout. Every field is optional;
// zero values fall back to defaults.
type FileConfig struct {
	ListenAddr string        `json:"listenAddr"`
	DBPath     string        `json:"dbPath"`
	AdminToken string        `json:"adminToken"`
	ContactURL string        `json:"contactUrl"`
	Fetch      FetchConfig   `json:"fetch"`
	Profiling  ProfileConfig `json:"profiling"`
}

// FetchConfig tunes the fetch stage of a cycle.
type FetchConfig struct {
	TimeoutSeconds  int `json:"timeoutSeconds"`
	UnitDelayMillis int `json:"unitDelayMillis"`
}

// ProfileConfig captures the optional pyroscope hookup.
type ProfileConfig struct {
	Enabled       bool   `json:"enabled"`
	ServerAddress string `json:"serverAddress"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	ListenAddr   string
	DBPath       string
	AdminToken   string
	ContactURL   string
	FetchTimeout time.Duration
	UnitDelay    time.Duration
	Profiling    ProfileConfig
}

// Load reads a JSON config file and resolves it. An empty path yields
// pure defaults. DB_PATH and ADMIN_TOKEN environment variables
// override the file.
func Load(path string) (Loaded, error) {
	var cfg FileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Loaded{}, fmt.Errorf("parse config: %w", err)
		}
	}

	loaded := resolve(cfg)
	if err := loaded.Validate(); err != nil {
		return Loaded{}, err
	}
	return loaded, nil
}

func resolve(cfg FileConfig) Loaded {
	loaded := Loaded{
		ListenAddr:   cfg.ListenAddr,
		DBPath:       cfg.DBPath,
		AdminToken:   cfg.AdminToken,
		ContactURL:   cfg.ContactURL,
		FetchTimeout: time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		UnitDelay:    time.Duration(cfg.Fetch.UnitDelayMillis) * time.Millisecond,
		Profiling:    cfg.Profiling,
	}

	if loaded.ListenAddr == "" {
		loaded.ListenAddr = defaultListenAddr
	}
	if loaded.DBPath == "" {
		loaded.DBPath = defaultDBPath
	}
	if loaded.FetchTimeout <= 0 {
		loaded.FetchTimeout = defaultFetchTimeout
	}
	if loaded.UnitDelay <= 0 {
		loaded.UnitDelay = defaultUnitDelay
	}

	if env := os.Getenv("DB_PATH"); env != "" {
		loaded.DBPath = env
	}
	if env := os.Getenv("ADMIN_TOKEN"); env != "" {
		loaded.AdminToken = env
	}

	return loaded
}

// Validate checks the resolved configuration.
func (l Loaded) Validate() error {
	if l.FetchTimeout < time.Second {
		return fmt.Errorf("fetch timeout too small: %s", l.FetchTimeout)
	}
	if l.Profiling.Enabled && l.Profiling.ServerAddress == "" {
		return fmt.Errorf("profiling enabled without server address")
	}
	return nil
}
