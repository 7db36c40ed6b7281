package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/salesqueen/internal/geo"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/report"
	"github.com/nao1215/salesqueen/internal/store"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "salesqueen"

	// DefaultStorage keeps the project in a local SQLite file so that
	// revisions survive between runs.
	DefaultStorage = store.KindSQLite

	// DefaultStrategy is the catalog estimator.
	DefaultStrategy = pricing.StrategyCatalog

	// DefaultProvider needs no API key or network.
	DefaultProvider = geo.ProviderMock

	// DefaultTimeout bounds each location lookup request.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies salesqueen to Nominatim, which rejects
	// anonymous clients.
	DefaultUserAgent = "salesqueen/1.0 (+https://github.com/nao1215/salesqueen)"

	// DefaultFormat is the plain text report.
	DefaultFormat = report.FormatText
)

// Config holds all configuration options.
// It is populated once at startup and passed to commands explicitly.
type Config struct {
	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit configuration file. When empty the
	// tool looks for .salesqueen in the current and home directories.
	ConfigFilePath string

	// Ephemeral keeps the project in memory only, for a throwaway session.
	// It overrides Storage.
	Ephemeral bool

	// Storage selects the persistence backend.
	Storage store.Kind

	// DataDir is the directory of the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/salesqueen on Linux).
	DataDir string

	// RedisURL is the redis:// URL used by the redis backend.
	RedisURL string

	// Strategy selects the quoting mode used by estimates and reports.
	Strategy pricing.Strategy

	// Provider selects the location lookup service.
	Provider geo.Provider

	// GoogleAPIKey is the Maps Platform key for the google provider.
	GoogleAPIKey string

	// GeoBaseURL overrides the lookup endpoint, mostly for self-hosted Nominatim.
	GeoBaseURL string

	// Timeout bounds each lookup request.
	Timeout time.Duration

	// Radius is the nearby search radius in meters.
	Radius int

	// UserAgent is sent with lookup requests.
	UserAgent string

	// Format is the default report format.
	Format report.Format
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Storage:   DefaultStorage,
		DataDir:   XDGDataDir(),
		Strategy:  DefaultStrategy,
		Provider:  DefaultProvider,
		Timeout:   DefaultTimeout,
		Radius:    geo.DefaultRadius,
		UserAgent: DefaultUserAgent,
		Format:    DefaultFormat,
	}
}

// XDGDataDir returns the XDG data directory for salesqueen.
// On Linux: ~/.local/share/salesqueen
// On macOS: ~/Library/Application Support/salesqueen
// On Windows: %LOCALAPPDATA%\salesqueen
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for salesqueen.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StoreOptions returns the backend selection for store.Open.
func (c *Config) StoreOptions() store.OpenOptions {
	kind := c.Storage
	if c.Ephemeral {
		kind = store.KindMemory
	}
	return store.OpenOptions{
		Kind:     kind,
		Dir:      c.DataDir,
		RedisURL: c.RedisURL,
	}
}

// GeoOptions returns the locator selection for geo.New.
func (c *Config) GeoOptions() geo.Options {
	return geo.Options{
		Provider:  c.Provider,
		APIKey:    c.GoogleAPIKey,
		BaseURL:   c.GeoBaseURL,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout,
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if !c.Ephemeral {
		switch c.Storage {
		case store.KindSQLite:
			if c.DataDir == "" {
				return ErrMissingDataDir
			}
		case store.KindRedis:
			if c.RedisURL == "" {
				return ErrMissingRedisURL
			}
		case store.KindMemory:
		default:
			return ErrInvalidStorage
		}
	}

	if _, err := pricing.ParseStrategy(string(c.Strategy)); err != nil {
		return ErrInvalidStrategy
	}

	switch c.Provider {
	case geo.ProviderGoogle:
		if c.GoogleAPIKey == "" {
			return ErrMissingAPIKey
		}
	case geo.ProviderOSM, geo.ProviderMock:
	default:
		return ErrInvalidProvider
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Radius <= 0 {
		return ErrInvalidRadius
	}

	switch c.Format {
	case report.FormatText, report.FormatJSON, report.FormatMarkdown:
	default:
		return ErrInvalidFormat
	}

	return nil
}
