package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nao1215/salesqueen/internal/geo"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/report"
	"github.com/nao1215/salesqueen/internal/store"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".salesqueen"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SALESQUEEN_"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .salesqueen configuration file.
// Empty values leave the current setting unchanged.
type File struct {
	Storage StorageSection `yaml:"storage,omitempty"`
	Pricing PricingSection `yaml:"pricing,omitempty"`
	Geo     GeoSection     `yaml:"geo,omitempty"`
	Report  ReportSection  `yaml:"report,omitempty"`
}

// StorageSection configures persistence.
type StorageSection struct {
	Backend  string `yaml:"backend,omitempty"`
	Dir      string `yaml:"dir,omitempty"`
	RedisURL string `yaml:"redisURL,omitempty"`
}

// PricingSection configures estimates.
type PricingSection struct {
	Strategy string `yaml:"strategy,omitempty"`
}

// GeoSection configures location lookup.
type GeoSection struct {
	Provider  string `yaml:"provider,omitempty"`
	APIKey    string `yaml:"apiKey,omitempty"`
	BaseURL   string `yaml:"baseURL,omitempty"`
	UserAgent string `yaml:"userAgent,omitempty"`
	// Timeout is a Go duration string such as "10s".
	Timeout string `yaml:"timeout,omitempty"`
	Radius  int    `yaml:"radius,omitempty"`
}

// ReportSection configures report output.
type ReportSection struct {
	Format string `yaml:"format,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .salesqueen in the current directory
// 3. Look for .salesqueen in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// ApplyFile overlays the non-empty values of f onto c.
func (c *Config) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}
	setString((*string)(&c.Storage), f.Storage.Backend)
	setString(&c.DataDir, f.Storage.Dir)
	setString(&c.RedisURL, f.Storage.RedisURL)
	setString((*string)(&c.Strategy), f.Pricing.Strategy)
	setString((*string)(&c.Provider), f.Geo.Provider)
	setString(&c.GoogleAPIKey, f.Geo.APIKey)
	setString(&c.GeoBaseURL, f.Geo.BaseURL)
	setString(&c.UserAgent, f.Geo.UserAgent)
	setString((*string)(&c.Format), f.Report.Format)
	if f.Geo.Radius != 0 {
		c.Radius = f.Geo.Radius
	}
	if f.Geo.Timeout != "" {
		d, err := time.ParseDuration(f.Geo.Timeout)
		if err != nil {
			return fmt.Errorf("geo.timeout: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// ApplyEnv overlays SALESQUEEN_* variables found by lookup onto c.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return v, ok && v != ""
	}

	if v, ok := get("STORAGE"); ok {
		c.Storage = store.Kind(v)
	}
	if v, ok := get("DATA_DIR"); ok {
		c.DataDir = v
	}
	if v, ok := get("REDIS_URL"); ok {
		c.RedisURL = v
	}
	if v, ok := get("STRATEGY"); ok {
		c.Strategy = pricing.Strategy(v)
	}
	if v, ok := get("GEO_PROVIDER"); ok {
		c.Provider = geo.Provider(v)
	}
	if v, ok := get("GOOGLE_API_KEY"); ok {
		c.GoogleAPIKey = v
	}
	if v, ok := get("GEO_BASE_URL"); ok {
		c.GeoBaseURL = v
	}
	if v, ok := get("FORMAT"); ok {
		c.Format = report.Format(v)
	}
	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Timeout = d
	}
	if v, ok := get("RADIUS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRADIUS: %w", EnvPrefix, err)
		}
		c.Radius = n
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
