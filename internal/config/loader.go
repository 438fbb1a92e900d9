package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".modcheck"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified by
// the user.
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
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .modcheck in the current directory
// 3. Look for .modcheck in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
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

// LoadEnvFiles loads .env files from the working directory so that
// MODIO_ACCESS_TOKEN can be supplied without a token file. Missing files
// are not an error; existing environment variables are never overwritten.
func LoadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile) //nolint:errcheck // Missing .env files are fine
	}
}

// Apply overlays file values onto the config. CLI flags are applied after
// this, so flags win over file values, which win over built-in defaults.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.APIHost != "" {
		c.APIHost = f.APIHost
	}
	if id := f.GameID(); id > 0 {
		c.GameID = id
	}
	if f.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
}
