package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These match the behavior of the original modcheck utility where applicable.
const (
	// DefaultAPIHost is the mod.io API host template. The %d verb is filled
	// with the numeric user ID: mod.io issues OAuth tokens bound to a
	// per-user API subdomain (u-<id>.modapi.io).
	DefaultAPIHost = "https://u-%d.modapi.io/v1"

	// DefaultGameID is the mod.io game ID for Deep Rock Galactic, the game
	// Mint manages mods for.
	DefaultGameID = 2475

	// DefaultGameSlug is the mod.io URL slug for Deep Rock Galactic.
	DefaultGameSlug = "drg"

	// DefaultTimeout is the per-request HTTP timeout. mod.io is a clearnet
	// service; 30 seconds is generous while still bounding a stuck lookup.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies modcheck in HTTP requests.
	// A descriptive User-Agent is good practice and lets mod.io operators
	// identify the traffic in their logs.
	DefaultUserAgent = "modio-modcheck/1.0 (+https://github.com/jieyouxu/modio-modcheck)"

	// AppName is the application name used for XDG directory paths.
	AppName = "modcheck"

	// AccessTokenEnv is the environment variable consulted when the
	// --access-token flag is not provided. A .env file in the working
	// directory can supply it.
	AccessTokenEnv = "MODIO_ACCESS_TOKEN"
)

// Config holds all options for one reconciliation run.
// It is populated from CLI flags (and the optional .modcheck file) and
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// UserID is the numeric mod.io user ID, used to build the per-user
	// API host (u-<id>.modapi.io).
	UserID int64

	// AccessTokenPath is the path of the file containing the OAuth2 bearer
	// token. Empty when the token comes from the environment instead.
	AccessTokenPath string

	// ModListPath is the path of the exported mod list to reconcile.
	ModListPath string

	// APIHost overrides the API host template. Primarily for tests; the
	// value is used verbatim when it does not contain a %d verb.
	APIHost string

	// GameID is the mod.io game ID the references are checked against.
	GameID int64

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is the path of the .modcheck configuration file.
	// If empty, the tool searches the current directory and then the home
	// directory.
	ConfigFilePath string

	// NoSave disables recording the run in the local history database.
	// Saving is on by default because the stored names from previous runs
	// are what makes rename detection possible.
	NoSave bool

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string

	// NoProgress suppresses the per-lookup progress lines on stdout.
	NoProgress bool
}

// NewConfig creates a new Config with default values.
// Users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		APIHost:   DefaultAPIHost,
		GameID:    DefaultGameID,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		DBDir:     XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for modcheck.
// On Linux: ~/.local/share/modcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for modcheck.
// On Linux: ~/.config/modcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Validation happens once after CLI parsing, before any file or network
// access, so that malformed invocations fail fast with a clear message.
func (c *Config) Validate() error {
	if c.UserID <= 0 {
		return ErrInvalidUserID
	}

	if c.ModListPath == "" {
		return ErrNoModList
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.GameID <= 0 {
		return ErrInvalidGameID
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
