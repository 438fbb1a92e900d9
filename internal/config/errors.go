package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidUserID is returned when the --id flag is missing or not a
	// positive integer. The user ID is required to build the per-user
	// mod.io API host.
	ErrInvalidUserID = errors.New("invalid user id: provide your numeric mod.io user id with --id")

	// ErrNoModList is returned when no mod list path is specified.
	ErrNoModList = errors.New("no mod list specified: provide the exported mod list path as an argument")

	// ErrNoAccessToken is returned when neither --access-token nor the
	// MODIO_ACCESS_TOKEN environment variable provides a token.
	ErrNoAccessToken = errors.New("no access token: use --access-token <file> or set MODIO_ACCESS_TOKEN")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidGameID is returned when the game ID is not positive.
	ErrInvalidGameID = errors.New("invalid game id: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
