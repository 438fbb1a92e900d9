// Package log provides secure logging functionality with automatic
// sanitization of credentials, built on top of the standard slog package.
//
// modcheck handles an OAuth2 bearer token on every request. The
// SecureHandler guarantees that the token, the Authorization header, and
// anything that looks like OAuth material never reach the log output, even
// in verbose mode where request details are logged.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("request sent",
//	    "authorization", "Bearer abc123", // Masked in output
//	    "url", "https://u-1.modapi.io/v1/me",
//	)
//
//	slog.SetDefault(logger)
package log
