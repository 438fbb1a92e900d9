package log

import (
	"log/slog"
	"strings"
	"testing"
)

// TestSecureHandlerSensitiveKeys tests redaction by attribute key.
func TestSecureHandlerSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		redacted bool
	}{
		{name: "authorization header", key: "Authorization", value: "Bearer abc", redacted: true},
		{name: "access token", key: "access_token", value: "abc", redacted: true},
		{name: "password", key: "password", value: "hunter2", redacted: true},
		{name: "keyword substring", key: "modio_token_path", value: "~/.token", redacted: true},
		{name: "plain key", key: "reference", value: "https://mod.io/g/drg/m/foo", redacted: false},
		{name: "primary_key not redacted", key: "primary_key", value: "42", redacted: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))
			logger.Info("test", tt.key, tt.value)

			out := buf.String()
			gotRedacted := strings.Contains(out, MaskValue)
			if gotRedacted != tt.redacted {
				t.Errorf("key %q: redacted=%v, expected %v\noutput: %s",
					tt.key, gotRedacted, tt.redacted, out)
			}
			if tt.redacted && strings.Contains(out, tt.value) {
				t.Errorf("key %q: sensitive value leaked\noutput: %s", tt.key, out)
			}
		})
	}
}

// TestSecureHandlerSensitiveValues tests redaction by value pattern.
func TestSecureHandlerSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		redacted bool
	}{
		{
			name:     "jwt",
			value:    "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.abc123",
			redacted: true,
		},
		{name: "bearer value", value: "Bearer sometoken", redacted: true},
		{name: "long opaque key", value: strings.Repeat("a1", 20), redacted: true},
		{name: "mod url", value: "https://mod.io/g/drg/m/sandbox-utilities", redacted: false},
		{name: "short value", value: "drg", redacted: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))
			logger.Info("test", "detail", tt.value)

			gotRedacted := strings.Contains(buf.String(), MaskValue)
			if gotRedacted != tt.redacted {
				t.Errorf("value %q: redacted=%v, expected %v", tt.value, gotRedacted, tt.redacted)
			}
		})
	}
}

// TestSecureHandlerGroups tests that attributes inside groups are sanitized.
func TestSecureHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))
	logger.Info("test",
		slog.Group("request",
			slog.String("token", "secretvalue"),
			slog.String("path", "/me"),
		),
	)

	out := buf.String()
	if strings.Contains(out, "secretvalue") {
		t.Errorf("group attribute leaked: %s", out)
	}
	if !strings.Contains(out, MaskValue) {
		t.Errorf("group attribute not masked: %s", out)
	}
	if !strings.Contains(out, "/me") {
		t.Errorf("benign group attribute lost: %s", out)
	}
}

// TestSecureHandlerWithAttrs tests pre-bound attribute sanitization.
func TestSecureHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))
	logger = logger.With("api_key", "verysecret")
	logger.Info("test")

	out := buf.String()
	if strings.Contains(out, "verysecret") {
		t.Errorf("bound attribute leaked: %s", out)
	}
	if !strings.Contains(out, MaskValue) {
		t.Errorf("bound attribute not masked: %s", out)
	}
}

// TestNewSecureLogger tests level selection.
func TestNewSecureLogger(t *testing.T) {
	t.Parallel()

	t.Run("default level suppresses debug and info", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := NewSecureLogger(&buf, false)
		logger.Debug("debug line")
		logger.Info("info line")
		logger.Warn("warn line")

		out := buf.String()
		if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
			t.Errorf("non-warning output not suppressed: %s", out)
		}
		if !strings.Contains(out, "warn line") {
			t.Errorf("warning output missing: %s", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := NewSecureLogger(&buf, true)
		logger.Debug("debug line")

		if !strings.Contains(buf.String(), "debug line") {
			t.Errorf("debug output missing: %s", buf.String())
		}
	})
}
