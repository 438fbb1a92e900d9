package model

import (
	"strings"
	"testing"
)

// TestStatusString tests the human-readable status names.
func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   string
	}{
		{StatusOk, "OK"},
		{StatusHidden, "HIDDEN"},
		{StatusRenamed, "RENAMED"},
		{StatusDeleted, "DELETED"},
		{StatusLookupFailed, "LOOKUP FAILED"},
		{Status(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.status.String(); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestClassificationConstructors tests the constructor helpers.
func TestClassificationConstructors(t *testing.T) {
	t.Parallel()

	t.Run("Ok", func(t *testing.T) {
		t.Parallel()
		c := Ok()
		if c.Status != StatusOk {
			t.Errorf("got %v, expected StatusOk", c.Status)
		}
		if c.IsFlagged() {
			t.Error("OK must not be flagged")
		}
	})

	t.Run("Hidden", func(t *testing.T) {
		t.Parallel()
		c := Hidden()
		if c.Status != StatusHidden {
			t.Errorf("got %v, expected StatusHidden", c.Status)
		}
		if !c.IsFlagged() {
			t.Error("HIDDEN must be flagged")
		}
	})

	t.Run("Renamed carries both names", func(t *testing.T) {
		t.Parallel()
		c := Renamed("Old Name", "New Name")
		if c.Status != StatusRenamed {
			t.Errorf("got %v, expected StatusRenamed", c.Status)
		}
		if c.OldName != "Old Name" || c.NewName != "New Name" {
			t.Errorf("got (%q, %q), expected names preserved", c.OldName, c.NewName)
		}
	})

	t.Run("Deleted carries 404", func(t *testing.T) {
		t.Parallel()
		c := Deleted()
		if c.Status != StatusDeleted {
			t.Errorf("got %v, expected StatusDeleted", c.Status)
		}
		if c.HTTPStatus != 404 {
			t.Errorf("got HTTP status %d, expected 404", c.HTTPStatus)
		}
	})

	t.Run("LookupFailed carries reason and status", func(t *testing.T) {
		t.Parallel()
		c := LookupFailed("connection refused", 0)
		if c.Status != StatusLookupFailed {
			t.Errorf("got %v, expected StatusLookupFailed", c.Status)
		}
		if c.Reason != "connection refused" {
			t.Errorf("got reason %q, expected it preserved", c.Reason)
		}
	})
}

// TestClassificationDescribe tests the one-line descriptions.
func TestClassificationDescribe(t *testing.T) {
	t.Parallel()

	t.Run("renamed includes both names", func(t *testing.T) {
		t.Parallel()
		desc := Renamed("old", "new").Describe()
		if !strings.Contains(desc, "old") || !strings.Contains(desc, "new") {
			t.Errorf("got %q, expected both names", desc)
		}
	})

	t.Run("failed lookup includes HTTP status when present", func(t *testing.T) {
		t.Parallel()
		desc := LookupFailed("server error", 500).Describe()
		if !strings.Contains(desc, "500") {
			t.Errorf("got %q, expected the HTTP status", desc)
		}
	})

	t.Run("failed lookup omits status when absent", func(t *testing.T) {
		t.Parallel()
		desc := LookupFailed("timeout", 0).Describe()
		if strings.Contains(desc, "0:") {
			t.Errorf("got %q, expected no zero status", desc)
		}
	})

	t.Run("plain statuses describe as their name", func(t *testing.T) {
		t.Parallel()
		if got := Deleted().Describe(); got != "DELETED" {
			t.Errorf("got %q, expected DELETED", got)
		}
	})
}
