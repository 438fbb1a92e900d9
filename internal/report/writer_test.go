package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jieyouxu/modio-modcheck/internal/model"
)

func sampleReport() *model.Report {
	report := model.NewReport("mods.txt", 2475)
	report.Add(model.Entry{
		Reference:      "https://mod.io/g/drg/m/sandbox-utilities#42",
		Name:           "Sandbox Utilities",
		ProfileURL:     "https://mod.io/g/drg/m/sandbox-utilities",
		Classification: model.Ok(),
	})
	report.Add(model.Entry{
		Reference:      "456",
		Classification: model.Deleted(),
	})
	report.Add(model.Entry{
		Reference:      "https://mod.io/g/drg/m/old-slug#77",
		Name:           "Rock And Stone",
		Classification: model.Renamed("old-slug", "Rock And Stone"),
	})
	report.Add(model.Entry{
		Reference:      "789",
		Classification: model.LookupFailed("mod.io API error: HTTP 500", 500),
	})
	return report
}

// TestSimpleWriter tests the human-readable text format.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("flagged entries are listed with details", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		w := NewSimpleWriter(&buf)

		n, err := w.Write(sampleReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		if n != len(out) {
			t.Errorf("reported %d bytes, wrote %d", n, len(out))
		}

		for _, want := range []string{
			"MODCHECK REPORT",
			"Mod List:     mods.txt",
			"Game ID:      2475",
			"References:   4",
			"OK:            1",
			"DELETED:       1",
			"3 of 4 references diverged",
			"DELETED",
			"* 456",
			`Renamed: "old-slug" -> "Rock And Stone"`,
			"Failed: HTTP 500",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("ok entries hidden unless requested", func(t *testing.T) {
		t.Parallel()

		var plain strings.Builder
		if _, err := NewSimpleWriter(&plain).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(plain.String(), "* https://mod.io/g/drg/m/sandbox-utilities#42") {
			t.Error("OK entry listed without WithShowOk")
		}

		var verbose strings.Builder
		if _, err := NewSimpleWriter(&verbose, WithShowOk(true)).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(verbose.String(), "* https://mod.io/g/drg/m/sandbox-utilities#42") {
			t.Error("OK entry not listed with WithShowOk")
		}
	})

	t.Run("clean report states no divergence", func(t *testing.T) {
		t.Parallel()

		report := model.NewReport("mods.txt", 2475)
		report.Add(model.Entry{Reference: "1", Classification: model.Ok()})

		var buf strings.Builder
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "All references match the exported state") {
			t.Error("missing all-clear line")
		}
	})

	t.Run("discrepancy sections come before ok", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewSimpleWriter(&buf, WithShowOk(true)).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()

		deleted := strings.Index(out, "\nDELETED\n")
		ok := strings.LastIndex(out, "\nOK\n")
		if deleted == -1 || ok == -1 || deleted > ok {
			t.Errorf("section order wrong: deleted at %d, ok at %d", deleted, ok)
		}
	})
}

// TestJSONWriter tests the machine-readable format.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("round trips through the model", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewJSONWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.Report
		if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.ModList != "mods.txt" || decoded.Len() != 4 {
			t.Errorf("got mod_list=%q entries=%d", decoded.ModList, decoded.Len())
		}
		if decoded.DeletedCount != 1 || decoded.LookupFailedCount != 1 {
			t.Errorf("counters: deleted=%d failed=%d", decoded.DeletedCount, decoded.LookupFailedCount)
		}
	})

	t.Run("ends with a newline", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewJSONWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("missing trailing newline")
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"") {
			t.Error("output not indented")
		}
	})
}

// TestMarkdownWriter tests the GFM format.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders headings tables and alert", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()

		for _, want := range []string{
			"# modcheck Report",
			"## Summary",
			"| Classification | Count |",
			"## DELETED",
			"`456`",
			"[!WARNING]",
			"`old-slug` → `Rock And Stone`",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("clean report gets a tip", func(t *testing.T) {
		t.Parallel()

		report := model.NewReport("mods.txt", 2475)
		report.Add(model.Entry{Reference: "1", Classification: model.Ok()})

		var buf strings.Builder
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("missing tip alert")
		}
	})

	t.Run("ok entries are never listed", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "## OK") {
			t.Error("OK section should not be rendered")
		}
	})
}

// failingWriter always returns an error.
type failingWriter struct{}

func (failingWriter) Write(*model.Report) (int, error) {
	return 0, errors.New("sink failed")
}

// TestMultiWriter tests fan-out behavior.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all targets", func(t *testing.T) {
		t.Parallel()

		var a, b strings.Builder
		mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

		if _, err := mw.Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Len() == 0 || b.Len() == 0 {
			t.Errorf("targets not written: simple=%d json=%d", a.Len(), b.Len())
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after strings.Builder
		mw := NewMultiWriter(failingWriter{}, NewSimpleWriter(&after))

		if _, err := mw.Write(sampleReport()); err == nil {
			t.Fatal("expected error")
		}
		if after.Len() != 0 {
			t.Error("writer after the failure should not run")
		}
	})
}
