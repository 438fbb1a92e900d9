package main

import (
	"strings"
	"testing"

	"github.com/jieyouxu/modio-modcheck/internal/model"
)

// TestNewHistoryCmd tests the command structure.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()
	if cmd.Name() != "history" {
		t.Errorf("got name %q", cmd.Name())
	}
	for _, name := range []string{"list", "show", "json"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not declared", name)
		}
	}
	if err := cmd.Args(cmd, []string{"unexpected"}); err == nil {
		t.Error("expected error for positional arguments")
	}
}

// TestFormatSummary tests the compact run summary.
func TestFormatSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary map[string]int
		want    string
	}{
		{
			name:    "all classifications",
			summary: map[string]int{"ok": 3, "hidden": 1, "renamed": 2, "deleted": 1, "lookup_failed": 1},
			want:    "OK:3 H:1 R:2 D:1 F:1",
		},
		{
			name:    "only ok",
			summary: map[string]int{"ok": 5},
			want:    "OK:5",
		},
		{
			name:    "zero counts omitted",
			summary: map[string]int{"ok": 0, "deleted": 2},
			want:    "D:2",
		},
		{
			name:    "empty",
			summary: map[string]int{},
			want:    "empty",
		},
		{
			name: "nil",
			want: "N/A",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatSummary(tt.summary); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestDiffReports tests change detection between two runs.
func TestDiffReports(t *testing.T) {
	t.Parallel()

	makeReport := func(entries map[string]model.Classification) *model.Report {
		report := model.NewReport("mods.txt", 2475)
		for ref, c := range entries {
			report.Add(model.Entry{Reference: ref, Classification: c})
		}
		return report
	}

	t.Run("no changes", func(t *testing.T) {
		t.Parallel()

		previous := makeReport(map[string]model.Classification{"1": model.Ok(), "2": model.Ok()})
		current := makeReport(map[string]model.Classification{"1": model.Ok(), "2": model.Ok()})

		if changes := diffReports(previous, current); len(changes) != 0 {
			t.Errorf("got %d changes, expected 0", len(changes))
		}
	})

	t.Run("status change", func(t *testing.T) {
		t.Parallel()

		previous := makeReport(map[string]model.Classification{"1": model.Ok()})
		current := makeReport(map[string]model.Classification{"1": model.Deleted()})

		changes := diffReports(previous, current)
		if len(changes) != 1 {
			t.Fatalf("got %d changes, expected 1", len(changes))
		}
		if changes[0].Reference != "1" || !strings.Contains(changes[0].Detail, "->") {
			t.Errorf("got %+v", changes[0])
		}
	})

	t.Run("added and removed references", func(t *testing.T) {
		t.Parallel()

		previous := makeReport(map[string]model.Classification{"old": model.Ok()})
		current := makeReport(map[string]model.Classification{"new": model.Ok()})

		changes := diffReports(previous, current)
		if len(changes) != 2 {
			t.Fatalf("got %d changes, expected 2", len(changes))
		}

		byRef := map[string]string{}
		for _, change := range changes {
			byRef[change.Reference] = change.Detail
		}
		if !strings.HasPrefix(byRef["new"], "added:") {
			t.Errorf("got detail %q for added reference", byRef["new"])
		}
		if byRef["old"] != "removed from the mod list" {
			t.Errorf("got detail %q for removed reference", byRef["old"])
		}
	})

	t.Run("duplicate references reported once", func(t *testing.T) {
		t.Parallel()

		previous := makeReport(map[string]model.Classification{"1": model.Ok()})
		current := model.NewReport("mods.txt", 2475)
		current.Add(model.Entry{Reference: "1", Classification: model.Deleted()})
		current.Add(model.Entry{Reference: "1", Classification: model.Deleted()})

		if changes := diffReports(previous, current); len(changes) != 1 {
			t.Errorf("got %d changes, expected 1", len(changes))
		}
	})
}
