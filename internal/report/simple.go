package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jieyouxu/modio-modcheck/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easy to pipe to files or other tools
type SimpleWriter struct {
	baseWriter

	// showOk controls whether the section listing unchanged mods is shown.
	// Flagged entries are always shown.
	showOk bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowOk configures the writer to list unchanged mods individually
// instead of only counting them.
func WithShowOk(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showOk = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showOk:     false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeEntries(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         MODCHECK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Mod List:     %s\n", report.ModList))
	sb.WriteString(fmt.Sprintf("Game ID:      %d\n", report.GameID))
	sb.WriteString(fmt.Sprintf("Checked:      %s\n", report.DateChecked.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("References:   %d\n", report.Len()))
	sb.WriteString("\n")
}

// writeSummary writes the per-classification counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  OK:            %d\n", report.OkCount))
	sb.WriteString(fmt.Sprintf("  HIDDEN:        %d\n", report.HiddenCount))
	sb.WriteString(fmt.Sprintf("  RENAMED:       %d\n", report.RenamedCount))
	sb.WriteString(fmt.Sprintf("  DELETED:       %d\n", report.DeletedCount))
	sb.WriteString(fmt.Sprintf("  LOOKUP FAILED: %d\n", report.LookupFailedCount))
	sb.WriteString("\n")

	if report.HasFlagged() {
		sb.WriteString(fmt.Sprintf("  %d of %d references diverged from the exported state\n",
			report.FlaggedCount(), report.Len()))
	} else {
		sb.WriteString("  All references match the exported state\n")
	}
	sb.WriteString("\n")
}

// writeEntries writes the per-reference sections, discrepancies first.
func (w *SimpleWriter) writeEntries(sb *strings.Builder, report *model.Report) {
	for _, status := range statusOrder {
		if status == model.StatusOk && !w.showOk {
			continue
		}

		entries := report.EntriesByStatus(status)
		if len(entries) == 0 {
			continue
		}

		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		sb.WriteString(status.String())
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n\n")

		for _, entry := range entries {
			w.writeEntry(sb, entry)
		}
		sb.WriteString("\n")
	}
}

// writeEntry writes a single reference with its classification detail.
func (w *SimpleWriter) writeEntry(sb *strings.Builder, entry model.Entry) {
	sb.WriteString(fmt.Sprintf("  * %s\n", entry.Reference))

	c := entry.Classification
	switch c.Status {
	case model.StatusRenamed:
		sb.WriteString(fmt.Sprintf("    Renamed: %q -> %q\n", c.OldName, c.NewName))
	case model.StatusLookupFailed:
		if c.HTTPStatus > 0 {
			sb.WriteString(fmt.Sprintf("    Failed: HTTP %d: %s\n", c.HTTPStatus, c.Reason))
		} else {
			sb.WriteString(fmt.Sprintf("    Failed: %s\n", c.Reason))
		}
	case model.StatusHidden, model.StatusOk:
		if entry.Name != "" {
			sb.WriteString(fmt.Sprintf("    Name: %s\n", entry.Name))
		}
	}

	if entry.ProfileURL != "" && entry.ProfileURL != entry.Reference {
		sb.WriteString(fmt.Sprintf("    Profile: %s\n", entry.ProfileURL))
	}
}
