package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/jieyouxu/modio-modcheck/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
// This format is designed for sharing results, e.g. in an issue on the
// Mint tracker.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables, lists, and GFM alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeEntries(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("modcheck Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Mod List", "`" + report.ModList + "`"},
			{"Game ID", strconv.FormatInt(report.GameID, 10)},
			{"Checked", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
			{"References", strconv.Itoa(report.Len())},
		},
	})
	md.PlainText("")
}

// writeSummary writes the per-classification counts and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Classification", "Count"},
		Rows: [][]string{
			{"✅ OK", strconv.Itoa(report.OkCount)},
			{"🙈 Hidden", strconv.Itoa(report.HiddenCount)},
			{"✏️ Renamed", strconv.Itoa(report.RenamedCount)},
			{"🗑️ Deleted", strconv.Itoa(report.DeletedCount)},
			{"⚠️ Lookup Failed", strconv.Itoa(report.LookupFailedCount)},
			{"**Total**", "**" + strconv.Itoa(report.Len()) + "**"},
		},
	})
	md.PlainText("")

	switch {
	case report.DeletedCount > 0 || report.HiddenCount > 0:
		md.Warningf(
			"%d mod(s) are no longer available as exported: %d deleted, %d hidden.",
			report.DeletedCount+report.HiddenCount, report.DeletedCount, report.HiddenCount,
		)
	case report.RenamedCount > 0:
		md.Notef("%d mod(s) were renamed server-side but are still available.", report.RenamedCount)
	case report.LookupFailedCount > 0:
		md.Importantf("%d lookup(s) failed; the list may be incompletely checked.", report.LookupFailedCount)
	default:
		md.Tip("Every reference matches the exported state.")
	}
	md.PlainText("")
}

// writeEntries writes the per-reference sections, discrepancies first.
func (w *MarkdownWriter) writeEntries(md *markdown.Markdown, report *model.Report) {
	for _, status := range statusOrder {
		if status == model.StatusOk {
			continue
		}

		entries := report.EntriesByStatus(status)
		if len(entries) == 0 {
			continue
		}

		md.H2(status.String())
		md.PlainText("")

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				"`" + entry.Reference + "`",
				w.detailFor(entry),
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Reference", "Detail"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// detailFor returns the detail cell for an entry.
func (w *MarkdownWriter) detailFor(entry model.Entry) string {
	c := entry.Classification
	switch c.Status {
	case model.StatusRenamed:
		return "`" + c.OldName + "` → `" + c.NewName + "`"
	case model.StatusLookupFailed:
		if c.HTTPStatus > 0 {
			return "HTTP " + strconv.Itoa(c.HTTPStatus) + ": " + c.Reason
		}
		return c.Reason
	case model.StatusHidden:
		if entry.Name != "" {
			return entry.Name
		}
		return "hidden from public listing"
	default:
		return entry.Name
	}
}
