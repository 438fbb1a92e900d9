package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jieyouxu/modio-modcheck/internal/config"
	"github.com/jieyouxu/modio-modcheck/internal/database"
	"github.com/jieyouxu/modio-modcheck/internal/model"
)

// NewHistoryCmd creates the history command.
// This command reads past reconciliation runs from the local database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past reconciliation runs",
		Long: `History displays reconciliation runs recorded by previous checks.

Without flags, the two most recent runs are diffed: references whose
classification changed between the runs are listed. This shows what
changed server-side since the last check.

Examples:
  # Diff the two most recent runs
  modcheck history

  # List all recorded runs
  modcheck history --list

  # Show a stored report by run ID (see --list for IDs)
  modcheck history --show 5

  # Show a stored report as JSON
  modcheck history --show 5 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List recorded runs instead of diffing")
	cmd.Flags().Int64P("show", "s", 0,
		"Show the stored report for a specific run ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format (with --show)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Never create an empty database just to report there is no history
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		return fmt.Errorf("no history available: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	switch {
	case listRuns:
		return listRecordedRuns(ctx, db)
	case showID > 0:
		return showRun(ctx, db, showID, jsonOutput)
	default:
		return diffLatestRuns(ctx, db)
	}
}

// listRecordedRuns lists metadata for all stored runs.
func listRecordedRuns(ctx context.Context, db *database.HistoryDB) error {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs found.")
		fmt.Println("\nRun 'modcheck --id <id> --access-token <file> <mod-list>' to record one.")
		return nil
	}

	fmt.Printf("Recorded runs (%d):\n\n", len(runs))
	fmt.Printf("  %-6s  %-20s  %-28s  %s\n", "ID", "Date", "Mod List", "Summary")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, meta := range runs {
		fmt.Printf("  %-6d  %-20s  %-28s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.ModList,
			formatSummary(meta.Summary),
		)
	}

	fmt.Println("\nUse 'modcheck history --show <id>' to display a stored report.")
	return nil
}

// formatSummary formats the per-classification counts of a run.
func formatSummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if v := summary["ok"]; v > 0 {
		parts = append(parts, fmt.Sprintf("OK:%d", v))
	}
	if v := summary["hidden"]; v > 0 {
		parts = append(parts, fmt.Sprintf("H:%d", v))
	}
	if v := summary["renamed"]; v > 0 {
		parts = append(parts, fmt.Sprintf("R:%d", v))
	}
	if v := summary["deleted"]; v > 0 {
		parts = append(parts, fmt.Sprintf("D:%d", v))
	}
	if v := summary["lookup_failed"]; v > 0 {
		parts = append(parts, fmt.Sprintf("F:%d", v))
	}

	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

// showRun displays a stored report.
func showRun(ctx context.Context, db *database.HistoryDB, id int64, jsonOutput bool) error {
	stored, err := db.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("run %d not found (use --list to see available IDs)", id)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stored)
	}

	fmt.Printf("Run of %s (%s): %d references\n\n",
		stored.ModList,
		stored.DateChecked.Format("2006-01-02 15:04:05"),
		stored.Len(),
	)
	for _, entry := range stored.Entries {
		fmt.Printf("  %-14s %s\n", entry.Classification.Status.String(), entry.Reference)
	}
	return nil
}

// diffLatestRuns compares the two most recent runs and lists references
// whose classification changed.
func diffLatestRuns(ctx context.Context, db *database.HistoryDB) error {
	runs, err := db.LatestRuns(ctx, 2)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		return fmt.Errorf("at least 2 recorded runs are required for a diff (found %d)", len(runs))
	}

	// LatestRuns returns newest first
	current, previous := runs[0], runs[1]

	fmt.Printf("Comparing runs:\n")
	fmt.Printf("  previous: %s (%d references)\n", previous.DateChecked.Format("2006-01-02 15:04:05"), previous.Len())
	fmt.Printf("  current:  %s (%d references)\n\n", current.DateChecked.Format("2006-01-02 15:04:05"), current.Len())

	changes := diffReports(previous, current)
	if len(changes) == 0 {
		fmt.Println("No classification changes between the two runs.")
		return nil
	}

	fmt.Printf("Changed references (%d):\n\n", len(changes))
	for _, change := range changes {
		fmt.Printf("  * %s\n    %s\n", change.Reference, change.Detail)
	}
	return nil
}

// runChange describes one reference whose classification changed.
type runChange struct {
	Reference string
	Detail    string
}

// diffReports lists references whose classification differs between two
// reports, including references present in only one of them.
func diffReports(previous, current *model.Report) []runChange {
	prevByRef := make(map[string]model.Classification, len(previous.Entries))
	for _, entry := range previous.Entries {
		prevByRef[entry.Reference] = entry.Classification
	}

	var changes []runChange
	seen := make(map[string]bool, len(current.Entries))

	for _, entry := range current.Entries {
		if seen[entry.Reference] {
			continue
		}
		seen[entry.Reference] = true

		prev, ok := prevByRef[entry.Reference]
		switch {
		case !ok:
			changes = append(changes, runChange{
				Reference: entry.Reference,
				Detail:    fmt.Sprintf("added: %s", entry.Classification.Describe()),
			})
		case prev.Status != entry.Classification.Status:
			changes = append(changes, runChange{
				Reference: entry.Reference,
				Detail:    fmt.Sprintf("%s -> %s", prev.Describe(), entry.Classification.Describe()),
			})
		}
	}

	for _, entry := range previous.Entries {
		if !seen[entry.Reference] {
			seen[entry.Reference] = true
			changes = append(changes, runChange{
				Reference: entry.Reference,
				Detail:    "removed from the mod list",
			})
		}
	}

	return changes
}
