// Package database provides SQLite-based storage for reconciliation
// history. Each completed check is saved as a run, and the display name
// observed for each mod reference is retained so that a later run can
// detect server-side renames. The history subcommand reads the same
// database to list and diff past runs.
package database
