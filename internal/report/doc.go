// Package report provides output formatting for reconciliation reports.
// It supports human-readable text (default), JSON for tool integration,
// and GitHub Flavored Markdown for sharing.
package report
