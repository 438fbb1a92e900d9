// Package model defines the core data types for modcheck: parsed mod
// references, mod.io records, per-reference classifications, and the
// reconciliation report.
package model
