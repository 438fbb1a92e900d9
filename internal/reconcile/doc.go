// Package reconcile implements the reconciliation loop: it walks the
// parsed mod list in input order, performs one mod.io lookup per
// reference, classifies each reference against the expected state, and
// accumulates the results into a report.
package reconcile
