package model

import "fmt"

// Status represents the reconciliation outcome of a single mod reference.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and counting. The String() method provides
// human-readable output when needed.
type Status int

const (
	// StatusOk indicates the mod exists, is visible, and its name is unchanged.
	StatusOk Status = iota

	// StatusHidden indicates the mod exists but its visibility flag marks it
	// as hidden from public listing. Hidden takes precedence over Renamed.
	StatusHidden

	// StatusRenamed indicates the mod exists and is visible but its display
	// name differs from the name recorded at export time.
	StatusRenamed

	// StatusDeleted indicates the remote service no longer has any record of
	// the mod.
	StatusDeleted

	// StatusLookupFailed indicates the lookup itself failed (network error,
	// server error, ambiguous result, or an unrecognized reference). The
	// failure is recorded and does not abort the remaining checks.
	StatusLookupFailed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOk:
		return "OK"
	case StatusHidden:
		return "HIDDEN"
	case StatusRenamed:
		return "RENAMED"
	case StatusDeleted:
		return "DELETED"
	case StatusLookupFailed:
		return "LOOKUP FAILED"
	default:
		return "UNKNOWN"
	}
}

// Classification is the immutable reconciliation result for one mod
// reference. Exactly one Classification is produced per input reference.
type Classification struct {
	// Status is the reconciliation outcome.
	Status Status `json:"status"`

	// OldName is the name recorded at export time. Only set for StatusRenamed.
	OldName string `json:"old_name,omitempty"`

	// NewName is the current remote name. Only set for StatusRenamed.
	NewName string `json:"new_name,omitempty"`

	// Reason describes why the lookup failed. Only set for StatusLookupFailed.
	Reason string `json:"reason,omitempty"`

	// HTTPStatus is the HTTP status code associated with a failed or
	// not-found lookup, 0 when not applicable.
	HTTPStatus int `json:"http_status,omitempty"`
}

// Ok returns a Classification for an unchanged, visible mod.
func Ok() Classification {
	return Classification{Status: StatusOk}
}

// Hidden returns a Classification for a mod flagged hidden server-side.
func Hidden() Classification {
	return Classification{Status: StatusHidden}
}

// Renamed returns a Classification for a visible mod whose name changed.
func Renamed(oldName, newName string) Classification {
	return Classification{Status: StatusRenamed, OldName: oldName, NewName: newName}
}

// Deleted returns a Classification for a mod the service no longer knows.
func Deleted() Classification {
	return Classification{Status: StatusDeleted, HTTPStatus: 404}
}

// LookupFailed returns a Classification for a failed lookup.
// httpStatus may be 0 when the failure happened below the HTTP layer.
func LookupFailed(reason string, httpStatus int) Classification {
	return Classification{Status: StatusLookupFailed, Reason: reason, HTTPStatus: httpStatus}
}

// Describe returns a one-line human-readable description of the
// classification, suitable for progress output and the simple report.
func (c Classification) Describe() string {
	switch c.Status {
	case StatusRenamed:
		return fmt.Sprintf("%s (%q -> %q)", c.Status, c.OldName, c.NewName)
	case StatusLookupFailed:
		if c.HTTPStatus > 0 {
			return fmt.Sprintf("%s (%d: %s)", c.Status, c.HTTPStatus, c.Reason)
		}
		return fmt.Sprintf("%s (%s)", c.Status, c.Reason)
	default:
		return c.Status.String()
	}
}

// IsFlagged reports whether the classification indicates a discrepancy
// between the local list and the remote state.
func (c Classification) IsFlagged() bool {
	return c.Status != StatusOk
}
