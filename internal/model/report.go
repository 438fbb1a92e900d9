package model

import "time"

// Report is the ordered result of one reconciliation run.
// Entries appear in input order; every input reference contributes exactly
// one entry, including duplicates.
//
// Design decision: We keep per-status counters on the report rather than
// recomputing them from the entries because the counters are read by every
// writer and by the history database summary.
type Report struct {
	// ModList is the path of the mod list that was checked.
	ModList string `json:"mod_list"`

	// GameID is the numeric mod.io game ID the references were checked against.
	GameID int64 `json:"game_id"`

	// DateChecked is the timestamp when the reconciliation started.
	DateChecked time.Time `json:"date_checked"`

	// Entries are the per-reference results in input order.
	Entries []Entry `json:"entries"`

	// === Per-status counters ===

	OkCount           int `json:"ok_count"`
	HiddenCount       int `json:"hidden_count"`
	RenamedCount      int `json:"renamed_count"`
	DeletedCount      int `json:"deleted_count"`
	LookupFailedCount int `json:"lookup_failed_count"`
}

// Entry pairs a mod reference with its classification.
type Entry struct {
	// Reference is the list token exactly as it appeared in the input.
	Reference string `json:"reference"`

	// Classification is the reconciliation outcome for the reference.
	Classification Classification `json:"classification"`

	// Name is the current remote display name, when a record was found.
	Name string `json:"name,omitempty"`

	// ProfileURL is the canonical mod profile URL, when a record was found.
	ProfileURL string `json:"profile_url,omitempty"`
}

// NewReport creates an empty report for the given mod list and game.
func NewReport(modList string, gameID int64) *Report {
	return &Report{
		ModList:     modList,
		GameID:      gameID,
		DateChecked: time.Now(),
		Entries:     make([]Entry, 0),
	}
}

// Add appends an entry and updates the per-status counters.
func (r *Report) Add(entry Entry) {
	r.Entries = append(r.Entries, entry)

	switch entry.Classification.Status {
	case StatusOk:
		r.OkCount++
	case StatusHidden:
		r.HiddenCount++
	case StatusRenamed:
		r.RenamedCount++
	case StatusDeleted:
		r.DeletedCount++
	case StatusLookupFailed:
		r.LookupFailedCount++
	}
}

// Len returns the number of entries in the report.
func (r *Report) Len() int {
	return len(r.Entries)
}

// FlaggedCount returns the number of entries that are not OK.
func (r *Report) FlaggedCount() int {
	return r.HiddenCount + r.RenamedCount + r.DeletedCount + r.LookupFailedCount
}

// HasFlagged reports whether any entry diverged from the exported state.
func (r *Report) HasFlagged() bool {
	return r.FlaggedCount() > 0
}

// EntriesByStatus returns the entries with the given status, in input order.
func (r *Report) EntriesByStatus(status Status) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Classification.Status == status {
			out = append(out, e)
		}
	}
	return out
}

// CountByStatus returns the counter for the given status.
func (r *Report) CountByStatus(status Status) int {
	switch status {
	case StatusOk:
		return r.OkCount
	case StatusHidden:
		return r.HiddenCount
	case StatusRenamed:
		return r.RenamedCount
	case StatusDeleted:
		return r.DeletedCount
	case StatusLookupFailed:
		return r.LookupFailedCount
	default:
		return 0
	}
}
