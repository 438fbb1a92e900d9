package model

// Visibility values used by the mod.io API for the `visible` field.
const (
	// VisibilityHidden means the mod exists but is not publicly listed.
	VisibilityHidden = 0
	// VisibilityPublic means the mod is publicly listed.
	VisibilityPublic = 1
)

// ModRecord is the subset of a mod.io Mod Object that the reconciler
// consumes. Field names follow the wire format of the v1 API.
type ModRecord struct {
	// ID is the unique numeric mod ID.
	ID int64 `json:"id"`

	// GameID is the numeric ID of the game the mod belongs to.
	GameID int64 `json:"game_id"`

	// Name is the current display name of the mod.
	Name string `json:"name"`

	// NameID is the current URL slug of the mod. Changing the display name
	// on mod.io changes the slug as well, so a stale slug in an exported
	// URL is the primary rename signal.
	NameID string `json:"name_id"`

	// Visible is the visibility flag (0 = hidden, 1 = public).
	Visible int `json:"visible"`

	// ProfileURL is the canonical mod profile URL.
	ProfileURL string `json:"profile_url"`

	// DateUpdated is the unix timestamp of the last modification.
	DateUpdated int64 `json:"date_updated"`
}

// IsHidden reports whether the mod is hidden from public listing.
func (m *ModRecord) IsHidden() bool {
	return m.Visible == VisibilityHidden
}
