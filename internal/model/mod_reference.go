package model

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ModReference errors.
var (
	// ErrEmptyModReference is returned when the reference token is empty.
	ErrEmptyModReference = errors.New("mod reference cannot be empty")
	// ErrInvalidModReference is returned when the token is neither a mod.io
	// mod URL nor a bare numeric mod ID.
	ErrInvalidModReference = errors.New("unrecognized mod reference")
)

// modURLPattern matches mod.io mod profile URLs as exported by Mint, e.g.
//
//	https://mod.io/g/drg/m/sandbox-utilities
//	https://mod.io/g/drg/m/sandbox-utilities#2078063
//	https://mod.io/g/drg/m/sandbox-utilities#2078063/3186586
//
// The fragment carries the numeric mod ID and optionally a modfile ID.
var modURLPattern = regexp.MustCompile(
	`^https://mod\.io/g/(?P<game>[^/]+)/m/(?P<name_id>[^/#]+)(?:#(?P<mod_id>\d+)(?:/(?P<modfile_id>\d+))?)?$`)

// ModReference is an immutable value object for a single entry of the
// exported mod list. A reference identifies a mod either by the URL slug
// (name_id) or by the numeric mod ID embedded in the URL fragment; bare
// numeric tokens are treated as mod IDs.
type ModReference struct {
	raw       string // Token exactly as it appeared in the list
	gameSlug  string // Game slug from the URL ("drg"), empty for bare IDs
	nameID    string // URL slug identifying the mod, empty for bare IDs
	modID     int64  // Numeric mod ID, 0 when unknown
	modfileID int64  // Numeric modfile ID, 0 when unknown
}

// NewModReference parses a single token from the mod list.
// It accepts mod.io mod URLs and bare numeric mod IDs.
func NewModReference(token string) (ModReference, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ModReference{}, ErrEmptyModReference
	}

	// Bare numeric token: treat as a mod ID.
	if id, err := strconv.ParseInt(token, 10, 64); err == nil && id > 0 {
		return ModReference{raw: token, modID: id}, nil
	}

	m := modURLPattern.FindStringSubmatch(token)
	if m == nil {
		return ModReference{}, ErrInvalidModReference
	}

	ref := ModReference{
		raw:      token,
		gameSlug: m[modURLPattern.SubexpIndex("game")],
		nameID:   m[modURLPattern.SubexpIndex("name_id")],
	}
	if s := m[modURLPattern.SubexpIndex("mod_id")]; s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ModReference{}, ErrInvalidModReference
		}
		ref.modID = id
	}
	if s := m[modURLPattern.SubexpIndex("modfile_id")]; s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ModReference{}, ErrInvalidModReference
		}
		ref.modfileID = id
	}
	return ref, nil
}

// MustNewModReference creates a ModReference or panics if the token is
// invalid. Use only for known-valid references in tests.
func MustNewModReference(token string) ModReference {
	ref, err := NewModReference(token)
	if err != nil {
		panic(err)
	}
	return ref
}

// String returns the reference token exactly as it appeared in the list.
func (r ModReference) String() string {
	return r.raw
}

// NameID returns the URL slug identifying the mod, or "" for bare IDs.
func (r ModReference) NameID() string {
	return r.nameID
}

// ModID returns the numeric mod ID, or 0 when the reference only carries
// a name_id slug.
func (r ModReference) ModID() int64 {
	return r.modID
}

// ModfileID returns the numeric modfile ID, or 0 when absent.
func (r ModReference) ModfileID() int64 {
	return r.modfileID
}

// GameSlug returns the game slug from the URL ("drg"), or "" for bare IDs.
func (r ModReference) GameSlug() string {
	return r.gameSlug
}

// HasModID reports whether the reference carries a numeric mod ID,
// allowing a direct by-ID lookup.
func (r ModReference) HasModID() bool {
	return r.modID > 0
}

// IsZero reports whether this is a zero value (unparsed) reference.
func (r ModReference) IsZero() bool {
	return r.raw == ""
}

// Equals reports whether two references denote the same list token.
func (r ModReference) Equals(other ModReference) bool {
	return r.raw == other.raw
}
