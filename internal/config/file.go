package config

// File represents the structure of the .modcheck configuration file.
// All fields are optional; CLI flags take precedence over file values.
type File struct {
	// APIHost overrides the mod.io API host template.
	APIHost string `yaml:"apiHost,omitempty"`

	// Game selects which game entry in Games to use, by slug.
	// Defaults to "drg" when empty.
	Game string `yaml:"game,omitempty"`

	// Games maps game slugs to their mod.io settings, so the tool can be
	// pointed at other mod.io games than Deep Rock Galactic.
	Games map[string]GameConfig `yaml:"games,omitempty"`

	// TimeoutSeconds overrides the per-request HTTP timeout.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// GameConfig holds per-game mod.io settings.
type GameConfig struct {
	// ID is the numeric mod.io game ID.
	ID int64 `yaml:"id"`
}

// GameID returns the game ID selected by the file, or 0 when the file does
// not select one.
func (f *File) GameID() int64 {
	slug := f.Game
	if slug == "" {
		slug = DefaultGameSlug
	}
	if g, ok := f.Games[slug]; ok {
		return g.ID
	}
	return 0
}
