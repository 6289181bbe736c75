package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Session *sessionSchema `toml:"session"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	Deck    *deckSchema  `toml:"deck,omitempty"`
	Cards   []cardSchema `toml:"cards,omitempty"`
	SavedAt string       `toml:"saved_at"`
}

type deckSchema struct {
	ID        string `toml:"id"`
	Shuffled  bool   `toml:"shuffled"`
	Remaining int    `toml:"remaining"`
}

type cardSchema struct {
	Code     string `toml:"code"`
	Value    string `toml:"value"`
	Suit     string `toml:"suit"`
	Image    string `toml:"image,omitempty"`
	ImageSVG string `toml:"image_svg,omitempty"`
	ImagePNG string `toml:"image_png,omitempty"`
}
