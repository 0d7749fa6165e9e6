package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version"`
	Name    string       `toml:"name,omitempty"`
	Steps   []stepSchema `toml:"steps"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported scenario schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type stepSchema struct {
	Action     string `toml:"action"`
	Device     string `toml:"device,omitempty"`
	Index      int    `toml:"index,omitempty"`
	Ordinal    int    `toml:"ordinal,omitempty"`
	Control    string `toml:"control,omitempty"`
	Enabled    bool   `toml:"enabled,omitempty"`
	Coordinate string `toml:"coordinate,omitempty"`
}
