package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Active   string          `toml:"active,omitempty"`
	Sessions []sessionSchema `toml:"sessions"`
}

// sessionSchema keeps the raw token as the source of truth. Everything else
// about the session is re-derived from it on read.
type sessionSchema struct {
	Key               string `toml:"key"`
	Token             string `toml:"token"`
	ExpirationSeconds int64  `toml:"expiration_seconds,omitempty"`
	StoredAt          string `toml:"stored_at,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s fileSchema) indexOf(key string) int {
	for i := range s.Sessions {
		if s.Sessions[i].Key == key {
			return i
		}
	}
	return -1
}
