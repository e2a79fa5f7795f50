package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int           `toml:"version"`
	Defaults defaultsTable `toml:"defaults"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported defaults schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type defaultsTable struct {
	Domestic      *carrierSchema `toml:"domestic,omitempty"`
	International *carrierSchema `toml:"international,omitempty"`
}

type carrierSchema struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
}
