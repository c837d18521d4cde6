package entity

import (
	"fmt"

	"github.com/campuschain/access-layer/internal/adapter"
)

// legacyRegistryData is the on-disk format of the legacy course token
// registry: {"version": 1, "tokens": {"<slug>:<id>": <tokenID>}}
type legacyRegistryData struct {
	Version int               `json:"version"`
	Tokens  map[string]uint64 `json:"tokens"`
}

// LegacyRegistryLoader loads legacy course token overrides from a JSON file
//
//go:generate mockgen -source=legacy.go -destination=../mocks/legacy_registry.go -package=mocks -mock_names=LegacyRegistryLoader=MockLegacyRegistryLoader
type LegacyRegistryLoader interface {
	// Load reads the registry file and returns the override table
	Load(filePath string) (map[string]uint64, error)
}

type legacyRegistryLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewLegacyRegistryLoader creates a new LegacyRegistryLoader with injected dependencies
func NewLegacyRegistryLoader(fs adapter.FileSystem, json adapter.JSON) LegacyRegistryLoader {
	return &legacyRegistryLoader{fs: fs, json: json}
}

// Load reads the registry file and returns the override table
func (l *legacyRegistryLoader) Load(filePath string) (map[string]uint64, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy token registry: %w", err)
	}

	var registryData legacyRegistryData
	if err := l.json.Unmarshal(data, &registryData); err != nil {
		return nil, fmt.Errorf("failed to parse legacy token registry: %w", err)
	}

	for key, tokenID := range registryData.Tokens {
		if tokenID == 0 {
			return nil, fmt.Errorf("legacy token registry entry %q has zero token id", key)
		}
	}

	return registryData.Tokens, nil
}
