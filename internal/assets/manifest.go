package assets

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest caches each character's asset bundle file index so the
// sprite-atlas cross-check doesn't re-scan a bundle's zip central
// directory on every build.
type Manifest struct {
	Characters map[string]*CharacterManifest `json:"characters"`
}

// CharacterManifest holds one character's asset bundle index.
type CharacterManifest struct {
	FileIndex map[string]string `json:"fileIndex"` // lowered path → source bundle
}

// LoadManifest loads a manifest from a JSON file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Save writes the manifest to a JSON file.
func (m *Manifest) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
