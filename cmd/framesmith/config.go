package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional framesmith.yaml project config. Flags passed
// on the command line always win over values set here.
type fileConfig struct {
	Out    string `yaml:"out"`
	Strict bool   `yaml:"strict"`
}

// loadFileConfig reads framesmith.yaml from the project root, returning a
// zero-value config (not an error) if the file doesn't exist.
func loadFileConfig(projectDir string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(filepath.Join(projectDir, "framesmith.yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read framesmith.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse framesmith.yaml: %w", err)
	}
	return cfg, nil
}
