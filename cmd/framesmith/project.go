package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/rules"
	"github.com/framesmith/fspack-go/variant"
)

// characterSource is one character's fully-loaded, but not yet
// rule-applied, authoring data.
type characterSource struct {
	ID         string
	Character  authoring.Character
	Assets     authoring.CharacterAssets
	States     []authoring.State
	Cancel     authoring.CancelTable
	Rules      *rules.RulesFile
	BundlePath string // sprite asset bundle, empty if none authored
}

// loadProjectRules reads the project-level rules file, returning nil if
// it doesn't exist; a project without custom rules uses only the
// encoder's built-in validation.
func loadProjectRules(root string) (*rules.RulesFile, error) {
	data, err := os.ReadFile(filepath.Join(root, "framesmith.rules.json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read project rules: %w", err)
	}
	var rf rules.RulesFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse project rules: %w", err)
	}
	return &rf, nil
}

// listCharacterIDs returns every directory under characters/, sorted.
func listCharacterIDs(root string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, "characters"))
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// loadCharacter reads a single character.json/cancel_table.json/rules.json/
// globals.json plus its states/ directory, resolving variants and global
// includes into a flat state list.
func loadCharacter(root, id string) (characterSource, error) {
	dir := filepath.Join(root, "characters", id)
	src := characterSource{ID: id}

	charPath := filepath.Join(dir, "character.json")
	charData, err := os.ReadFile(charPath)
	if err != nil {
		return src, fmt.Errorf("read %s: %w", charPath, err)
	}
	if err := json.Unmarshal(charData, &src.Character); err != nil {
		return src, fmt.Errorf("parse %s: %w", charPath, err)
	}

	if data, ok, err := readOptional(filepath.Join(dir, "cancel_table.json")); err != nil {
		return src, err
	} else if ok {
		if err := json.Unmarshal(data, &src.Cancel); err != nil {
			return src, fmt.Errorf("parse %s/cancel_table.json: %w", dir, err)
		}
	}

	if data, ok, err := readOptional(filepath.Join(dir, "rules.json")); err != nil {
		return src, err
	} else if ok {
		var rf rules.RulesFile
		if err := json.Unmarshal(data, &rf); err != nil {
			return src, fmt.Errorf("parse %s/rules.json: %w", dir, err)
		}
		src.Rules = &rf
	}

	if data, ok, err := readOptional(filepath.Join(dir, "assets.json")); err != nil {
		return src, err
	} else if ok {
		if err := json.Unmarshal(data, &src.Assets); err != nil {
			return src, fmt.Errorf("parse %s/assets.json: %w", dir, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "assets.bundle")); err == nil {
		src.BundlePath = filepath.Join(dir, "assets.bundle")
	}

	states, err := loadStates(filepath.Join(dir, "states"))
	if err != nil {
		return src, fmt.Errorf("load states for %s: %w", id, err)
	}
	src.States = states

	if data, ok, err := readOptional(filepath.Join(dir, "globals.json")); err != nil {
		return src, err
	} else if ok {
		var manifest authoring.GlobalsManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return src, fmt.Errorf("parse %s/globals.json: %w", dir, err)
		}
		included, err := loadGlobalIncludes(root, manifest)
		if err != nil {
			return src, fmt.Errorf("resolve globals for %s: %w", id, err)
		}
		src.States = append(src.States, included...)
	}

	return src, nil
}

// readOptional reads path, returning ok=false (no error) if it doesn't
// exist.
func readOptional(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return data, true, nil
}

// loadStates reads every *.json file in a states directory, resolving
// "base~variant.json" overlays onto their base state.
func loadStates(dir string) ([]authoring.State, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read states dir: %w", err)
	}

	bases := make(map[string]authoring.State)
	type overlay struct {
		suffix string
		state  authoring.State
	}
	overlaysByBase := make(map[string][]overlay)

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		stem := strings.TrimSuffix(name, ".json")

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var s authoring.State
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		base, suffix, isVariant := variant.ParseVariantName(stem)
		if !isVariant {
			bases[stem] = s
			continue
		}
		overlaysByBase[base] = append(overlaysByBase[base], overlay{suffix: suffix, state: s})
	}

	baseNames := make([]string, 0, len(bases))
	for name := range bases {
		baseNames = append(baseNames, name)
	}
	sort.Strings(baseNames)

	var out []authoring.State
	for _, name := range baseNames {
		base := bases[name]
		out = append(out, base)

		overlays := overlaysByBase[name]
		sort.Slice(overlays, func(i, j int) bool { return overlays[i].suffix < overlays[j].suffix })
		for _, ov := range overlays {
			resolved, err := variant.ResolveVariant(base, ov.state, name+"~"+ov.suffix)
			if err != nil {
				return nil, fmt.Errorf("resolve variant %s~%s: %w", name, ov.suffix, err)
			}
			out = append(out, resolved)
		}
	}
	return out, nil
}

// loadGlobalIncludes resolves a character's globals.json into concrete
// states: each include reads globals/states/<State>.json and applies a
// shallow field override.
func loadGlobalIncludes(root string, manifest authoring.GlobalsManifest) ([]authoring.State, error) {
	var out []authoring.State
	for _, inc := range manifest.Includes {
		path := filepath.Join(root, "globals", "states", inc.State+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read global state %s: %w", inc.State, err)
		}

		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("parse global state %s: %w", inc.State, err)
		}
		for key, value := range inc.Overrides {
			fields[key] = value
		}
		if inc.Alias != "" {
			fields["input"] = inc.Alias
		}

		merged, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("re-encode global state %s: %w", inc.State, err)
		}
		var s authoring.State
		if err := json.Unmarshal(merged, &s); err != nil {
			return nil, fmt.Errorf("decode global state %s: %w", inc.State, err)
		}
		out = append(out, s)
	}
	return out, nil
}
