// Package variant resolves state variants: states that inherit from a
// base state with targeted field overrides, following the
// "{base}~{variant}.json" naming convention.
package variant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/framesmith/fspack-go/authoring"
)

// isDefaultValue reports whether a decoded JSON value is "default-like"
// and should be skipped during merge, so a variant overlay's
// Go zero-valued fields never clobber a base state's real values.
func isDefaultValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return false // bools are never default; false is meaningful
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case float64:
		return val == 0
	default:
		return false
	}
}

// deepMerge recursively merges overlay onto base. Objects merge
// key-by-key; arrays and scalars in overlay replace base entirely.
// Default-like overlay values are skipped so the base value survives.
func deepMerge(base, overlay any) any {
	baseMap, baseIsMap := base.(map[string]any)
	overlayMap, overlayIsMap := overlay.(map[string]any)
	if !baseIsMap || !overlayIsMap {
		return overlay
	}
	merged := make(map[string]any, len(baseMap))
	for k, v := range baseMap {
		merged[k] = v
	}
	for k, overlayVal := range overlayMap {
		if isDefaultValue(overlayVal) {
			continue
		}
		if baseVal, ok := merged[k]; ok {
			merged[k] = deepMerge(baseVal, overlayVal)
		} else {
			merged[k] = overlayVal
		}
	}
	return merged
}

// ResolveVariant merges overlay onto base, producing a single fully
// resolved state under resolvedID. The overlay's Base field is cleared
// (authoring-only) and its Input is inherited from base when empty.
func ResolveVariant(base, overlay authoring.State, resolvedID string) (authoring.State, error) {
	baseJSON, err := toMap(base)
	if err != nil {
		return authoring.State{}, fmt.Errorf("variant: encode base: %w", err)
	}
	overlayJSON, err := toMap(overlay)
	if err != nil {
		return authoring.State{}, fmt.Errorf("variant: encode overlay: %w", err)
	}

	merged := deepMerge(baseJSON, overlayJSON).(map[string]any)
	merged["id"] = resolvedID
	delete(merged, "base")
	if input, ok := merged["input"].(string); !ok || input == "" {
		merged["input"] = base.Input
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return authoring.State{}, fmt.Errorf("variant: re-encode merged state: %w", err)
	}
	var resolved authoring.State
	if err := json.Unmarshal(data, &resolved); err != nil {
		return authoring.State{}, fmt.Errorf("variant: decode merged state: %w", err)
	}
	return resolved, nil
}

func toMap(s authoring.State) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseVariantName splits a state name into (base, variant) on the last
// tilde. If the portion after the last tilde is empty, the whole name is
// treated as a base state (e.g. "5S~" is a hold input, not a variant).
func ParseVariantName(name string) (base string, variantPart string, isVariant bool) {
	pos := strings.LastIndexByte(name, '~')
	if pos < 0 {
		return name, "", false
	}
	overlay := name[pos+1:]
	if overlay == "" {
		return name, "", false
	}
	return name[:pos], overlay, true
}

// IsVariantFilename reports whether name has a non-empty variant portion.
func IsVariantFilename(name string) bool {
	_, _, ok := ParseVariantName(name)
	return ok
}
