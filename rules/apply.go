package rules

import (
	"encoding/json"
	"fmt"

	"github.com/framesmith/fspack-go/authoring"
)

// ApplyRule sets default values on states matching a MatchSpec. Set only
// fills in leaf values the state left unset (null, empty, or zero); it
// never overwrites an explicit value already present on the state.
type ApplyRule struct {
	Match MatchSpec      `json:"match"`
	Set   map[string]any `json:"set"`
}

// MergedApplyRules concatenates project and character apply rules:
// project rules first, then character rules, with any project rule
// sharing a character rule's exact match spec dropped in favor of the
// character's.
func MergedApplyRules(project, character *RulesFile) []ApplyRule {
	var merged []ApplyRule
	if project != nil {
		merged = append(merged, project.Apply...)
	}
	if character == nil {
		return merged
	}
	for _, rule := range character.Apply {
		filtered := merged[:0:0]
		for _, existing := range merged {
			if !existing.Match.Equal(rule.Match) {
				filtered = append(filtered, existing)
			}
		}
		merged = filtered
	}
	merged = append(merged, character.Apply...)
	return merged
}

func isUnsetValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
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

func getValueAtPath(root any, path []string) (any, bool) {
	cur := root
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func setValueAtPath(root map[string]any, path []string, value any) {
	if len(path) == 0 {
		return
	}
	cur := root
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

// applySetObject walks set's nested object tree; at each leaf it writes
// value into resolved only if base had no set value at that path.
func applySetObject(set, base any, resolved map[string]any, path []string) {
	m, ok := set.(map[string]any)
	if !ok {
		baseValue, found := getValueAtPath(base, path)
		if !found || isUnsetValue(baseValue) {
			setValueAtPath(resolved, path, set)
		}
		return
	}
	for key, value := range m {
		applySetObject(value, base, resolved, append(path, key))
	}
}

// ApplyRulesToMove applies every matching rule (project rules, then
// character rules, in MergedApplyRules order) to state and returns the
// resolved result.
func ApplyRulesToMove(project, character *RulesFile, state authoring.State) (authoring.State, error) {
	baseData, err := json.Marshal(state)
	if err != nil {
		return authoring.State{}, fmt.Errorf("rules: encode state: %w", err)
	}
	var base map[string]any
	if err := json.Unmarshal(baseData, &base); err != nil {
		return authoring.State{}, fmt.Errorf("rules: decode state: %w", err)
	}
	var resolved map[string]any
	if err := json.Unmarshal(baseData, &resolved); err != nil {
		return authoring.State{}, fmt.Errorf("rules: decode state: %w", err)
	}

	for _, rule := range MergedApplyRules(project, character) {
		if !MatchesMove(rule.Match, state) {
			continue
		}
		applySetObject(rule.Set, base, resolved, nil)
	}

	data, err := json.Marshal(resolved)
	if err != nil {
		return authoring.State{}, fmt.Errorf("rules: re-encode resolved state: %w", err)
	}
	var out authoring.State
	if err := json.Unmarshal(data, &out); err != nil {
		return authoring.State{}, fmt.Errorf("rules: decode resolved state: %w", err)
	}
	return out, nil
}
