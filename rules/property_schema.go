package rules

// PropertySchema names character- and state-level properties whose index
// in the list becomes that property's schema ID in the exported pack,
// eliminating duplicate string storage across states.
type PropertySchema struct {
	Character []string `json:"character,omitempty"`
	State     []string `json:"state,omitempty"`
}

func mergeUniqueAppend(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	merged := append([]string(nil), base...)
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}

// MergedPropertySchema merges project and character property schemas:
// character names are appended after project names, in order, with
// duplicates dropped. Returns nil if neither side defines a schema.
func MergedPropertySchema(project, character *RulesFile) *PropertySchema {
	var p, c *PropertySchema
	if project != nil {
		p = project.Properties
	}
	if character != nil {
		c = character.Properties
	}
	switch {
	case p == nil && c == nil:
		return nil
	case c == nil:
		out := *p
		return &out
	case p == nil:
		out := *c
		return &out
	default:
		return &PropertySchema{
			Character: mergeUniqueAppend(p.Character, c.Character),
			State:     mergeUniqueAppend(p.State, c.State),
		}
	}
}

// MergedTagSchema merges project and character tag schemas the same way
// as MergedPropertySchema. Returns nil if neither side defines one.
func MergedTagSchema(project, character *RulesFile) []string {
	var p, c []string
	if project != nil {
		p = project.Tags
	}
	if character != nil {
		c = character.Tags
	}
	if p == nil && c == nil {
		return nil
	}
	if c == nil {
		return append([]string(nil), p...)
	}
	if p == nil {
		return append([]string(nil), c...)
	}
	return mergeUniqueAppend(p, c)
}
