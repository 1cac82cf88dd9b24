package rules

// EventContext names where an EventEmit is permitted to appear.
type EventContext string

const (
	EventContextOnUse  EventContext = "on_use"
	EventContextOnHit  EventContext = "on_hit"
	EventContextOnBlock EventContext = "on_block"
	EventContextNotify EventContext = "notify"
)

// EventArgSpec is a registered event's expected argument type, with
// optional range bounds (f32) or an enumerated value set (enum).
type EventArgSpec struct {
	Type   string   `json:"type"` // bool, i64, f32, string, enum
	Min    *float32 `json:"min,omitempty"`
	Max    *float32 `json:"max,omitempty"`
	Values []string `json:"values,omitempty"`
}

// EventDefinition registers an event id: which contexts it may fire in
// and its expected flat argument shape.
type EventDefinition struct {
	Contexts []EventContext          `json:"contexts"`
	Args     map[string]EventArgSpec `json:"args,omitempty"`
}

// MoveTypesConfig enumerates valid move type strings and filter groupings
// over them (e.g. "normals" -> ["normal", "command_normal"]).
type MoveTypesConfig struct {
	Types        []string            `json:"types,omitempty"`
	FilterGroups map[string][]string `json:"filter_groups,omitempty"`
}

// RulesRegistry is the set of known resource IDs, event definitions, move
// types, and chain order for a project or character.
type RulesRegistry struct {
	Resources  []string                   `json:"resources,omitempty"`
	Events     map[string]EventDefinition `json:"events,omitempty"`
	MoveTypes  *MoveTypesConfig           `json:"move_types,omitempty"`
	ChainOrder []string                   `json:"chain_order,omitempty"`
}

// MergedRegistry merges project and character registries: resources are
// unioned and deduplicated (project order first), events are keyed by id
// with character entries overriding project entries of the same id, and
// move_types/chain_order take the character's value when set, else the
// project's.
func MergedRegistry(project, character *RulesFile) RulesRegistry {
	var resources []string
	seen := map[string]bool{}
	events := map[string]EventDefinition{}
	var moveTypes *MoveTypesConfig
	var chainOrder []string

	addRegistry := func(reg *RulesRegistry) {
		if reg == nil {
			return
		}
		for _, r := range reg.Resources {
			if !seen[r] {
				seen[r] = true
				resources = append(resources, r)
			}
		}
		for k, v := range reg.Events {
			events[k] = v
		}
		if reg.MoveTypes != nil {
			moveTypes = reg.MoveTypes
		}
		if reg.ChainOrder != nil {
			chainOrder = reg.ChainOrder
		}
	}

	if project != nil {
		addRegistry(project.Registry)
	}
	if character != nil {
		addRegistry(character.Registry)
	}

	return RulesRegistry{
		Resources:  resources,
		Events:     events,
		MoveTypes:  moveTypes,
		ChainOrder: chainOrder,
	}
}

// MergedRules is a project+character rules configuration fully resolved
// for use by the encoder.
type MergedRules struct {
	Registry   RulesRegistry
	Properties *PropertySchema
	Tags       []string
}

// MergeRules produces a MergedRules from a project and character
// RulesFile, either of which may be nil.
func MergeRules(project, character *RulesFile) MergedRules {
	return MergedRules{
		Registry:   MergedRegistry(project, character),
		Properties: MergedPropertySchema(project, character),
		Tags:       MergedTagSchema(project, character),
	}
}

// HasPropertySchema reports whether property-schema-ID validation is
// active.
func (m MergedRules) HasPropertySchema() bool { return m.Properties != nil }

// HasTagSchema reports whether tag-schema-ID validation is active.
func (m MergedRules) HasTagSchema() bool { return m.Tags != nil }
