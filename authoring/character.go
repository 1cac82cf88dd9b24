package authoring

import (
	"encoding/json"
	"fmt"
)

// PropertyValue is a dynamic character property value: a number, bool, or
// string, matched in that order against the incoming JSON.
type PropertyValue struct {
	Number *float64
	Bool   *bool
	String *string
}

// MarshalJSON writes the populated alternative, untagged.
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Number != nil:
		return json.Marshal(*v.Number)
	case v.Bool != nil:
		return json.Marshal(*v.Bool)
	case v.String != nil:
		return json.Marshal(*v.String)
	default:
		return nil, fmt.Errorf("authoring: empty property value")
	}
}

// UnmarshalJSON decodes whichever JSON primitive is present, preferring a
// numeric interpretation over bool over string.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = PropertyValue{Number: &n}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = PropertyValue{Bool: &b}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = PropertyValue{String: &s}
		return nil
	}
	return fmt.Errorf("authoring: property value is not a number, bool, or string")
}

// CharacterResource is a named resource pool definition (meter, stacks,
// rage, and so on) attached to a character.
type CharacterResource struct {
	Name  string `json:"name"`
	Start uint16 `json:"start"`
	Max   uint16 `json:"max"`
}

// Character is a complete character definition: identity, free-form
// properties, and resource pools. States and assets are authored in
// separate files and joined during variant resolution.
type Character struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Properties map[string]PropertyValue `json:"properties,omitempty"`
	Resources  []CharacterResource      `json:"resources,omitempty"`
}
