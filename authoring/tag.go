// Package authoring defines the human-authored character data model: the
// JSON documents a designer edits before the rules engine resolves variants
// and the encoder packs the result into an FSPK binary.
package authoring

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyTag is returned when a Tag is constructed from an empty string.
var ErrEmptyTag = errors.New("authoring: tag cannot be empty")

// Tag is a validated state-categorization label. Tags are lowercase
// alphanumeric strings with underscores; games use them for cancel rules
// and filtering.
type Tag string

// NewTag validates s and returns it as a Tag.
func NewTag(s string) (Tag, error) {
	if s == "" {
		return "", ErrEmptyTag
	}
	for _, c := range s {
		if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') && c != '_' {
			return "", fmt.Errorf("authoring: tag %q must be lowercase alphanumeric with underscores", s)
		}
	}
	return Tag(s), nil
}

// String returns the tag's underlying string.
func (t Tag) String() string { return string(t) }

// UnmarshalJSON validates the tag format on decode.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tag, err := NewTag(s)
	if err != nil {
		return err
	}
	*t = tag
	return nil
}
