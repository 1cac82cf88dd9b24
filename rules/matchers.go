// Package rules implements the defaulting/validation/registry layer that
// sits between variant resolution and the encoder: project-wide and
// character-specific rules shape state fields and reject malformed data
// before packing.
package rules

import (
	"encoding/json"

	"github.com/framesmith/fspack-go/authoring"
)

// StringOrVec holds either a single match value or a list of alternatives
// matched with OR logic.
type StringOrVec struct {
	values []string
}

// One returns a StringOrVec matching a single value.
func One(v string) StringOrVec { return StringOrVec{values: []string{v}} }

// Many returns a StringOrVec matching any of vs.
func Many(vs []string) StringOrVec { return StringOrVec{values: vs} }

// MarshalJSON writes a bare string for a single value, an array otherwise.
func (s StringOrVec) MarshalJSON() ([]byte, error) {
	if len(s.values) == 1 {
		return json.Marshal(s.values[0])
	}
	return json.Marshal(s.values)
}

// UnmarshalJSON accepts either a bare string or a string array.
func (s *StringOrVec) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		s.values = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	s.values = many
	return nil
}

// matchAny reports whether pred(p, value) holds for any pattern p in s.
func matchAny(s *StringOrVec, value string, pred func(pattern, value string) bool) bool {
	if s == nil {
		return true
	}
	for _, p := range s.values {
		if pred(p, value) {
			return true
		}
	}
	return false
}

// MatchSpec selects which states a rule applies to. All populated fields
// must match (AND logic); within a single field, multiple values match
// with OR logic.
type MatchSpec struct {
	// Type is the move type: normal, command_normal, special, super,
	// movement, throw (authoring.State.MoveType).
	Type *StringOrVec `json:"type,omitempty"`
	// Button is extracted from input's trailing alphabetic suffix (e.g.
	// "236P" -> "P").
	Button *StringOrVec `json:"button,omitempty"`
	// Guard matches against the GuardType string form.
	Guard *StringOrVec `json:"guard,omitempty"`
	// Tags that must ALL be present on the move.
	Tags []string `json:"tags,omitempty"`
	// Input matches the input notation with glob pattern support (* = any
	// run, ? = exactly one character).
	Input *StringOrVec `json:"input,omitempty"`
}

// Equal reports structural equality between two match specs, used to
// decide whether a character rule replaces a project rule with an
// identical match.
func (m MatchSpec) Equal(other MatchSpec) bool {
	a, _ := json.Marshal(m)
	b, _ := json.Marshal(other)
	return string(a) == string(b)
}

// globMatch is classical DP wildcard acceptance: * matches zero-or-more
// characters, ? matches exactly one.
func globMatch(pattern, text string) bool {
	p := []rune(pattern)
	t := []rune(text)
	dp := make([][]bool, len(p)+1)
	for i := range dp {
		dp[i] = make([]bool, len(t)+1)
	}
	dp[0][0] = true
	for i := 1; i <= len(p); i++ {
		if p[i-1] == '*' {
			dp[i][0] = dp[i-1][0]
		} else {
			break
		}
	}
	for i := 1; i <= len(p); i++ {
		for j := 1; j <= len(t); j++ {
			switch p[i-1] {
			case '*':
				dp[i][j] = dp[i-1][j] || dp[i][j-1]
			case '?':
				dp[i][j] = dp[i-1][j-1]
			default:
				dp[i][j] = dp[i-1][j-1] && p[i-1] == t[j-1]
			}
		}
	}
	return dp[len(p)][len(t)]
}

// buttonFromInput extracts the trailing alphabetic suffix of input (e.g.
// "236P" -> "P", "j.H" -> "H"), or returns ok=false if input has no such
// suffix.
func buttonFromInput(input string) (string, bool) {
	i := len(input)
	for i > 0 && isASCIIAlpha(input[i-1]) {
		i--
	}
	if i == len(input) {
		return "", false
	}
	return input[i:], true
}

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// MatchesMove reports whether state satisfies every populated field of
// spec.
func MatchesMove(spec MatchSpec, state authoring.State) bool {
	if spec.Type != nil {
		if state.MoveType == nil {
			return false
		}
		if !matchAny(spec.Type, *state.MoveType, func(p, v string) bool { return p == v }) {
			return false
		}
	}

	if spec.Guard != nil {
		if !matchAny(spec.Guard, string(state.Guard), func(p, v string) bool { return p == v }) {
			return false
		}
	}

	if spec.Input != nil {
		if !matchAny(spec.Input, state.Input, globMatch) {
			return false
		}
	}

	if spec.Button != nil {
		button, ok := buttonFromInput(state.Input)
		if !ok {
			return false
		}
		if !matchAny(spec.Button, button, func(p, v string) bool { return p == v }) {
			return false
		}
	}

	if len(spec.Tags) > 0 {
		for _, required := range spec.Tags {
			found := false
			for _, tag := range state.Tags {
				if tag.String() == required {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	return true
}
