package rules

import (
	"testing"

	"github.com/framesmith/fspack-go/authoring"
)

func mustTag(t *testing.T, s string) authoring.Tag {
	t.Helper()
	tag, err := authoring.NewTag(s)
	if err != nil {
		t.Fatalf("NewTag(%q): %v", s, err)
	}
	return tag
}

func TestGlobMatch(t *testing.T) {
	cases := []struct {
		pattern, text string
		want          bool
	}{
		{"236*", "236P", true},
		{"236*", "623P", false},
		{"*P", "5P", true},
		{"*P", "623P", true},
		{"*P", "5K", false},
		{"5?", "5L", true},
		{"5?", "5M", true},
		{"5?", "5LL", false},
		{"236236*", "236236K", true},
		{"236236*", "236K", false},
		{"[*]*", "[4]6P", true},
	}
	for _, c := range cases {
		if got := globMatch(c.pattern, c.text); got != c.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", c.pattern, c.text, got, c.want)
		}
	}
}

func TestMatchesMoveOrWithinFieldAndAcrossFields(t *testing.T) {
	moveType := "command_normal"
	mv := authoring.State{Input: "2L", MoveType: &moveType, Guard: authoring.GuardUnblockable}

	spec := MatchSpec{Input: func() *StringOrVec { s := Many([]string{"5L", "2L"}); return &s }()}
	if !MatchesMove(spec, mv) {
		t.Error("expected OR-within-field input match")
	}

	typeSpec := One("command_normal")
	guardSpec := One("unblockable")
	inputSpec := One("2L")
	spec = MatchSpec{Type: &typeSpec, Guard: &guardSpec, Input: &inputSpec}
	if !MatchesMove(spec, mv) {
		t.Error("expected AND-across-fields match")
	}

	mismatchGuard := One("mid")
	spec.Guard = &mismatchGuard
	if MatchesMove(spec, mv) {
		t.Error("expected guard mismatch to fail the match")
	}
}

func TestMatchesMoveButtonExtraction(t *testing.T) {
	mv := authoring.State{Input: "j.H"}
	button := One("H")
	if !MatchesMove(MatchSpec{Button: &button}, mv) {
		t.Error("expected button H to match j.H")
	}

	mv.Input = "632146PP"
	button = One("PP")
	if !MatchesMove(MatchSpec{Button: &button}, mv) {
		t.Error("expected button PP to match 632146PP")
	}
}

func TestMatchesMoveTagsAnd(t *testing.T) {
	mv := authoring.State{
		Input: "5L",
		Tags:  []authoring.Tag{mustTag(t, "starter"), mustTag(t, "reversal")},
	}

	if !MatchesMove(MatchSpec{Tags: []string{"starter", "reversal"}}, mv) {
		t.Error("expected both tags present to match")
	}
	if MatchesMove(MatchSpec{Tags: []string{"starter", "missing"}}, mv) {
		t.Error("expected missing tag to fail the match")
	}
}

func TestApplyRuleFillsOnlyUnsetFields(t *testing.T) {
	project := &RulesFile{
		Version: CurrentRulesVersion,
		Apply: []ApplyRule{{
			Match: MatchSpec{},
			Set:   map[string]any{"hitstop": float64(8)},
		}},
	}

	state := authoring.State{Input: "5L", Startup: 1, Active: 1, Hitstop: 0}
	resolved, err := ApplyRulesToMove(project, nil, state)
	if err != nil {
		t.Fatalf("ApplyRulesToMove: %v", err)
	}
	if resolved.Hitstop != 8 {
		t.Errorf("Hitstop = %d, want 8", resolved.Hitstop)
	}

	state.Hitstop = 3
	resolved, err = ApplyRulesToMove(project, nil, state)
	if err != nil {
		t.Fatalf("ApplyRulesToMove: %v", err)
	}
	if resolved.Hitstop != 3 {
		t.Errorf("Hitstop = %d, want 3 (already set, should not be overwritten)", resolved.Hitstop)
	}
}

func TestApplyRuleCharacterReplacesProjectSameMatch(t *testing.T) {
	project := &RulesFile{
		Version: CurrentRulesVersion,
		Apply: []ApplyRule{{
			Match: MatchSpec{},
			Set:   map[string]any{"hitstop": float64(5)},
		}},
	}
	character := &RulesFile{
		Version: CurrentRulesVersion,
		Apply: []ApplyRule{{
			Match: MatchSpec{},
			Set:   map[string]any{"hitstop": float64(9)},
		}},
	}

	merged := MergedApplyRules(project, character)
	if len(merged) != 1 {
		t.Fatalf("expected character rule to replace project rule, got %d rules", len(merged))
	}
	state := authoring.State{Input: "5L", Startup: 1, Active: 1}
	resolved, err := ApplyRulesToMove(project, character, state)
	if err != nil {
		t.Fatalf("ApplyRulesToMove: %v", err)
	}
	if resolved.Hitstop != 9 {
		t.Errorf("Hitstop = %d, want 9", resolved.Hitstop)
	}
}

func TestApplyRuleStackingOverNestedFieldDoesNotCorruptBase(t *testing.T) {
	// Two distinct match specs, both matching the same state, both setting
	// the same nested field. The character rule runs after the project
	// rule (MergedApplyRules order) and must win, since the state's own
	// movement.curve was unset to begin with — the project rule's write
	// must not leak into base and make the character rule think the field
	// is already set.
	tagged := MatchSpec{Tags: []string{"starter"}}
	project := &RulesFile{
		Version: CurrentRulesVersion,
		Apply: []ApplyRule{{
			Match: tagged,
			Set:   map[string]any{"movement": map[string]any{"curve": "project_default"}},
		}},
	}
	character := &RulesFile{
		Version: CurrentRulesVersion,
		Apply: []ApplyRule{{
			Match: MatchSpec{},
			Set:   map[string]any{"movement": map[string]any{"curve": "character_override"}},
		}},
	}

	state := authoring.State{
		Input: "5L", Startup: 1, Active: 1,
		Tags: []authoring.Tag{mustTag(t, "starter")},
	}
	resolved, err := ApplyRulesToMove(project, character, state)
	if err != nil {
		t.Fatalf("ApplyRulesToMove: %v", err)
	}
	if resolved.Movement == nil || resolved.Movement.Curve == nil || *resolved.Movement.Curve != "character_override" {
		t.Fatalf("Movement.Curve = %+v, want character_override", resolved.Movement)
	}
}

func makeValidMove() authoring.State {
	return authoring.State{Input: "5L", Startup: 1, Active: 1, Guard: authoring.GuardMid}
}

func TestValidateRuleExistsWarningWhenAnimationUnset(t *testing.T) {
	rules := &RulesFile{
		Version: CurrentRulesVersion,
		Validate: []ValidateRule{{
			Match:    MatchSpec{},
			Require:  map[string]any{"animation": map[string]any{"exists": true}},
			Severity: SeverityWarning,
		}},
	}

	issues, err := ValidateMoveWithRules(rules, nil, makeValidMove())
	if err != nil {
		t.Fatalf("ValidateMoveWithRules: %v", err)
	}
	if !hasIssue(issues, "animation", SeverityWarning) {
		t.Error("expected animation/warning issue")
	}
}

func TestValidateRuleMinErrorOnStartup(t *testing.T) {
	rules := &RulesFile{
		Version: CurrentRulesVersion,
		Validate: []ValidateRule{{
			Match:    MatchSpec{},
			Require:  map[string]any{"startup": map[string]any{"min": float64(3)}},
			Severity: SeverityError,
		}},
	}
	mv := makeValidMove()
	mv.Startup = 1
	issues, err := ValidateMoveWithRules(rules, nil, mv)
	if err != nil {
		t.Fatalf("ValidateMoveWithRules: %v", err)
	}
	if !hasIssue(issues, "startup", SeverityError) {
		t.Error("expected startup/error issue")
	}
}

func TestValidateRuleMaxError(t *testing.T) {
	rules := &RulesFile{
		Version: CurrentRulesVersion,
		Validate: []ValidateRule{{
			Match:    MatchSpec{},
			Require:  map[string]any{"startup": map[string]any{"max": float64(5)}},
			Severity: SeverityError,
		}},
	}
	mv := makeValidMove()
	mv.Startup = 6
	issues, err := ValidateMoveWithRules(rules, nil, mv)
	if err != nil {
		t.Fatalf("ValidateMoveWithRules: %v", err)
	}
	if !hasIssue(issues, "startup", SeverityError) {
		t.Error("expected startup/error issue")
	}
}

func TestValidateRuleEqualsError(t *testing.T) {
	rules := &RulesFile{
		Version: CurrentRulesVersion,
		Validate: []ValidateRule{{
			Match:    MatchSpec{},
			Require:  map[string]any{"guard": map[string]any{"equals": "low"}},
			Severity: SeverityError,
		}},
	}
	mv := makeValidMove()
	mv.Guard = authoring.GuardMid
	issues, err := ValidateMoveWithRules(rules, nil, mv)
	if err != nil {
		t.Fatalf("ValidateMoveWithRules: %v", err)
	}
	if !hasIssue(issues, "guard", SeverityError) {
		t.Error("expected guard/error issue")
	}
}

func TestValidateRuleInError(t *testing.T) {
	rules := &RulesFile{
		Version: CurrentRulesVersion,
		Validate: []ValidateRule{{
			Match:    MatchSpec{},
			Require:  map[string]any{"guard": map[string]any{"in": []any{"mid", "low"}}},
			Severity: SeverityError,
		}},
	}
	mv := makeValidMove()
	mv.Guard = authoring.GuardHigh
	issues, err := ValidateMoveWithRules(rules, nil, mv)
	if err != nil {
		t.Fatalf("ValidateMoveWithRules: %v", err)
	}
	if !hasIssue(issues, "guard", SeverityError) {
		t.Error("expected guard/error issue")
	}
}

func TestValidateRulesCharacterReplacesProjectSameMatch(t *testing.T) {
	projectMsg := "project"
	characterMsg := "character"
	project := &RulesFile{
		Version: CurrentRulesVersion,
		Validate: []ValidateRule{{
			Match:    MatchSpec{},
			Require:  map[string]any{"startup": map[string]any{"min": float64(3)}},
			Severity: SeverityWarning,
			Message:  &projectMsg,
		}},
	}
	character := &RulesFile{
		Version: CurrentRulesVersion,
		Validate: []ValidateRule{{
			Match:    MatchSpec{},
			Require:  map[string]any{"startup": map[string]any{"min": float64(4)}},
			Severity: SeverityError,
			Message:  &characterMsg,
		}},
	}

	mv := makeValidMove()
	mv.Startup = 3
	issues, err := ValidateMoveWithRules(project, character, mv)
	if err != nil {
		t.Fatalf("ValidateMoveWithRules: %v", err)
	}
	for _, issue := range issues {
		if issue.Message == "project" {
			t.Error("project rule should have been replaced by character rule")
		}
	}
	found := false
	for _, issue := range issues {
		if issue.Message == "character" && issue.Severity == SeverityError {
			found = true
		}
	}
	if !found {
		t.Error("expected character rule's issue to be present")
	}
}

func TestValidateRulesIncludeBuiltinErrors(t *testing.T) {
	mv := makeValidMove()
	mv.Startup = 0
	issues, err := ValidateMoveWithRules(nil, nil, mv)
	if err != nil {
		t.Fatalf("ValidateMoveWithRules: %v", err)
	}
	if !hasIssue(issues, "startup", SeverityError) {
		t.Error("expected built-in startup>=1 violation")
	}
}

func TestValidateRuleMatchingUsesResolvedMove(t *testing.T) {
	inputSpec := One("236*")
	typeSpec := One("special")
	project := &RulesFile{
		Version: CurrentRulesVersion,
		Apply: []ApplyRule{{
			Match: MatchSpec{Input: &inputSpec},
			Set:   map[string]any{"type": "special"},
		}},
		Validate: []ValidateRule{{
			Match:    MatchSpec{Type: &typeSpec},
			Require:  map[string]any{"hitstop": map[string]any{"min": float64(1)}},
			Severity: SeverityError,
		}},
	}

	mv := makeValidMove()
	mv.Input = "236P"
	mv.MoveType = nil
	mv.Hitstop = 0

	issues, err := ValidateMoveWithRules(project, nil, mv)
	if err != nil {
		t.Fatalf("ValidateMoveWithRules: %v", err)
	}
	if !hasIssue(issues, "hitstop", SeverityError) {
		t.Error("expected hitstop/error issue using the apply-resolved type")
	}
}

func TestMergedPropertySchemaAppendsUnique(t *testing.T) {
	project := &RulesFile{Properties: &PropertySchema{Character: []string{"a", "b"}, State: []string{"x"}}}
	character := &RulesFile{Properties: &PropertySchema{Character: []string{"b", "c"}, State: []string{"y"}}}

	merged := MergedPropertySchema(project, character)
	if merged == nil {
		t.Fatal("expected non-nil merged schema")
	}
	wantChar := []string{"a", "b", "c"}
	if !equalStrings(merged.Character, wantChar) {
		t.Errorf("Character = %v, want %v", merged.Character, wantChar)
	}
	wantState := []string{"x", "y"}
	if !equalStrings(merged.State, wantState) {
		t.Errorf("State = %v, want %v", merged.State, wantState)
	}
}

func TestMergedPropertySchemaNilWhenNeitherDefined(t *testing.T) {
	if got := MergedPropertySchema(&RulesFile{}, &RulesFile{}); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestMergedRegistryCharacterOverridesEventsAndMoveTypes(t *testing.T) {
	project := &RulesFile{
		Registry: &RulesRegistry{
			Resources:  []string{"meter"},
			Events:     map[string]EventDefinition{"hit_spark": {Contexts: []EventContext{EventContextOnHit}}},
			MoveTypes:  &MoveTypesConfig{Types: []string{"normal"}},
			ChainOrder: []string{"normal", "special"},
		},
	}
	character := &RulesFile{
		Registry: &RulesRegistry{
			Resources: []string{"stamina"},
			Events:    map[string]EventDefinition{"hit_spark": {Contexts: []EventContext{EventContextOnHit, EventContextOnBlock}}},
		},
	}

	merged := MergedRegistry(project, character)
	if !equalStrings(merged.Resources, []string{"meter", "stamina"}) {
		t.Errorf("Resources = %v", merged.Resources)
	}
	if len(merged.Events["hit_spark"].Contexts) != 2 {
		t.Errorf("expected character's hit_spark definition to win, got %+v", merged.Events["hit_spark"])
	}
	if merged.MoveTypes == nil || merged.MoveTypes.Types[0] != "normal" {
		t.Error("expected project's move_types to survive since character left it unset")
	}
	if !equalStrings(merged.ChainOrder, []string{"normal", "special"}) {
		t.Errorf("ChainOrder = %v", merged.ChainOrder)
	}
}

func TestValidateMoveRegistryRejectsUnknownResourceAndEvent(t *testing.T) {
	registry := RulesRegistry{
		Resources: []string{"meter"},
		Events:    map[string]EventDefinition{"spark": {Contexts: []EventContext{EventContextOnHit}}},
	}
	mv := makeValidMove()
	mv.Costs = []authoring.Cost{{Kind: authoring.CostResource, Amount: 1, Name: "stamina"}}
	mv.OnHit = &authoring.OnHit{Events: []authoring.EventEmit{{ID: "unknown_event"}}}

	var issues []ValidationIssue
	validateMoveRegistry(mv, registry, &issues)

	if !hasIssue(issues, "costs[0].name", SeverityError) {
		t.Error("expected unknown resource 'stamina' to be flagged")
	}
	if !hasIssue(issues, "on_hit.events[0].id", SeverityError) {
		t.Error("expected unregistered event to be flagged")
	}
}

func hasIssue(issues []ValidationIssue, field string, severity Severity) bool {
	for _, i := range issues {
		if i.Field == field && i.Severity == severity {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
