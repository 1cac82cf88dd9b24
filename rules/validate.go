package rules

import (
	"encoding/json"
	"fmt"

	"github.com/framesmith/fspack-go/authoring"
)

// MergedValidateRules concatenates project and character validate rules,
// with a character rule replacing any project rule sharing its exact
// match spec, same semantics as MergedApplyRules.
func MergedValidateRules(project, character *RulesFile) []ValidateRule {
	var merged []ValidateRule
	if project != nil {
		merged = append(merged, project.Validate...)
	}
	if character == nil {
		return merged
	}
	for _, rule := range character.Validate {
		filtered := merged[:0:0]
		for _, existing := range merged {
			if !existing.Match.Equal(rule.Match) {
				filtered = append(filtered, existing)
			}
		}
		merged = filtered
	}
	merged = append(merged, character.Validate...)
	return merged
}

func isConstraintObject(m map[string]any) bool {
	for _, key := range []string{"min", "max", "exists", "equals", "in"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

func asFloat64(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func constraintsPass(constraint map[string]any, target any, targetSet bool) bool {
	if existsVal, ok := constraint["exists"]; ok {
		want, ok := existsVal.(bool)
		if !ok {
			return false
		}
		presentAndSet := targetSet && !isUnsetValue(target)
		if want != presentAndSet {
			return false
		}
	}

	if minVal, ok := constraint["min"]; ok {
		min, ok := asFloat64(minVal)
		if !ok {
			return false
		}
		if !targetSet || isUnsetValue(target) {
			return false
		}
		num, ok := asFloat64(target)
		if !ok || num < min {
			return false
		}
	}

	if maxVal, ok := constraint["max"]; ok {
		max, ok := asFloat64(maxVal)
		if !ok {
			return false
		}
		if !targetSet || isUnsetValue(target) {
			return false
		}
		num, ok := asFloat64(target)
		if !ok || num > max {
			return false
		}
	}

	if equalsVal, ok := constraint["equals"]; ok {
		if !targetSet {
			return false
		}
		a, _ := json.Marshal(equalsVal)
		b, _ := json.Marshal(target)
		if string(a) != string(b) {
			return false
		}
	}

	if inVal, ok := constraint["in"]; ok {
		arr, ok := inVal.([]any)
		if !ok {
			return false
		}
		if !targetSet {
			return false
		}
		b, _ := json.Marshal(target)
		found := false
		for _, v := range arr {
			a, _ := json.Marshal(v)
			if string(a) == string(b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func validateRequireObject(rule ValidateRule, require map[string]any, resolved any, path []string, issues *[]ValidationIssue) {
	for key, val := range require {
		p := append(path, key)
		obj, ok := val.(map[string]any)
		if !ok {
			continue
		}
		if isConstraintObject(obj) {
			target, found := getValueAtPath(resolved, p)
			if !constraintsPass(obj, target, found) {
				field := joinPath(p)
				message := fmt.Sprintf("Rule violation: %s", field)
				if rule.Message != nil {
					message = *rule.Message
				}
				*issues = append(*issues, ValidationIssue{
					Field:    field,
					Message:  message,
					Severity: rule.Severity,
				})
			}
		} else {
			validateRequireObject(rule, obj, resolved, p, issues)
		}
	}
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

// ValidateMoveWithRules applies defaulting rules, then runs registry
// checks, built-in validations, and ValidateRules against the resolved
// state, returning every issue found.
func ValidateMoveWithRules(project, character *RulesFile, state authoring.State) ([]ValidationIssue, error) {
	resolved, err := ApplyRulesToMove(project, character, state)
	if err != nil {
		return nil, err
	}

	var issues []ValidationIssue

	registry := MergedRegistry(project, character)
	validateMoveRegistry(resolved, registry, &issues)
	issues = append(issues, builtinValidateMove(resolved)...)

	data, err := json.Marshal(resolved)
	if err != nil {
		return nil, fmt.Errorf("rules: encode resolved state: %w", err)
	}
	var resolvedJSON any
	if err := json.Unmarshal(data, &resolvedJSON); err != nil {
		return nil, fmt.Errorf("rules: decode resolved state: %w", err)
	}

	for _, rule := range MergedValidateRules(project, character) {
		if !MatchesMove(rule.Match, resolved) {
			continue
		}
		validateRequireObject(rule, rule.Require, resolvedJSON, nil, &issues)
	}

	return issues, nil
}

// BuiltinValidateMove runs the always-on built-in validations (frame-data
// sanity, hitbox/hurtbox bounds, precondition/cost/movement/status-effect
// ranges) independent of any project or character rules file. The encoder
// calls this as a final safety net before emitting a pack.
func BuiltinValidateMove(s authoring.State) []ValidationIssue {
	return builtinValidateMove(s)
}

// ValidateMoveRegistry checks notify-frame bounds, resource-name
// references, and event id/context/argument references against registry,
// independent of any apply/validate rule files.
func ValidateMoveRegistry(state authoring.State, registry RulesRegistry) []ValidationIssue {
	var issues []ValidationIssue
	validateMoveRegistry(state, registry, &issues)
	return issues
}

// validateMoveRegistry checks notify-frame bounds, resource-name
// references, and event id/context/argument references against the
// merged registry.
func validateMoveRegistry(state authoring.State, registry RulesRegistry, issues *[]ValidationIssue) {
	allowedResources := map[string]bool{}
	for _, r := range registry.Resources {
		allowedResources[r] = true
	}

	total := int(state.Startup) + int(state.Active) + int(state.Recovery)

	for i, notify := range state.Notifies {
		if int(notify.Frame) > total {
			*issues = append(*issues, ValidationIssue{
				Field:    fmt.Sprintf("notifies[%d].frame", i),
				Message:  fmt.Sprintf("notify frame %d exceeds total frames %d", notify.Frame, total),
				Severity: SeverityError,
			})
		}
	}

	checkResource := func(field, name string) {
		if !allowedResources[name] {
			*issues = append(*issues, ValidationIssue{
				Field:    field,
				Message:  fmt.Sprintf("Unknown resource '%s' (not registered)", name),
				Severity: SeverityError,
			})
		}
	}

	for i, p := range state.Preconditions {
		if p.Kind == authoring.PreconditionResource {
			checkResource(fmt.Sprintf("preconditions[%d].name", i), p.Name)
		}
	}
	for i, c := range state.Costs {
		if c.Kind == authoring.CostResource {
			checkResource(fmt.Sprintf("costs[%d].name", i), c.Name)
		}
	}
	if state.OnUse != nil {
		for i, d := range state.OnUse.ResourceDeltas {
			checkResource(fmt.Sprintf("on_use.resource_deltas[%d].name", i), d.Name)
		}
	}
	if state.OnHit != nil {
		for i, d := range state.OnHit.ResourceDeltas {
			checkResource(fmt.Sprintf("on_hit.resource_deltas[%d].name", i), d.Name)
		}
	}
	if state.OnBlock != nil {
		for i, d := range state.OnBlock.ResourceDeltas {
			checkResource(fmt.Sprintf("on_block.resource_deltas[%d].name", i), d.Name)
		}
	}

	validateEmit := func(context EventContext, base string, emit authoring.EventEmit) {
		def, ok := registry.Events[emit.ID]
		if !ok {
			*issues = append(*issues, ValidationIssue{
				Field:    base + ".id",
				Message:  fmt.Sprintf("Unknown event '%s' (not registered)", emit.ID),
				Severity: SeverityError,
			})
			return
		}

		allowed := false
		for _, c := range def.Contexts {
			if c == context {
				allowed = true
				break
			}
		}
		if !allowed {
			*issues = append(*issues, ValidationIssue{
				Field:    base + ".id",
				Message:  fmt.Sprintf("Event '%s' not allowed in context '%s'", emit.ID, context),
				Severity: SeverityError,
			})
		}

		for k, v := range emit.Args {
			spec, ok := def.Args[k]
			if !ok {
				*issues = append(*issues, ValidationIssue{
					Field:    fmt.Sprintf("%s.args.%s", base, k),
					Message:  fmt.Sprintf("Unknown arg key '%s' for event '%s'", k, emit.ID),
					Severity: SeverityError,
				})
				continue
			}
			validateEventArg(issues, base, k, emit.ID, spec, v)
		}
	}

	if state.OnUse != nil {
		for i, emit := range state.OnUse.Events {
			validateEmit(EventContextOnUse, fmt.Sprintf("on_use.events[%d]", i), emit)
		}
	}
	if state.OnHit != nil {
		for i, emit := range state.OnHit.Events {
			validateEmit(EventContextOnHit, fmt.Sprintf("on_hit.events[%d]", i), emit)
		}
	}
	if state.OnBlock != nil {
		for i, emit := range state.OnBlock.Events {
			validateEmit(EventContextOnBlock, fmt.Sprintf("on_block.events[%d]", i), emit)
		}
	}
	for ni, notify := range state.Notifies {
		for ei, emit := range notify.Events {
			validateEmit(EventContextNotify, fmt.Sprintf("notifies[%d].events[%d]", ni, ei), emit)
		}
	}
}

func validateEventArg(issues *[]ValidationIssue, base, key, eventID string, spec EventArgSpec, v authoring.EventArgValue) {
	field := fmt.Sprintf("%s.args.%s", base, key)
	mismatch := func(expected string) {
		*issues = append(*issues, ValidationIssue{
			Field:    field,
			Message:  fmt.Sprintf("Type mismatch for arg '%s' on event '%s': expected %s", key, eventID, expected),
			Severity: SeverityError,
		})
	}

	switch spec.Type {
	case "bool":
		if v.Bool == nil {
			mismatch("bool")
		}
	case "i64":
		if v.I64 == nil {
			mismatch("i64")
		}
	case "string":
		if v.String == nil {
			mismatch("string")
		}
	case "f32":
		var x float32
		switch {
		case v.F32 != nil:
			x = *v.F32
		case v.I64 != nil:
			x = float32(*v.I64)
		default:
			mismatch("f32")
			return
		}
		if spec.Min != nil && x < *spec.Min {
			*issues = append(*issues, ValidationIssue{
				Field:    field,
				Message:  fmt.Sprintf("Value for arg '%s' must be >= %v", key, *spec.Min),
				Severity: SeverityError,
			})
		}
		if spec.Max != nil && x > *spec.Max {
			*issues = append(*issues, ValidationIssue{
				Field:    field,
				Message:  fmt.Sprintf("Value for arg '%s' must be <= %v", key, *spec.Max),
				Severity: SeverityError,
			})
		}
	case "enum":
		if v.String == nil {
			mismatch("enum (string)")
			return
		}
		found := false
		for _, allowed := range spec.Values {
			if allowed == *v.String {
				found = true
				break
			}
		}
		if !found {
			*issues = append(*issues, ValidationIssue{
				Field:    field,
				Message:  fmt.Sprintf("Invalid enum value '%s' for arg '%s' on event '%s'", *v.String, key, eventID),
				Severity: SeverityError,
			})
		}
	}
}

// builtinValidateMove runs the fixed set of always-on checks that do not
// depend on project or character rules.
func builtinValidateMove(s authoring.State) []ValidationIssue {
	var issues []ValidationIssue
	errf := func(field, msg string) {
		issues = append(issues, ValidationIssue{Field: field, Message: msg, Severity: SeverityError})
	}

	if s.Startup < 1 {
		errf("startup", "startup must be at least 1 frame")
	}
	if s.Active < 1 {
		errf("active", "active must be at least 1 frame")
	}
	if s.Input == "" {
		errf("input", "input cannot be empty")
	}

	total := int(s.Startup) + int(s.Active) + int(s.Recovery)

	for i, fh := range s.Hitboxes {
		if fh.Frames.Start() > fh.Frames.End() {
			errf(fmt.Sprintf("hitboxes[%d].frames", i), "start frame cannot be after end frame")
		}
		if int(fh.Frames.End()) > total {
			errf(fmt.Sprintf("hitboxes[%d].frames", i), "end frame exceeds total frames")
		}
	}

	for i, hit := range s.Hits {
		if hit.Frames.Start() > hit.Frames.End() {
			errf(fmt.Sprintf("hits[%d].frames", i), "start frame cannot be after end frame")
		}
		for j, box := range hit.Hitboxes {
			validateShapeDimensions(box, fmt.Sprintf("hits[%d].hitboxes[%d]", i, j), &issues)
		}
	}

	for i, p := range s.Preconditions {
		switch p.Kind {
		case authoring.PreconditionMeter:
			if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
				errf(fmt.Sprintf("preconditions[%d] (Meter)", i), "meter min cannot be greater than max")
			}
		case authoring.PreconditionCharge:
			if p.MinFrames == 0 {
				errf(fmt.Sprintf("preconditions[%d] (Charge)", i), "charge min_frames must be greater than 0")
			}
		case authoring.PreconditionHealth:
			if p.MinByte != nil && *p.MinByte > 100 {
				errf(fmt.Sprintf("preconditions[%d] (Health)", i), "health min/max_percent cannot exceed 100")
			}
			if p.MaxByte != nil && *p.MaxByte > 100 {
				errf(fmt.Sprintf("preconditions[%d] (Health)", i), "health min/max_percent cannot exceed 100")
			}
			if p.MinByte != nil && p.MaxByte != nil && *p.MinByte > *p.MaxByte {
				errf(fmt.Sprintf("preconditions[%d] (Health)", i), "health min_percent cannot be greater than max_percent")
			}
		}
	}

	for i, c := range s.Costs {
		if c.Amount == 0 {
			errf(fmt.Sprintf("costs[%d].amount", i), "cost amount must be greater than 0")
		}
	}

	if s.Movement != nil {
		if s.Movement.Distance == nil && s.Movement.Velocity == nil {
			errf("movement", "movement must have either distance or velocity defined")
		}
		if s.Movement.Distance != nil && *s.Movement.Distance <= 0 {
			errf("movement.distance", "movement distance must be greater than 0")
		}
	}

	if s.SuperFreeze != nil {
		if s.SuperFreeze.Frames == 0 {
			errf("super_freeze.frames", "super_freeze frames must be greater than 0")
		}
		if s.SuperFreeze.Zoom != nil && *s.SuperFreeze.Zoom <= 0 {
			errf("super_freeze.zoom", "super_freeze zoom must be greater than 0")
		}
		if s.SuperFreeze.Darken != nil && (*s.SuperFreeze.Darken < 0 || *s.SuperFreeze.Darken > 1) {
			errf("super_freeze.darken", "super_freeze darken must be between 0.0 and 1.0")
		}
	}

	if s.OnHit != nil {
		for i, st := range s.OnHit.Status {
			if st.Duration == 0 {
				errf(fmt.Sprintf("on_hit.status[%d].duration", i), "duration must be greater than 0")
			}
			if st.Kind == authoring.StatusPoison || st.Kind == authoring.StatusBurn {
				if st.DamagePerFrame == 0 {
					errf(fmt.Sprintf("on_hit.status[%d].damage_per_frame", i), "damage_per_frame must be greater than 0")
				}
			}
			if st.Kind == authoring.StatusSlow {
				if st.Multiplier < 0 || st.Multiplier > 1 {
					errf(fmt.Sprintf("on_hit.status[%d].multiplier (Slow)", i), "slow multiplier must be between 0.0 and 1.0")
				}
			}
		}
	}

	for i, fh := range s.AdvancedHurtboxes {
		if fh.Frames.Start() > fh.Frames.End() {
			errf(fmt.Sprintf("advanced_hurtboxes[%d].frames", i), "start frame cannot be after end frame")
		}
	}

	return issues
}

func validateShapeDimensions(shape authoring.HitboxShape, base string, issues *[]ValidationIssue) {
	errf := func(field, msg string) {
		*issues = append(*issues, ValidationIssue{Field: field, Message: msg, Severity: SeverityError})
	}
	switch shape.Kind {
	case authoring.ShapeAABB, authoring.ShapeRect:
		if shape.W <= 0 {
			errf(base+".w", "width must be greater than 0")
		}
		if shape.H <= 0 {
			errf(base+".h", "height must be greater than 0")
		}
	case authoring.ShapeCircle:
		if shape.R <= 0 {
			errf(base+".r", "radius must be greater than 0")
		}
	case authoring.ShapeCapsule:
		if shape.R <= 0 {
			errf(base+".r", "radius must be greater than 0")
		}
	}
}
