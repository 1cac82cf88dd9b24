package variant

import (
	"fmt"

	"github.com/framesmith/fspack-go/authoring"
)

// NamedState pairs a state's filename-derived key with its decoded value,
// mirroring the (name, State) tuples project loaders hand to validation.
type NamedState struct {
	Name  string
	State authoring.State
}

// ValidateVariants checks that every state declaring a Base has a base
// state that actually exists in baseNames, and that a variant's declared
// Base matches the base implied by its own filename.
func ValidateVariants(states []NamedState, baseNames map[string]bool) []string {
	var errs []string
	for _, ns := range states {
		if ns.State.Base == nil {
			continue
		}
		declaredBase := *ns.State.Base
		impliedBase, variantPart, isVariant := ParseVariantName(ns.Name)

		if !baseNames[declaredBase] {
			errs = append(errs, fmt.Sprintf("Variant '%s': Base state '%s' not found", ns.Name, declaredBase))
		}
		if isVariant && declaredBase != impliedBase {
			errs = append(errs, fmt.Sprintf(
				"Variant '%s': Base field '%s' doesn't match filename implied base '%s'",
				ns.Name, declaredBase, impliedBase))
		}
		_ = variantPart
	}
	return errs
}

// ValidateVariantsNoChain additionally rejects variants that inherit from
// another variant: variant resolution is single-level only.
func ValidateVariantsNoChain(states []NamedState, baseNames, variantNames map[string]bool) []string {
	var errs []string
	for _, ns := range states {
		if ns.State.Base == nil {
			continue
		}
		declaredBase := *ns.State.Base
		impliedBase, _, isVariant := ParseVariantName(ns.Name)

		if variantNames[declaredBase] {
			errs = append(errs, fmt.Sprintf(
				"Variant '%s': Variants cannot inherit from another variant ('%s')", ns.Name, declaredBase))
			continue
		}
		if !baseNames[declaredBase] {
			errs = append(errs, fmt.Sprintf("Variant '%s': Base state '%s' not found", ns.Name, declaredBase))
		}
		if isVariant && declaredBase != impliedBase {
			errs = append(errs, fmt.Sprintf(
				"Variant '%s': Base field '%s' doesn't match filename implied base '%s'",
				ns.Name, declaredBase, impliedBase))
		}
	}
	return errs
}
