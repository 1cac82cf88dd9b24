// Package encoder compiles a resolved character — its property sheet,
// state list, and cancel table — into a single FSPK binary pack. Encoding
// is a deterministic single pass: given the same input, it always
// produces byte-identical output, which is what lets compiled packs be
// content-addressed and cached.
package encoder

import (
	"fmt"
	"sort"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/fspack"
	"github.com/framesmith/fspack-go/rules"
)

// Input is everything the encoder needs to compile one character's pack.
type Input struct {
	Character authoring.Character
	Assets    authoring.CharacterAssets
	States    []authoring.State
	Cancel    authoring.CancelTable
	Registry  rules.RulesRegistry
}

// ErrValidation is returned when one or more states fail the built-in or
// registry validations with error severity. The encoder never emits a
// pack over hard validation failures; warnings do not block encoding.
type ErrValidation struct {
	Issues []StateIssue
}

// StateIssue pairs a validation issue with the input notation of the
// state it was raised against.
type StateIssue struct {
	Input string
	Issue rules.ValidationIssue
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("encoder: %d validation error(s), first: %s: %s", len(e.Issues), e.Issues[0].Input, e.Issues[0].Issue.Message)
}

// Encode compiles in.States (and the character/cancel data alongside
// them) into a complete FSPK byte buffer. States are canonicalized by
// sorting on Input before any index is assigned, so move indices — and
// therefore every byte of the output — are stable regardless of input
// ordering.
func Encode(in Input) ([]byte, error) {
	states := make([]authoring.State, len(in.States))
	copy(states, in.States)
	sort.Slice(states, func(i, j int) bool { return states[i].Input < states[j].Input })

	if err := validateStates(states, in.Registry); err != nil {
		return nil, err
	}

	strings := fspack.NewStringTable()

	inputToIndex := make(map[string]uint16, len(states))
	for i, s := range states {
		inputToIndex[s.Input] = uint16(i)
	}

	animToIndex, meshKeys, keyframesKeys, err := buildAssetKeys(in.Character.ID, states, strings)
	if err != nil {
		return nil, err
	}

	moves, err := packMoves(states, animToIndex, strings)
	if err != nil {
		return nil, err
	}

	extras, err := packExtras(states, strings)
	if err != nil {
		return nil, err
	}

	tagRanges, tags, err := packStateTags(states, strings)
	if err != nil {
		return nil, err
	}

	cancelTagRules, err := packCancelTagRules(in.Cancel.TagRules, strings)
	if err != nil {
		return nil, err
	}
	cancelDenies := packCancelDenies(in.Cancel.Deny, inputToIndex)

	resourceDefs, err := packResourceDefs(in.Character.Resources, strings)
	if err != nil {
		return nil, err
	}

	characterProps, err := packFlatProperties(in.Character.Properties, strings)
	if err != nil {
		return nil, err
	}
	stateProps, err := packStateProps(states, strings)
	if err != nil {
		return nil, err
	}

	sections := []sectionData{
		{kind: fspack.KindStringTable, align: 1, bytes: strings.Bytes()},
		{kind: fspack.KindMeshKeys, align: 4, bytes: meshKeys},
		{kind: fspack.KindKeyframesKeys, align: 4, bytes: keyframesKeys},
		{kind: fspack.KindStates, align: 4, bytes: moves.states},
		{kind: fspack.KindHitWindows, align: 4, bytes: moves.hitWindows},
		{kind: fspack.KindHurtWindows, align: 4, bytes: moves.hurtWindows},
		{kind: fspack.KindPushWindows, align: 4, bytes: moves.pushWindows},
		{kind: fspack.KindShapes, align: 4, bytes: moves.shapes},
	}
	sections = appendIfNonEmpty(sections, fspack.KindResourceDefs, resourceDefs)
	sections = appendIfNonEmpty(sections, fspack.KindStateExtras, extras.stateExtras)
	sections = appendIfNonEmpty(sections, fspack.KindEventEmits, extras.eventEmits)
	sections = appendIfNonEmpty(sections, fspack.KindEventArgs, extras.eventArgs)
	sections = appendIfNonEmpty(sections, fspack.KindMoveNotifies, extras.notifies)
	sections = appendIfNonEmpty(sections, fspack.KindMoveResourceCosts, extras.costs)
	sections = appendIfNonEmpty(sections, fspack.KindMoveResourcePreconditions, extras.preconditions)
	sections = appendIfNonEmpty(sections, fspack.KindMoveResourceDeltas, extras.deltas)
	if len(tags) > 0 {
		sections = append(sections,
			sectionData{kind: fspack.KindStateTagRanges, align: 4, bytes: tagRanges},
			sectionData{kind: fspack.KindStateTags, align: 4, bytes: tags},
		)
	}
	sections = appendIfNonEmpty(sections, fspack.KindCancelTagRules, cancelTagRules)
	sections = appendIfNonEmpty(sections, fspack.KindCancelDenies, cancelDenies)
	sections = appendIfNonEmpty(sections, fspack.KindCharacterProps, characterProps)
	sections = appendIfNonEmpty(sections, fspack.KindStateProps, stateProps)

	if len(sections) > fspack.MaxSections {
		return nil, fmt.Errorf("encoder: %d sections exceeds max %d", len(sections), fspack.MaxSections)
	}

	return assemblePack(sections)
}

func appendIfNonEmpty(sections []sectionData, kind uint32, bytes []byte) []sectionData {
	if len(bytes) == 0 {
		return sections
	}
	return append(sections, sectionData{kind: kind, align: 4, bytes: bytes})
}

func validateStates(states []authoring.State, registry rules.RulesRegistry) error {
	var issues []StateIssue
	for _, s := range states {
		for _, iss := range rules.BuiltinValidateMove(s) {
			if iss.Severity == rules.SeverityError {
				issues = append(issues, StateIssue{Input: s.Input, Issue: iss})
			}
		}
		for _, iss := range rules.ValidateMoveRegistry(s, registry) {
			if iss.Severity == rules.SeverityError {
				issues = append(issues, StateIssue{Input: s.Input, Issue: iss})
			}
		}
	}
	if len(issues) > 0 {
		return &ErrValidation{Issues: issues}
	}
	return nil
}
