package simkernel

import (
	"testing"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/encoder"
	"github.com/framesmith/fspack-go/fspack"
)

func mustPack(t *testing.T, in encoder.Input) *fspack.PackView {
	t.Helper()
	data, err := encoder.Encode(in)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	pack, err := fspack.Parse(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return pack
}

func strp(v string) *string { return &v }

// TestInitResourcesEmptyPack covers S1: a pack with zero resource
// definitions leaves every slot at its zero value.
func TestInitResourcesEmptyPack(t *testing.T) {
	pack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "empty", Name: "Empty"},
	})

	var state CharacterState
	InitResources(&state, pack)
	for i, v := range state.Resources {
		if v != 0 {
			t.Fatalf("slot %d: expected 0, got %d", i, v)
		}
	}
}

func TestInitResourcesCopiesStartValues(t *testing.T) {
	pack := mustPack(t, encoder.Input{
		Character: authoring.Character{
			ID:   "ryu",
			Name: "Ryu",
			Resources: []authoring.CharacterResource{
				{Name: "meter", Start: 25, Max: 100},
			},
		},
	})

	var state CharacterState
	InitResources(&state, pack)
	if state.Resources[0] != 25 {
		t.Fatalf("expected slot 0 = 25, got %d", state.Resources[0])
	}
}

func normalState(input string) authoring.State {
	mt := "normal"
	return authoring.State{
		Input:    input,
		Name:     input,
		MoveType: &mt,
		Startup:  5,
		Active:   3,
		Recovery: 10,
	}
}

// TestNextFrameAdvancement covers S6: a 10-frame state with no input
// advances frame-by-frame, reporting MoveEnded only once the new frame
// reaches the stored total, and never exceeds 255.
func TestNextFrameAdvancement(t *testing.T) {
	s := normalState("5LP")
	total := uint8(10)
	s.Total = &total

	pack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "ryu", Name: "Ryu"},
		States:    []authoring.State{s},
	})

	state := CharacterState{CurrentState: 0}
	for i := 0; i < int(total)-1; i++ {
		result := NextFrame(&state, pack, nil)
		if result.MoveEnded {
			t.Fatalf("call %d: move ended early at frame %d", i, result.State.Frame)
		}
		state = result.State
	}
	result := NextFrame(&state, pack, nil)
	if !result.MoveEnded {
		t.Fatalf("expected move to end once frame reaches total %d, got frame %d", total, result.State.Frame)
	}
	if result.State.Frame != total {
		t.Fatalf("expected frame to equal total %d, got %d", total, result.State.Frame)
	}
}

func TestNextFrameSaturates(t *testing.T) {
	state := CharacterState{CurrentState: 0, Frame: 255}
	pack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "ryu", Name: "Ryu"},
		States:    []authoring.State{normalState("5LP")},
	})
	result := NextFrame(&state, pack, nil)
	if result.State.Frame != 255 {
		t.Fatalf("expected frame to saturate at 255, got %d", result.State.Frame)
	}
}

// TestCanCancelToTagRule covers S4: a tag rule from "normal" to "special"
// on hit admits the cancel once HitConfirmed is set, and denies it
// otherwise.
func TestCanCancelToTagRule(t *testing.T) {
	normal := normalState("5LP")
	special := normalState("236P")
	special.MoveType = strp("special")

	pack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "ryu", Name: "Ryu"},
		States:    []authoring.State{normal, special},
		Cancel: authoring.CancelTable{
			TagRules: []authoring.CancelTagRule{
				{From: "normal", To: "special", On: authoring.CancelConditionHit, BeforeFrame: 255},
			},
		},
	})

	// "236P" < "5LP" lexically, so special is state 0 and normal is state 1.
	normalIdx, specialIdx := uint16(1), uint16(0)

	state := CharacterState{CurrentState: normalIdx}
	if CanCancelTo(&state, pack, specialIdx) {
		t.Fatalf("expected cancel denied before hit confirmation")
	}

	ReportHit(&state)
	if !CanCancelTo(&state, pack, specialIdx) {
		t.Fatalf("expected cancel admitted once hit confirmed")
	}
}

func TestCanCancelToExplicitDenyOverrides(t *testing.T) {
	normal := normalState("5LP")
	special := normalState("236P")
	special.MoveType = strp("special")

	pack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "ryu", Name: "Ryu"},
		States:    []authoring.State{normal, special},
		Cancel: authoring.CancelTable{
			TagRules: []authoring.CancelTagRule{
				{From: "normal", To: "special", On: authoring.CancelConditionAlways, BeforeFrame: 255},
			},
			Deny: map[string][]string{"5LP": {"236P"}},
		},
	})

	normalIdx, specialIdx := uint16(1), uint16(0)
	state := CharacterState{CurrentState: normalIdx}
	if CanCancelTo(&state, pack, specialIdx) {
		t.Fatalf("expected explicit deny to override an admissible tag rule")
	}
}

// TestCheckHitsOverlap covers the collision contract: overlapping AABB
// hit/hurt shapes on the active frame produce exactly one recorded hit.
func TestCheckHitsOverlap(t *testing.T) {
	attacker := normalState("5LP")
	attacker.Hitboxes = []authoring.FrameHitbox{
		{Frames: authoring.FrameRange{5, 7}, Box: authoring.Rect{X: 0, Y: 0, W: 20, H: 20}},
	}
	defender := normalState("idle")
	defender.Hurtboxes = []authoring.FrameHitbox{
		{Frames: authoring.FrameRange{0, 255}, Box: authoring.Rect{X: 10, Y: 0, W: 20, H: 20}},
	}

	attackerPack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "ryu", Name: "Ryu"},
		States:    []authoring.State{attacker},
	})
	defenderPack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "ken", Name: "Ken"},
		States:    []authoring.State{defender},
	})

	attackerState := CharacterState{CurrentState: 0, Frame: 6}
	defenderState := CharacterState{CurrentState: 0, Frame: 0}

	result := CheckHits(&attackerState, attackerPack, Position{}, &defenderState, defenderPack, Position{})
	if result.Len() != 1 {
		t.Fatalf("expected 1 hit, got %d", result.Len())
	}
}

func TestCheckHitsNoOverlapOutsideWindow(t *testing.T) {
	attacker := normalState("5LP")
	attacker.Hitboxes = []authoring.FrameHitbox{
		{Frames: authoring.FrameRange{5, 7}, Box: authoring.Rect{X: 0, Y: 0, W: 20, H: 20}},
	}
	defender := normalState("idle")
	defender.Hurtboxes = []authoring.FrameHitbox{
		{Frames: authoring.FrameRange{0, 255}, Box: authoring.Rect{X: 10, Y: 0, W: 20, H: 20}},
	}

	attackerPack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "ryu", Name: "Ryu"},
		States:    []authoring.State{attacker},
	})
	defenderPack := mustPack(t, encoder.Input{
		Character: authoring.Character{ID: "ken", Name: "Ken"},
		States:    []authoring.State{defender},
	})

	attackerState := CharacterState{CurrentState: 0, Frame: 0} // before the hit window opens
	defenderState := CharacterState{CurrentState: 0, Frame: 0}

	result := CheckHits(&attackerState, attackerPack, Position{}, &defenderState, defenderPack, Position{})
	if result.Len() != 0 {
		t.Fatalf("expected no hits outside the active window, got %d", result.Len())
	}
}

// TestCalculatePushboxSeparationEvenSplit covers S5: widths 20 at x=0 and
// x=14 overlap by 6 and split evenly (-3, +3).
func TestCalculatePushboxSeparationEvenSplit(t *testing.T) {
	p1 := Aabb{X: 0, Y: 0, W: 20, H: 40}
	p2 := Aabb{X: 14, Y: 0, W: 20, H: 40}

	result, ok := calculatePushboxSeparation(p1, p2)
	if !ok {
		t.Fatalf("expected boxes to overlap")
	}
	if result.P1Dx != -3 || result.P2Dx != 3 {
		t.Fatalf("expected (-3, 3), got (%d, %d)", result.P1Dx, result.P2Dx)
	}
}

func TestCalculatePushboxSeparationOddRemainder(t *testing.T) {
	// centers at 10 and 25 (p1=[0,20), p2=[15,35)): overlap is 5.
	p1 := Aabb{X: 0, Y: 0, W: 20, H: 40}
	p2 := Aabb{X: 15, Y: 0, W: 20, H: 40}

	result, ok := calculatePushboxSeparation(p1, p2)
	if !ok {
		t.Fatalf("expected boxes to overlap")
	}
	if result.P1Dx != -3 || result.P2Dx != 2 {
		t.Fatalf("expected (-3, 2), got (%d, %d)", result.P1Dx, result.P2Dx)
	}
}

func TestCalculatePushboxSeparationNoOverlap(t *testing.T) {
	p1 := Aabb{X: 0, Y: 0, W: 10, H: 10}
	p2 := Aabb{X: 100, Y: 0, W: 10, H: 10}
	if _, ok := calculatePushboxSeparation(p1, p2); ok {
		t.Fatalf("expected no separation result for non-overlapping boxes")
	}
}

func TestAabbOverlapEdgeTouchingIsNotOverlap(t *testing.T) {
	a := Aabb{X: 0, Y: 0, W: 10, H: 10}
	b := Aabb{X: 10, Y: 0, W: 10, H: 10}
	if aabbOverlap(a, b) {
		t.Fatalf("edge-touching boxes must not count as overlapping")
	}
}

