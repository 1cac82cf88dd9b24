package authoring

import (
	"encoding/json"
	"testing"
)

func TestTagValidation(t *testing.T) {
	if _, err := NewTag(""); err == nil {
		t.Fatalf("expected error for empty tag")
	}
	if _, err := NewTag("Overhead"); err == nil {
		t.Fatalf("expected error for uppercase tag")
	}
	tag, err := NewTag("overhead_mid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.String() != "overhead_mid" {
		t.Fatalf("unexpected tag string: %q", tag)
	}
}

func TestHitboxShapeRoundTrip(t *testing.T) {
	shapes := []HitboxShape{
		{Kind: ShapeAABB, X: 10, Y: -5, W: 40, H: 60},
		{Kind: ShapeRect, X: 1, Y: 2, W: 3, H: 4, Angle: 0.5},
		{Kind: ShapeCircle, X: 0, Y: 0, R: 20},
		{Kind: ShapeCapsule, X1: 0, Y1: 0, X2: 10, Y2: 10, R: 5},
	}
	for _, s := range shapes {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal %v: %v", s.Kind, err)
		}
		var got HitboxShape
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %v: %v", s.Kind, err)
		}
		if got != s {
			t.Fatalf("round trip mismatch for %v: got %+v, want %+v", s.Kind, got, s)
		}
	}
}

func TestAnimationClipSpriteDecodesWithPartialPivot(t *testing.T) {
	data := []byte(`{
		"mode": "sprite",
		"texture": "atlas.main",
		"frame_size": {"w": 64, "h": 32},
		"frames": 18,
		"pivot": {"x": 128}
	}`)
	var clip AnimationClip
	if err := json.Unmarshal(data, &clip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clip.Mode != AnimationModeSprite {
		t.Fatalf("expected sprite mode, got %v", clip.Mode)
	}
	if clip.Pivot2.X != 128 || clip.Pivot2.Y != 0 {
		t.Fatalf("unexpected pivot: %+v", clip.Pivot2)
	}
}

func TestAnimationClipGltfDefaultsFPS(t *testing.T) {
	data := []byte(`{"mode": "gltf", "model": "char.body", "clip": "Idle"}`)
	var clip AnimationClip
	if err := json.Unmarshal(data, &clip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clip.FPS != defaultGltfFPS {
		t.Fatalf("expected default fps %v, got %v", defaultGltfFPS, clip.FPS)
	}
}

func TestPreconditionRoundTripByKind(t *testing.T) {
	minV, maxV := uint16(25), uint16(100)
	preconds := []Precondition{
		{Kind: PreconditionMeter, Min: &minV, Max: &maxV},
		{Kind: PreconditionGrounded},
		{Kind: PreconditionState, In: "crouching"},
		{Kind: PreconditionOpponentState, InList: []string{"blockstun", "hitstun"}},
	}
	for _, p := range preconds {
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %v: %v", p.Kind, err)
		}
		var got Precondition
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %v: %v", p.Kind, err)
		}
		if got.Kind != p.Kind {
			t.Fatalf("kind mismatch: got %v, want %v", got.Kind, p.Kind)
		}
	}
}

func TestEventArgValueUntagged(t *testing.T) {
	var v EventArgValue
	if err := json.Unmarshal([]byte(`42`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I64 == nil || *v.I64 != 42 {
		t.Fatalf("expected i64 42, got %+v", v)
	}

	var s EventArgValue
	if err := json.Unmarshal([]byte(`"hello"`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.String == nil || *s.String != "hello" {
		t.Fatalf("expected string hello, got %+v", s)
	}
}

func TestPropertyValueUntagged(t *testing.T) {
	var v PropertyValue
	if err := json.Unmarshal([]byte(`3.5`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number == nil || *v.Number != 3.5 {
		t.Fatalf("expected number 3.5, got %+v", v)
	}
}

func TestStateDefaultsToMidGuard(t *testing.T) {
	s := NewState()
	if s.Guard != GuardMid {
		t.Fatalf("expected default guard mid, got %v", s.Guard)
	}
}

func TestCharacterJSONRoundTrip(t *testing.T) {
	num := 1.5
	c := Character{
		ID:   "ryu",
		Name: "Ryu",
		Properties: map[string]PropertyValue{
			"walk_speed": {Number: &num},
		},
		Resources: []CharacterResource{{Name: "meter", Start: 0, Max: 100}},
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Character
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != c.ID || got.Name != c.Name {
		t.Fatalf("unexpected character: %+v", got)
	}
	if got.Resources[0].Max != 100 {
		t.Fatalf("unexpected resources: %+v", got.Resources)
	}
}
