package authoring

import (
	"encoding/json"
	"fmt"
)

// FrameSize is a sprite atlas frame's pixel dimensions.
type FrameSize struct {
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// Pivot2 is a sprite's pixel-space pivot offset.
type Pivot2 struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Pivot3 is a 3D model's local-space pivot offset.
type Pivot3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// AnimationClipMode identifies whether an AnimationClip plays a sprite
// atlas or a glTF clip.
type AnimationClipMode string

const (
	AnimationModeSprite AnimationClipMode = "sprite"
	AnimationModeGltf   AnimationClipMode = "gltf"
)

// defaultGltfFPS is applied when a gltf clip omits fps.
const defaultGltfFPS = 60.0

// AnimationClip is a single named animation, either a sprite-sheet atlas
// reference or a glTF model clip reference.
type AnimationClip struct {
	Mode AnimationClipMode

	// Sprite.
	Texture   string
	FrameSize FrameSize
	Frames    uint32
	Pivot2    Pivot2

	// Gltf.
	Model  string
	Clip   string
	FPS    float32
	Pivot3 Pivot3
}

type animationClipWire struct {
	Mode      AnimationClipMode `json:"mode"`
	Texture   string            `json:"texture,omitempty"`
	FrameSize *FrameSize        `json:"frame_size,omitempty"`
	Frames    uint32            `json:"frames,omitempty"`
	Pivot     json.RawMessage   `json:"pivot,omitempty"`
	Model     string            `json:"model,omitempty"`
	Clip      string            `json:"clip,omitempty"`
	FPS       *float32          `json:"fps,omitempty"`
}

// MarshalJSON encodes the clip using its mode's tagged field set.
func (c AnimationClip) MarshalJSON() ([]byte, error) {
	w := animationClipWire{Mode: c.Mode}
	switch c.Mode {
	case AnimationModeSprite:
		w.Texture = c.Texture
		w.FrameSize = &c.FrameSize
		w.Frames = c.Frames
		raw, err := json.Marshal(c.Pivot2)
		if err != nil {
			return nil, err
		}
		w.Pivot = raw
	case AnimationModeGltf:
		w.Model = c.Model
		w.Clip = c.Clip
		w.FPS = &c.FPS
		raw, err := json.Marshal(c.Pivot3)
		if err != nil {
			return nil, err
		}
		w.Pivot = raw
	default:
		return nil, fmt.Errorf("authoring: unknown animation clip mode %q", c.Mode)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the clip from its mode's tagged field set, filling
// in the gltf fps default and zero-value pivots when omitted.
func (c *AnimationClip) UnmarshalJSON(data []byte) error {
	var w animationClipWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out := AnimationClip{Mode: w.Mode}
	switch w.Mode {
	case AnimationModeSprite:
		out.Texture = w.Texture
		if w.FrameSize != nil {
			out.FrameSize = *w.FrameSize
		}
		out.Frames = w.Frames
		if len(w.Pivot) > 0 {
			if err := json.Unmarshal(w.Pivot, &out.Pivot2); err != nil {
				return err
			}
		}
	case AnimationModeGltf:
		out.Model = w.Model
		out.Clip = w.Clip
		if w.FPS != nil {
			out.FPS = *w.FPS
		} else {
			out.FPS = defaultGltfFPS
		}
		if len(w.Pivot) > 0 {
			if err := json.Unmarshal(w.Pivot, &out.Pivot3); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("authoring: unknown animation clip mode %q", w.Mode)
	}
	*c = out
	return nil
}

// CharacterAssets is a character's texture, model, and animation manifest.
type CharacterAssets struct {
	Version    uint32                   `json:"version"`
	Textures   map[string]string        `json:"textures,omitempty"`
	Models     map[string]string        `json:"models,omitempty"`
	Animations map[string]AnimationClip `json:"animations,omitempty"`
}

// NewCharacterAssets returns an empty assets manifest at the current
// manifest version.
func NewCharacterAssets() CharacterAssets {
	return CharacterAssets{Version: 1}
}
