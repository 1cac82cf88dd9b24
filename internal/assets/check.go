package assets

import (
	"fmt"

	"github.com/framesmith/fspack-go/authoring"
)

// CheckCharacterSprites cross-checks every sprite-mode AnimationClip in a
// character's asset manifest against an on-disk bundle, using manifest
// to resolve each clip's texture key without re-scanning the bundle per
// clip. Returns one error per clip that fails to resolve or whose
// declared frame size/count doesn't fit the sheet's actual pixel
// dimensions; a clean character returns a nil slice.
func CheckCharacterSprites(characterID string, assets authoring.CharacterAssets, manifest *CharacterManifest) []error {
	var problems []error

	for name, clip := range assets.Animations {
		if clip.Mode != authoring.AnimationModeSprite || clip.Texture == "" {
			continue
		}
		if err := checkOneSprite(clip, manifest); err != nil {
			problems = append(problems, fmt.Errorf("%s: animation %q: %w", characterID, name, err))
		}
	}
	return problems
}

func checkOneSprite(clip authoring.AnimationClip, manifest *CharacterManifest) error {
	path, ok := ResolveSpriteFile(clip.Texture, manifest.FileIndex)
	if !ok {
		return fmt.Errorf("texture %q: no sprite sheet found in bundle", clip.Texture)
	}

	bundlePath := manifest.FileIndex[path]
	data, err := ReadFileFromBundle(bundlePath, path)
	if err != nil {
		return fmt.Errorf("texture %q: %w", clip.Texture, err)
	}

	return CheckSpriteSheet(path, data, clip.FrameSize.W, clip.FrameSize.H, clip.Frames)
}
