package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/ftrvxmtrx/tga"
)

// spriteExtensions is the search order used to resolve a bare texture key
// (as named in an AnimationClip) to an on-disk sprite sheet file.
var spriteExtensions = []string{".tga", ".jpg", ".png"}

// ResolveSpriteFile finds the actual file path for an abstract texture
// key by trying known image extensions against fileIndex (a lowercased
// path -> source bundle index, see BuildFileIndex in bundle.go). Returns the resolved path
// and true if found.
func ResolveSpriteFile(key string, fileIndex map[string]string) (string, bool) {
	lower := strings.ToLower(key)

	for _, ext := range spriteExtensions {
		if strings.HasSuffix(lower, ext) {
			if _, ok := fileIndex[lower]; ok {
				return lower, true
			}
			base := lower[:len(lower)-len(ext)]
			return resolveWithExtensions(base, fileIndex)
		}
	}
	return resolveWithExtensions(lower, fileIndex)
}

func resolveWithExtensions(base string, fileIndex map[string]string) (string, bool) {
	for _, ext := range spriteExtensions {
		candidate := base + ext
		if _, ok := fileIndex[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// SpriteDimensions decodes just enough of a sprite sheet file to report
// its pixel width and height, dispatching on the file's extension.
func SpriteDimensions(path string, data []byte) (width, height int, err error) {
	if strings.HasSuffix(strings.ToLower(path), ".tga") {
		img, err := tga.Decode(bytes.NewReader(data))
		if err != nil {
			return 0, 0, fmt.Errorf("decode tga %s: %w", path, err)
		}
		b := img.Bounds()
		return b.Dx(), b.Dy(), nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// CheckSpriteSheet cross-checks an AnimationClip's declared frame size
// and frame count against an on-disk sheet's actual pixel dimensions.
// Frames are assumed laid out in a single horizontal strip, matching the
// runtime's sprite sampler — a sheet narrower than frameWidth*frames or
// shorter than frameHeight can't possibly hold every declared frame.
func CheckSpriteSheet(path string, data []byte, frameWidth, frameHeight, frames uint32) error {
	w, h, err := SpriteDimensions(path, data)
	if err != nil {
		return err
	}
	wantWidth := int(frameWidth) * int(frames)
	if w < wantWidth || h < int(frameHeight) {
		return fmt.Errorf("sprite %s: declared %dx%d x%d frames needs at least %dx%d pixels, sheet is %dx%d",
			path, frameWidth, frameHeight, frames, wantWidth, frameHeight, w, h)
	}
	return nil
}
