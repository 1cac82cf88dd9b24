package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/framesmith/fspack-go/authoring"
)

func TestResolveSpriteFileTriesKnownExtensions(t *testing.T) {
	fileIndex := map[string]string{
		"sprites/ryu_5lp.png": "ryu.bundle",
	}

	path, ok := ResolveSpriteFile("sprites/ryu_5lp", fileIndex)
	if !ok {
		t.Fatalf("expected to resolve sprites/ryu_5lp")
	}
	if path != "sprites/ryu_5lp.png" {
		t.Fatalf("expected sprites/ryu_5lp.png, got %s", path)
	}
}

func TestResolveSpriteFileMissing(t *testing.T) {
	if _, ok := ResolveSpriteFile("sprites/missing", map[string]string{}); ok {
		t.Fatalf("expected missing sprite to not resolve")
	}
}

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestSpriteDimensionsPNG(t *testing.T) {
	data := encodeTestPNG(t, 320, 64)
	w, h, err := SpriteDimensions("sheet.png", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 320 || h != 64 {
		t.Fatalf("expected 320x64, got %dx%d", w, h)
	}
}

func TestCheckSpriteSheetPassesWhenSheetIsBigEnough(t *testing.T) {
	data := encodeTestPNG(t, 320, 64)
	if err := CheckSpriteSheet("sheet.png", data, 32, 64, 10); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckSpriteSheetFailsWhenTooNarrow(t *testing.T) {
	data := encodeTestPNG(t, 320, 64)
	if err := CheckSpriteSheet("sheet.png", data, 32, 64, 20); err == nil {
		t.Fatalf("expected an error for a sheet too narrow for the declared frame count")
	}
}

func TestBundleWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "ryu.bundle")

	files := map[string][]byte{
		"sprites/5lp.png": encodeTestPNG(t, 64, 64),
	}
	if err := WriteBundle(bundlePath, files); err != nil {
		t.Fatalf("write bundle: %v", err)
	}

	got, err := ReadFileFromBundle(bundlePath, "sprites/5lp.png")
	if err != nil {
		t.Fatalf("read from bundle: %v", err)
	}
	if len(got) != len(files["sprites/5lp.png"]) {
		t.Fatalf("expected %d bytes, got %d", len(files["sprites/5lp.png"]), len(got))
	}
}

func TestManifestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	m := &Manifest{Characters: map[string]*CharacterManifest{
		"ryu": {FileIndex: map[string]string{"sprites/5lp.png": "ryu.bundle"}},
	}}
	if err := m.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Characters["ryu"].FileIndex["sprites/5lp.png"] != "ryu.bundle" {
		t.Fatalf("expected round-tripped file index entry")
	}
}

func TestCheckCharacterSpritesDetectsUndersizedSheet(t *testing.T) {
	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "ryu.bundle")

	if err := WriteBundle(bundlePath, map[string][]byte{
		"sprites/5lp.png": encodeTestPNG(t, 64, 64),
	}); err != nil {
		t.Fatalf("write bundle: %v", err)
	}

	manifest := &CharacterManifest{FileIndex: map[string]string{"sprites/5lp.png": bundlePath}}
	assets := authoring.CharacterAssets{
		Animations: map[string]authoring.AnimationClip{
			"5LP": {Mode: authoring.AnimationModeSprite, Texture: "sprites/5lp.png",
				FrameSize: authoring.FrameSize{W: 64, H: 64}, Frames: 4},
		},
	}

	errs := CheckCharacterSprites("ryu", assets, manifest)
	if len(errs) != 1 {
		t.Fatalf("expected one undersized-sheet error, got %d: %v", len(errs), errs)
	}
}

func TestCheckCharacterSpritesPassesForSufficientSheet(t *testing.T) {
	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "ryu.bundle")

	if err := WriteBundle(bundlePath, map[string][]byte{
		"sprites/5lp.png": encodeTestPNG(t, 256, 64),
	}); err != nil {
		t.Fatalf("write bundle: %v", err)
	}

	manifest := &CharacterManifest{FileIndex: map[string]string{"sprites/5lp.png": bundlePath}}
	assets := authoring.CharacterAssets{
		Animations: map[string]authoring.AnimationClip{
			"5LP": {Mode: authoring.AnimationModeSprite, Texture: "sprites/5lp.png",
				FrameSize: authoring.FrameSize{W: 64, H: 64}, Frames: 4},
		},
	}

	if errs := CheckCharacterSprites("ryu", assets, manifest); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}
