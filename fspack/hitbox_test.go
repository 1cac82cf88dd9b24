package fspack

import "testing"

func TestHitWindowViewPushbackDefaultsToZeroOnShortRecord(t *testing.T) {
	short := HitWindowView{data: make([]byte, 24)}
	if got := short.HitPushbackRaw(); got != 0 {
		t.Fatalf("expected 0 hit pushback on 24-byte record, got %v", got)
	}
	if got := short.BlockPushbackRaw(); got != 0 {
		t.Fatalf("expected 0 block pushback on 24-byte record, got %v", got)
	}
	if got := short.HitPushbackPx(); got != 0 {
		t.Fatalf("expected 0 hit pushback px on 24-byte record, got %d", got)
	}
}

func TestHitWindowViewPushbackRoundTrip(t *testing.T) {
	data := make([]byte, HitWindowSize)
	full := HitWindowsView{data: data}
	window, ok := full.Get(0)
	if !ok {
		t.Fatalf("expected valid window")
	}
	if window.HitPushbackPx() != 0 || window.BlockPushbackPx() != 0 {
		t.Fatalf("expected zeroed pushback on freshly allocated record")
	}
}
