package barista

import (
	"math"
	"testing"

	"github.com/Dotan232/SweetBarista/internal/config"
)

func TestHandDropCycle(t *testing.T) {
	cfg := config.DefaultBaristaConfig().Hand
	h := newHand(cfg)

	if !h.CanDrop() {
		t.Fatal("new hand cannot drop")
	}
	x, y, ok := h.Drop()
	if !ok {
		t.Fatal("Drop() = false on an idle hand")
	}
	if x != cfg.X || y != cfg.Y+cfg.Height/2+cfg.DropOffset {
		t.Errorf("drop point = (%v, %v)", x, y)
	}
	if _, _, ok := h.Drop(); ok {
		t.Error("second Drop() succeeded while dropping")
	}

	h.Update(cfg.DropDuration)
	if h.State != HandReturning || h.HasSugar {
		t.Fatalf("after drop duration State=%v HasSugar=%v", h.State, h.HasSugar)
	}
	if h.CanDrop() {
		t.Error("CanDrop() while returning")
	}

	h.Update(cfg.ReturnDuration)
	if h.State != HandIdle || !h.HasSugar {
		t.Fatalf("after return duration State=%v HasSugar=%v", h.State, h.HasSugar)
	}
	if !h.CanDrop() {
		t.Error("CanDrop() = false after the cycle")
	}
}

func TestConveyorWrapsOffset(t *testing.T) {
	cfg := config.DefaultBaristaConfig()
	c := newConveyor(cfg.Conveyor, cfg.Cups.PixelsPerSpeed)

	// 1.0 * 60 px/s for 5s = 300px, past one 256px texture
	for i := 0; i < 50; i++ {
		c.Advance(0.1, 1.0)
	}
	if math.Abs(c.Offset-44) > 1e-6 {
		t.Errorf("Offset = %v, want 44", c.Offset)
	}
	if p := c.Phase(); p < 0 || p >= 1 {
		t.Errorf("Phase = %v, want within [0, 1)", p)
	}
}

func TestEventSounds(t *testing.T) {
	tests := []struct {
		event Event
		sound string
	}{
		{EventSugarDropped, SoundSugarDrop},
		{EventSugarHit, SoundSuccessHit},
		{EventCupCompleted, ""},
		{EventSugarMissed, SoundSugarSplash},
		{EventOverfill, SoundOverfill},
		{EventTimeWarning, SoundTimeWarning},
		{EventLevelComplete, SoundLevelComplete},
		{EventLevelFailed, SoundLevelFail},
		{EventGameComplete, SoundLevelComplete},
	}
	for _, tt := range tests {
		if got := tt.event.SoundName(); got != tt.sound {
			t.Errorf("%v.SoundName() = %q, want %q", tt.event, got, tt.sound)
		}
	}
}

func TestEventRecorder(t *testing.T) {
	var r EventRecorder
	r.Emit(EventSugarDropped)
	r.Emit(EventSugarHit)
	r.Emit(EventSugarDropped)

	if n := r.Count(EventSugarDropped); n != 2 {
		t.Errorf("Count(dropped) = %d, want 2", n)
	}
	if got := r.Drain(); len(got) != 3 {
		t.Errorf("Drain() returned %d events, want 3", len(got))
	}
	if got := r.Drain(); len(got) != 0 {
		t.Errorf("second Drain() returned %v", got)
	}
}

func TestGlyphFallback(t *testing.T) {
	if _, ok := (NopImageSource{}).Glyph(AssetSugar); ok {
		t.Error("NopImageSource found a glyph")
	}
	custom := GlyphTable{AssetSugar: 'o'}
	if r, ok := custom.Glyph(AssetSugar); !ok || r != 'o' {
		t.Errorf("Glyph = %q %v", r, ok)
	}
	for _, name := range []string{AssetHand, AssetHandEmpty, AssetSugar, AssetSplash, AssetBounce, AssetCupFill, AssetBelt, AssetBeltStripe, AssetFloor} {
		if _, ok := DefaultGlyphs.Glyph(name); !ok {
			t.Errorf("DefaultGlyphs missing %q", name)
		}
	}
}
