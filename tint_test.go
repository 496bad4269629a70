package lantern

import "testing"

func TestTintDarkenReachesTarget(t *testing.T) {
	c := NewTintController()
	c.Start(TintDarken, 100, 310)

	if c.Status() != TintAnimating {
		t.Fatal("should be animating after Start")
	}
	// 255 -> 100 at 310/sec takes half a second.
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 60)
	}

	if c.Status() != TintReached {
		t.Fatalf("Status = %v, want TintReached", c.Status())
	}
	if c.Value() != 100 {
		t.Errorf("Value = %f, want exactly 100", c.Value())
	}
	r, g, b, ok := c.Tint()
	if !ok {
		t.Fatal("Tint should report an overlay")
	}
	if r != 100 || g != 100 || b != 100 {
		t.Errorf("Tint = (%d,%d,%d), want gray 100", r, g, b)
	}
}

func TestTintBackToNeutralBecomesUntinted(t *testing.T) {
	c := NewTintController()
	c.Start(TintDarken, 100, 1000)
	for i := 0; i < 30; i++ {
		c.Update(1.0 / 60)
	}
	if c.Status() != TintReached {
		t.Fatal("setup: should have reached 100")
	}

	// Animate back up to the darken neutral level.
	c.Start(TintDarken, 255, 1000)
	for i := 0; i < 30; i++ {
		c.Update(1.0 / 60)
	}

	if c.Status() != TintUntinted {
		t.Fatalf("Status = %v, want TintUntinted at neutral", c.Status())
	}
	if _, _, _, ok := c.Tint(); ok {
		t.Error("untinted controller must not report an overlay")
	}
}

func TestTintGlowNeutralIsZero(t *testing.T) {
	c := NewTintController()
	c.Start(TintGlow, 80, 160)

	// Glow starts from 0 and rises.
	c.Update(0.25)
	if c.Value() != 40 {
		t.Errorf("Value = %f, want 40 after a quarter second", c.Value())
	}
	c.Update(0.25)
	if c.Status() != TintReached {
		t.Errorf("Status = %v, want TintReached", c.Status())
	}

	// Back down to 0 clears the glow entirely.
	c.Start(TintGlow, 0, 160)
	c.Update(0.5)
	if c.Status() != TintUntinted {
		t.Errorf("Status = %v, want TintUntinted", c.Status())
	}
}

func TestTintStyleSwitchResetsToNewNeutral(t *testing.T) {
	c := NewTintController()
	c.Start(TintDarken, 100, 10000)
	c.Update(0.1) // reached 100

	// Switching to glow must restart from glow's neutral (0), not from 100.
	c.Start(TintGlow, 50, 100)
	c.Update(0.1)
	if c.Value() != 10 {
		t.Errorf("Value = %f, want 10 (0 + 100*0.1)", c.Value())
	}
}

func TestTintEqualTargetIsNoOp(t *testing.T) {
	c := NewTintController()
	c.Start(TintDarken, 255, 100) // darken's neutral == starting value

	if c.Status() != TintUntinted {
		t.Errorf("Status = %v, want still TintUntinted", c.Status())
	}
	if c.Update(0.1) {
		t.Error("no-op start must not produce changes")
	}
}

func TestTintTargetClamped(t *testing.T) {
	c := NewTintController()
	c.Start(TintGlow, 400, 10000)
	c.Update(1)
	if c.Value() != 255 {
		t.Errorf("Value = %f, want clamped 255", c.Value())
	}
}

func TestTintStopHoldsValue(t *testing.T) {
	c := NewTintController()
	c.Start(TintDarken, 0, 510)
	c.Update(0.25) // 255 - 127.5
	c.Stop()

	if c.Status() != TintReached {
		t.Fatalf("Status = %v, want TintReached holding mid-value", c.Status())
	}
	if c.Update(1) {
		t.Error("stopped controller must not advance")
	}
}

func TestTintStyleBlendDistinct(t *testing.T) {
	if TintDarken.Blend() == TintGlow.Blend() {
		t.Error("darken and glow must composite differently")
	}
}
