package lantern

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCameraStartsCentered(t *testing.T) {
	c := NewCamera(1280, 720)
	if c.X != 640 || c.Y != 360 {
		t.Errorf("center = (%f, %f), want (640, 360)", c.X, c.Y)
	}
	if c.Zoom != 1 {
		t.Errorf("Zoom = %f, want 1", c.Zoom)
	}
}

func TestCameraMoveLinear(t *testing.T) {
	c := NewCamera(1280, 720)
	c.StartMove(1000, 360, 1, 1.0, EaseLinear)

	c.Update(0.5)
	if math.Abs(c.X-820) > 0.5 {
		t.Errorf("X = %f, want ~820 at midpoint", c.X)
	}

	c.Update(0.5)
	if c.Moving() {
		t.Fatal("move should be finished")
	}
	if c.X != 1000 || c.Y != 360 {
		t.Errorf("end = (%f, %f), want (1000, 360)", c.X, c.Y)
	}
}

func TestCameraMoveOvershootClampsToDestination(t *testing.T) {
	c := NewCamera(1280, 720)
	c.StartMove(0, 0, 2, 0.5, EaseInOut)

	// One huge frame: must land exactly on the destination, not beyond.
	c.Update(10)
	if c.Moving() {
		t.Fatal("move should be finished")
	}
	if c.X != 0 || c.Y != 0 || c.Zoom != 2 {
		t.Errorf("end = (%f, %f, zoom %f), want (0, 0, 2)", c.X, c.Y, c.Zoom)
	}
}

func TestCameraEasingCurvesDiffer(t *testing.T) {
	// At the midpoint, ease-in lags linear and ease-out leads it.
	mid := func(e Easing) float64 {
		c := NewCamera(100, 100)
		c.X, c.Y = 0, 0
		c.StartMove(100, 0, 1, 1.0, e)
		c.Update(0.5)
		return c.X
	}

	linear := mid(EaseLinear)
	in := mid(EaseIn)
	out := mid(EaseOut)

	if !(in < linear && linear < out) {
		t.Errorf("midpoints: in=%f linear=%f out=%f, want in < linear < out", in, linear, out)
	}
}

func TestCameraStopMove(t *testing.T) {
	c := NewCamera(1280, 720)
	c.StartMove(1000, 360, 1, 1.0, EaseLinear)
	c.Update(0.25)
	frozenX := c.X

	c.StopMove(false)
	c.Update(1)
	if c.X != frozenX {
		t.Errorf("X = %f, want frozen at %f", c.X, frozenX)
	}

	c.StartMove(1000, 360, 1, 1.0, EaseLinear)
	c.StopMove(true)
	if c.X != 1000 {
		t.Errorf("X = %f, want snapped to 1000", c.X)
	}
}

func TestCameraShakeDecaysAndStops(t *testing.T) {
	c := NewCamera(1280, 720)
	c.randFloat = func() float64 { return 1 } // deterministic max offset
	c.StartShake(10, 1.0)

	if !c.Shaking() {
		t.Fatal("should be shaking")
	}

	c.Update(0.5)
	dx, _ := c.shakeOffset()
	if math.Abs(dx-5) > 1e-9 {
		t.Errorf("offset = %f, want 5 at half decay", dx)
	}

	c.Update(0.6)
	if c.Shaking() {
		t.Error("shake should have expired")
	}
	dx, dy := c.shakeOffset()
	if dx != 0 || dy != 0 {
		t.Errorf("offset = (%f, %f) after expiry, want (0, 0)", dx, dy)
	}
}

func TestCameraRenderFastPathSkipsBuffer(t *testing.T) {
	c := NewCamera(64, 64)
	src := ebiten.NewImage(64, 64)
	dst := ebiten.NewImage(64, 64)

	// Zoom within epsilon of 1 must not allocate the scaling buffer.
	c.Zoom = 1.00001
	c.Render(src, dst)
	if c.buffer != nil {
		t.Error("near-identity zoom must skip the scaling buffer")
	}
}

func TestCameraRenderBufferMatchesScaledSize(t *testing.T) {
	c := NewCamera(64, 64)
	src := ebiten.NewImage(64, 48)
	dst := ebiten.NewImage(64, 64)

	c.Zoom = 2
	c.Render(src, dst)
	if c.buffer == nil {
		t.Fatal("zoom 2 requires the scaling buffer")
	}
	if c.bufW != 128 || c.bufH != 96 {
		t.Errorf("buffer = %dx%d, want 128x96", c.bufW, c.bufH)
	}

	first := c.buffer
	c.Render(src, dst)
	if c.buffer != first {
		t.Error("unchanged zoom must reuse the buffer")
	}

	c.Zoom = 1.5
	c.Render(src, dst)
	if c.bufW != 96 || c.bufH != 72 {
		t.Errorf("buffer = %dx%d after rezoom, want 96x72", c.bufW, c.bufH)
	}
}

func TestCameraMinimumDuration(t *testing.T) {
	c := NewCamera(100, 100)
	c.StartMove(0, 0, 1, 0, EaseLinear)

	// Zero duration clamps to the minimum instead of dividing by zero.
	c.Update(0.02)
	if c.Moving() {
		t.Error("clamped-duration move should finish within one frame")
	}
	if c.X != 0 || c.Y != 0 {
		t.Errorf("end = (%f, %f), want (0, 0)", c.X, c.Y)
	}
}
