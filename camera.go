package lantern

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Easing selects the interpolation curve for a camera move.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseIn            // accelerate from rest
	EaseOut           // decelerate to rest
	EaseInOut         // accelerate then decelerate
)

var easingFuncs = [...]ease.TweenFunc{
	EaseLinear: ease.Linear,
	EaseIn:     ease.InQuad,
	EaseOut:    ease.OutQuad,
	EaseInOut:  ease.InOutQuad,
}

// progress maps linear time t in [0, 1] through the easing curve.
func (e Easing) progress(t float64) float64 {
	if int(e) >= len(easingFuncs) {
		e = EaseLinear
	}
	return float64(easingFuncs[e](float32(t), 0, 1, 1))
}

const (
	// minMoveDuration guards the progress division for instant moves.
	minMoveDuration = 0.01

	// zoomIdentityEpsilon is how close the zoom must be to 1.0 for the
	// camera to skip the scaling buffer and draw the scene directly.
	zoomIdentityEpsilon = 0.001
)

// Camera frames the scene: it interpolates its center and zoom toward a
// destination over a fixed duration, and overlays a decaying random shake.
//
// Position is the world point at the screen center. Zoom scales the scene
// around that point; at zoom 1 (within zoomIdentityEpsilon) rendering skips
// the intermediate scaling buffer entirely.
type Camera struct {
	// X, Y is the world-space point currently centered on screen.
	X, Y float64

	// Zoom is the current magnification. 1 is unscaled.
	Zoom float64

	screenW, screenH int

	moving   bool
	elapsed  float64
	duration float64
	easing   Easing
	// start/end are (x, y, zoom) triples captured at StartMove.
	start, end [3]float64

	shakeIntensity float64
	shakeDuration  float64
	shakeTimer     float64

	// buffer holds the zoom-scaled scene; recreated only when the scaled
	// size changes, nil while the zoom fast path is in effect.
	buffer     *ebiten.Image
	bufW, bufH int

	randFloat func() float64
}

// NewCamera creates a camera for a screen of the given size, centered on it
// at zoom 1.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		X:       float64(screenW) / 2,
		Y:       float64(screenH) / 2,
		Zoom:    1,
		screenW: screenW,
		screenH: screenH,
	}
}

// Moving reports whether a camera move is in flight.
func (c *Camera) Moving() bool { return c.moving }

// Shaking reports whether a shake is in flight.
func (c *Camera) Shaking() bool { return c.shakeTimer > 0 }

// StartMove begins interpolating the camera from its current state to the
// given center and zoom over duration seconds. A duration at or below
// minMoveDuration snaps almost immediately. Starting a move while one is in
// flight retargets from the current interpolated state.
func (c *Camera) StartMove(x, y, zoom, duration float64, easing Easing) {
	if duration < minMoveDuration {
		duration = minMoveDuration
	}
	c.start = [3]float64{c.X, c.Y, c.Zoom}
	c.end = [3]float64{x, y, zoom}
	c.duration = duration
	c.elapsed = 0
	c.easing = easing
	c.moving = true
}

// StopMove halts an in-flight move. With snapToEnd the camera jumps to the
// move's destination; otherwise it freezes where it is.
func (c *Camera) StopMove(snapToEnd bool) {
	if !c.moving {
		return
	}
	c.moving = false
	if snapToEnd {
		c.X, c.Y, c.Zoom = c.end[0], c.end[1], c.end[2]
	}
}

// StartShake begins shaking the view with offsets up to intensity pixels,
// fading out over roughly duration seconds. The fade is driven by the frame
// step, so the actual duration is best-effort, not exact.
func (c *Camera) StartShake(intensity, duration float64) {
	if intensity <= 0 || duration <= 0 {
		return
	}
	c.shakeIntensity = intensity
	c.shakeDuration = duration
	c.shakeTimer = duration
}

// StopShake ends any shake immediately.
func (c *Camera) StopShake() {
	c.shakeTimer = 0
}

// Update advances the move interpolation and the shake decay by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.moving {
		c.elapsed += dt
		t := c.elapsed / c.duration
		if t >= 1 {
			t = 1
		}
		p := c.easing.progress(t)
		c.X = c.start[0] + (c.end[0]-c.start[0])*p
		c.Y = c.start[1] + (c.end[1]-c.start[1])*p
		c.Zoom = c.start[2] + (c.end[2]-c.start[2])*p
		if t >= 1 {
			c.moving = false
		}
	}

	if c.shakeTimer > 0 {
		c.shakeTimer -= dt
		if c.shakeTimer <= 0 {
			c.StopShake()
		}
	}
}

// shakeOffset returns this frame's random displacement. The amplitude decays
// linearly with the remaining shake time.
func (c *Camera) shakeOffset() (float64, float64) {
	if c.shakeTimer <= 0 {
		return 0, 0
	}
	falloff := c.shakeTimer / c.shakeDuration
	amp := c.shakeIntensity * falloff
	rf := c.randFloat
	if rf == nil {
		rf = rand.Float64
	}
	return (rf()*2 - 1) * amp, (rf()*2 - 1) * amp
}

// Render composites src onto dst through the camera: letterbox fill, zoom
// scaling, centering on (X, Y), and shake displacement.
//
// All final placements are rounded to whole pixels. When the zoom is within
// zoomIdentityEpsilon of 1 the scene is drawn directly; otherwise src is
// scaled into an internal buffer whose size is the rounded scaled size, and
// the effective zoom used for placement is recomputed per axis from that
// rounding so the centered point stays exact.
func (c *Camera) Render(src, dst *ebiten.Image) {
	dst.Fill(color.Black)

	shakeX, shakeY := c.shakeOffset()

	if math.Abs(c.Zoom-1) < zoomIdentityEpsilon {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(math.Round(shakeX), math.Round(shakeY))
		dst.DrawImage(src, op)
		return
	}

	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	scaledW := int(math.Round(float64(srcW) * c.Zoom))
	scaledH := int(math.Round(float64(srcH) * c.Zoom))
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	if c.buffer == nil || c.bufW != scaledW || c.bufH != scaledH {
		if c.buffer != nil {
			c.buffer.Deallocate()
		}
		c.buffer = ebiten.NewImage(scaledW, scaledH)
		c.bufW, c.bufH = scaledW, scaledH
	} else {
		c.buffer.Clear()
	}

	scaleOp := &ebiten.DrawImageOptions{}
	scaleOp.GeoM.Scale(float64(scaledW)/float64(srcW), float64(scaledH)/float64(srcH))
	scaleOp.Filter = ebiten.FilterLinear
	c.buffer.DrawImage(src, scaleOp)

	// The rounding above makes the realized zoom differ slightly per axis;
	// placement must use the realized values or the centered point drifts.
	effX := float64(scaledW) / float64(srcW)
	effY := float64(scaledH) / float64(srcH)

	renderX := float64(c.screenW)/2 - c.X*effX + shakeX
	renderY := float64(c.screenH)/2 - c.Y*effY + shakeY

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(math.Round(renderX), math.Round(renderY))
	dst.DrawImage(c.buffer, op)
}
