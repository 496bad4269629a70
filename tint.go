package lantern

import "github.com/hajimehoshi/ebiten/v2"

// TintStyle selects the compositing direction of a tint overlay.
type TintStyle uint8

const (
	// TintDarken multiplies the entity by a gray level. 255 is neutral
	// (no visible tint); lower values darken toward black.
	TintDarken TintStyle = iota

	// TintGlow adds a gray level on top of the entity. 0 is neutral;
	// higher values brighten toward white.
	TintGlow
)

// Neutral returns the tint value at which this style has no visible effect.
func (s TintStyle) Neutral() float64 {
	if s == TintGlow {
		return 0
	}
	return 255
}

// Blend returns the ebiten blend for compositing a tint overlay drawn with
// this style.
func (s TintStyle) Blend() ebiten.Blend {
	if s == TintGlow {
		return ebiten.BlendLighter
	}
	return ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
		BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
}

// TintStatus is the lifecycle state of a TintController.
type TintStatus uint8

const (
	// TintUntinted means no tint overlay is needed; the entity renders as-is.
	TintUntinted TintStatus = iota

	// TintAnimating means the tint value is moving toward its target.
	TintAnimating

	// TintReached means a non-neutral tint value has been reached and holds.
	TintReached
)

// TintController animates a single gray tint level toward a target.
//
// The controller never touches pixels itself; the renderer asks Tint for the
// current overlay color and composites it with the style's Blend. A tint that
// animates back to its style's neutral value returns to TintUntinted, so the
// overlay disappears entirely rather than multiplying by white forever.
type TintController struct {
	status    TintStatus
	style     TintStyle
	value     float64
	target    float64
	direction int
	speed     float64
}

// NewTintController creates an untinted controller.
func NewTintController() *TintController {
	return &TintController{}
}

// Status returns the current lifecycle state.
func (c *TintController) Status() TintStatus { return c.status }

// Style returns the style of the current or last tint.
func (c *TintController) Style() TintStyle { return c.style }

// Value returns the current tint level, 0 to 255.
func (c *TintController) Value() float64 { return c.value }

// Start begins animating toward target (clamped to 0..255) at speed levels
// per second. Switching styles, or starting from untinted, resets the current
// value to the new style's neutral level first. A target equal to the current
// value is a no-op.
func (c *TintController) Start(style TintStyle, target, speed float64) {
	if c.status == TintUntinted || style != c.style {
		c.value = style.Neutral()
	}
	c.style = style

	target = clamp(target, 0, 255)
	if target == c.value {
		return
	}

	c.target = target
	c.speed = speed
	if target > c.value {
		c.direction = 1
	} else {
		c.direction = -1
	}
	c.status = TintAnimating
}

// Stop halts the animation, holding the current value. An in-flight value is
// kept visible (TintReached) unless it happens to sit at neutral.
func (c *TintController) Stop() {
	if c.status != TintAnimating {
		return
	}
	if c.value == c.style.Neutral() {
		c.status = TintUntinted
	} else {
		c.status = TintReached
	}
}

// Reset clears any tint immediately.
func (c *TintController) Reset() {
	c.status = TintUntinted
	c.value = 0
}

// Update advances the tint by speed * dt and reports whether the value
// changed. On reaching the target the controller settles into TintReached,
// or TintUntinted when the target was the style's neutral level.
func (c *TintController) Update(dt float64) bool {
	if c.status != TintAnimating || c.speed == 0 {
		return false
	}

	c.value += float64(c.direction) * c.speed * dt

	if (c.direction > 0 && c.value >= c.target) ||
		(c.direction < 0 && c.value <= c.target) {
		c.value = c.target
		if c.target == c.style.Neutral() {
			c.status = TintUntinted
		} else {
			c.status = TintReached
		}
	}
	return true
}

// Tint returns the current overlay gray level. ok is false when no overlay
// should be drawn.
func (c *TintController) Tint() (r, g, b uint8, ok bool) {
	if c.status == TintUntinted {
		return 0, 0, 0, false
	}
	v := uint8(clamp(c.value, 0, 255))
	return v, v, v, true
}
