package lantern

// Animator is a one-dimensional animation state machine: a current value
// advanced by a signed speed (units per second) toward an optional target,
// with an optional frame-skip delay and a fire-once completion callback.
//
// One Animator is created per animatable property per entity (fade, scale,
// rotation, movement X, movement Y). Reaching the target deactivates the
// animator; it is reused, not destroyed.
type Animator struct {
	value float64
	speed float64

	target    float64
	hasTarget bool

	// delayFrames > 0 skips that many frames between effective updates.
	// This is a pacing gate: it changes cadence, never total distance.
	delayFrames   int
	framesSkipped int

	active bool

	// Unbounded animators with wrap bounds (rotation) wrap at [wrapMin, wrapMax).
	wraps            bool
	wrapMin, wrapMax float64

	onComplete func()
}

// NewAnimator creates an inactive Animator holding the given initial value.
func NewAnimator(initial float64) *Animator {
	return &Animator{value: initial}
}

// NewWrappingAnimator creates an inactive Animator whose value wraps within
// [min, max) when animating without a target. Rotation uses [0, 360).
func NewWrappingAnimator(initial, min, max float64) *Animator {
	return &Animator{value: initial, wraps: true, wrapMin: min, wrapMax: max}
}

// Value returns the current value.
func (a *Animator) Value() float64 { return a.value }

// SetValue sets the current value directly, without animating.
func (a *Animator) SetValue(v float64) { a.value = v }

// Speed returns the signed speed in units per second.
func (a *Animator) Speed() float64 { return a.speed }

// Active reports whether the animator is running.
func (a *Animator) Active() bool { return a.active }

// Start activates continuous animation at the given signed speed, with no
// target. The value runs (or wraps) until Stop is called.
func (a *Animator) Start(speed float64) {
	a.speed = speed
	a.hasTarget = false
	a.framesSkipped = 0
	a.active = true
}

// StartTo activates animation at the given signed speed toward target. The
// sign of speed decides the direction of the completion test; when the value
// crosses the target it is clamped there, the animator deactivates, and the
// completion callback (if any) fires exactly once.
//
// If target already equals the current value, completion fires on the next
// Update call rather than here, so completion ordering is uniform with other
// per-frame effects.
func (a *Animator) StartTo(speed, target float64) {
	a.speed = speed
	a.target = target
	a.hasTarget = true
	a.framesSkipped = 0
	a.active = true
}

// SetDelay sets how many frames to skip between effective updates. Zero
// (the default) updates every frame.
func (a *Animator) SetDelay(frames int) {
	if frames < 0 {
		frames = 0
	}
	a.delayFrames = frames
	a.framesSkipped = 0
}

// OnComplete sets the callback fired when the target is reached. The
// reference is cleared before it runs, so it fires at most once per
// activation even if it re-activates this animator.
func (a *Animator) OnComplete(fn func()) {
	a.onComplete = fn
}

// Stop deactivates the animator without firing the completion callback. The
// current value is kept.
func (a *Animator) Stop() {
	a.active = false
}

// Update advances the value by speed * dt and reports whether the value
// changed this frame. A frame consumed by the delay gate returns false.
func (a *Animator) Update(dt float64) bool {
	if !a.active {
		return false
	}

	// Already at the target: complete now. This is the deferred half of the
	// StartTo contract for target == value.
	if a.hasTarget && a.value == a.target {
		a.complete()
		return false
	}

	if a.speed == 0 {
		// Zero speed does no work; not an error.
		return false
	}

	if a.delayFrames > 0 {
		a.framesSkipped++
		if a.framesSkipped < a.delayFrames {
			return false
		}
		a.framesSkipped = 0
	}

	a.value += a.speed * dt

	if a.hasTarget {
		if (a.speed > 0 && a.value >= a.target) ||
			(a.speed < 0 && a.value <= a.target) {
			a.value = a.target
			a.complete()
		}
	} else if a.wraps {
		if a.value >= a.wrapMax {
			a.value = a.wrapMin
		} else if a.value < a.wrapMin {
			a.value = a.wrapMax
		}
	}

	return true
}

func (a *Animator) complete() {
	a.active = false
	fn := a.onComplete
	a.onComplete = nil
	if fn != nil {
		fn()
	}
}
