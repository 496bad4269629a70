package lantern

import "github.com/hajimehoshi/ebiten/v2"

// Property identifies one animatable property of an entity.
type Property uint8

const (
	PropertyFade Property = iota
	PropertyScale
	PropertyRotate
	PropertyMoveX
	PropertyMoveY

	propertyCount
)

// String returns the lowercase property name.
func (p Property) String() string {
	switch p {
	case PropertyFade:
		return "fade"
	case PropertyScale:
		return "scale"
	case PropertyRotate:
		return "rotate"
	case PropertyMoveX:
		return "move_x"
	case PropertyMoveY:
		return "move_y"
	}
	return "unknown"
}

// PositionX is a named horizontal placement relative to the screen.
type PositionX uint8

const (
	// XBeforeStart puts the entity entirely off the left edge.
	XBeforeStart PositionX = iota
	// XStart aligns the left edge with the screen's left edge.
	XStart
	// XCenter centers the entity horizontally.
	XCenter
	// XEnd aligns the right edge with the screen's right edge.
	XEnd
	// XAfterEnd puts the entity entirely off the right edge.
	XAfterEnd
)

// PositionY is a named vertical placement relative to the screen.
type PositionY uint8

const (
	// YAboveTop puts the entity entirely above the screen.
	YAboveTop PositionY = iota
	// YTop aligns the top edge with the screen's top edge.
	YTop
	// YCenter centers the entity vertically.
	YCenter
	// YBottom aligns the bottom edge with the screen's bottom edge.
	YBottom
	// YBelowBottom puts the entity entirely below the screen.
	YBelowBottom
)

// Entity is one animatable sprite: a character, object, or background.
//
// Each property gets its own Animator, created lazily on first use. Show
// and Hide requests are latched and applied at the start of the next
// Update, so visibility changes land at a consistent point in the frame.
type Entity struct {
	// Name identifies the entity to the script layer.
	Name string

	// Image is the sprite drawn for this entity. May be nil in logic-only
	// contexts.
	Image *ebiten.Image

	// Bounds is the entity's position and size in screen space.
	Bounds Rect

	// Visible controls whether the entity renders and animates.
	Visible bool

	// FlippedH and FlippedV mirror the sprite when drawing.
	FlippedH, FlippedV bool

	pendingShow, pendingHide bool

	animators [propertyCount]*Animator

	tint  *TintController
	stops *StopTracker

	// moveComplete fires once when every stop condition has been satisfied.
	moveComplete func()
}

// NewEntity creates a hidden entity. If image is non-nil the bounds take
// its size.
func NewEntity(name string, image *ebiten.Image) *Entity {
	e := &Entity{Name: name, Image: image}
	if image != nil {
		b := image.Bounds()
		e.Bounds.Width = float64(b.Dx())
		e.Bounds.Height = float64(b.Dy())
	}
	return e
}

// Animator returns the animator for the given property, creating it on
// first use. Fade starts at 255, scale at 1, rotation wraps within
// [0, 360), and the movement animators mirror the current bounds.
func (e *Entity) Animator(p Property) *Animator {
	if p >= propertyCount {
		p = PropertyFade
	}
	if a := e.animators[p]; a != nil {
		return a
	}
	var a *Animator
	switch p {
	case PropertyFade:
		a = NewAnimator(255)
	case PropertyScale:
		a = NewAnimator(1)
	case PropertyRotate:
		a = NewWrappingAnimator(0, 0, 360)
	case PropertyMoveX:
		a = NewAnimator(e.Bounds.X)
	case PropertyMoveY:
		a = NewAnimator(e.Bounds.Y)
	}
	e.animators[p] = a
	return a
}

// Tint returns the entity's tint controller, creating it on first use.
func (e *Entity) Tint() *TintController {
	if e.tint == nil {
		e.tint = NewTintController()
	}
	return e.tint
}

// Stops returns the entity's stop condition tracker, creating it on first
// use.
func (e *Entity) Stops() *StopTracker {
	if e.stops == nil {
		e.stops = NewStopTracker()
	}
	return e.stops
}

// OnMovementStop sets the callback fired once when all stop conditions are
// satisfied. The reference is cleared before it runs.
func (e *Entity) OnMovementStop(fn func()) {
	e.moveComplete = fn
}

// Show requests the entity become visible at the start of the next update.
// It cancels a pending Hide.
func (e *Entity) Show() {
	e.pendingShow = true
	e.pendingHide = false
}

// Hide requests the entity become invisible at the start of the next
// update. It cancels a pending Show.
func (e *Entity) Hide() {
	e.pendingHide = true
	e.pendingShow = false
}

// Flip mirrors the sprite on the requested axes.
func (e *Entity) Flip(horizontal, vertical bool) {
	if horizontal {
		e.FlippedH = !e.FlippedH
	}
	if vertical {
		e.FlippedV = !e.FlippedV
	}
}

// FlipMatch copies another entity's flip state.
func (e *Entity) FlipMatch(other *Entity) {
	e.FlippedH = other.FlippedH
	e.FlippedV = other.FlippedV
}

// SetCenter moves the entity so its center is at (x, y) and keeps the
// movement animators in sync.
func (e *Entity) SetCenter(x, y float64) {
	e.Bounds.SetCenter(x, y)
	e.syncMovers()
}

// SetPosition moves the entity's top-left corner to (x, y) and keeps the
// movement animators in sync.
func (e *Entity) SetPosition(x, y float64) {
	e.Bounds.X = x
	e.Bounds.Y = y
	e.syncMovers()
}

func (e *Entity) syncMovers() {
	if a := e.animators[PropertyMoveX]; a != nil {
		a.SetValue(e.Bounds.X)
	}
	if a := e.animators[PropertyMoveY]; a != nil {
		a.SetValue(e.Bounds.Y)
	}
}

// PlaceX moves the entity horizontally to a named placement on a screen of
// the given width.
func (e *Entity) PlaceX(pos PositionX, screenW float64) {
	switch pos {
	case XBeforeStart:
		e.Bounds.X = -e.Bounds.Width
	case XStart:
		e.Bounds.X = 0
	case XCenter:
		e.Bounds.X = screenW/2 - e.Bounds.Width/2
	case XEnd:
		e.Bounds.X = screenW - e.Bounds.Width
	case XAfterEnd:
		e.Bounds.X = screenW
	}
	e.syncMovers()
}

// PlaceY moves the entity vertically to a named placement on a screen of
// the given height.
func (e *Entity) PlaceY(pos PositionY, screenH float64) {
	switch pos {
	case YAboveTop:
		e.Bounds.Y = -e.Bounds.Height
	case YTop:
		e.Bounds.Y = 0
	case YCenter:
		e.Bounds.Y = screenH/2 - e.Bounds.Height/2
	case YBottom:
		e.Bounds.Y = screenH - e.Bounds.Height
	case YBelowBottom:
		e.Bounds.Y = screenH
	}
	e.syncMovers()
}

// AddStopX registers a stop condition at a named horizontal placement. The
// edge tested matches the edge the placement aligns: left-anchored
// placements watch the left edge, XEnd watches the right edge.
func (e *Entity) AddStopX(pos PositionX, screenW float64) {
	switch pos {
	case XBeforeStart:
		e.Stops().Add(EdgeLeft, -e.Bounds.Width)
	case XStart:
		e.Stops().Add(EdgeLeft, 0)
	case XCenter:
		e.Stops().Add(EdgeLeft, screenW/2-e.Bounds.Width/2)
	case XEnd:
		e.Stops().Add(EdgeRight, screenW)
	case XAfterEnd:
		e.Stops().Add(EdgeLeft, screenW)
	}
}

// AddStopY registers a stop condition at a named vertical placement.
func (e *Entity) AddStopY(pos PositionY, screenH float64) {
	switch pos {
	case YAboveTop:
		e.Stops().Add(EdgeTop, -e.Bounds.Height)
	case YTop:
		e.Stops().Add(EdgeTop, 0)
	case YCenter:
		e.Stops().Add(EdgeTop, screenH/2-e.Bounds.Height/2)
	case YBottom:
		e.Stops().Add(EdgeBottom, screenH)
	case YBelowBottom:
		e.Stops().Add(EdgeTop, screenH)
	}
}

// Update advances the entity by dt seconds and reports whether anything
// visible changed. Scale, rotation, and movement run before fade, because
// fade composites onto the already-transformed image; tint updates last.
func (e *Entity) Update(dt float64) bool {
	changed := false
	if e.pendingShow {
		e.pendingShow = false
		if !e.Visible {
			e.Visible = true
			changed = true
		}
	}
	if e.pendingHide {
		e.pendingHide = false
		if e.Visible {
			e.Visible = false
			changed = true
		}
	}
	if !e.Visible {
		return changed
	}

	if a := e.animators[PropertyScale]; a != nil {
		changed = a.Update(dt) || changed
	}
	if a := e.animators[PropertyRotate]; a != nil {
		changed = a.Update(dt) || changed
	}
	changed = e.updateMovement(dt) || changed
	if a := e.animators[PropertyFade]; a != nil {
		changed = a.Update(dt) || changed
	}
	if e.tint != nil {
		changed = e.tint.Update(dt) || changed
	}
	return changed
}

// updateMovement steps the movement animators, writes their values back to
// the bounds, then evaluates stop conditions against the new position.
func (e *Entity) updateMovement(dt float64) bool {
	ax := e.animators[PropertyMoveX]
	ay := e.animators[PropertyMoveY]

	changed := false
	var dirX, dirY int
	if ax != nil {
		if ax.Active() {
			dirX = sign(ax.Speed())
		}
		changed = ax.Update(dt) || changed
		e.Bounds.X = ax.Value()
	}
	if ay != nil {
		if ay.Active() {
			dirY = sign(ay.Speed())
		}
		changed = ay.Update(dt) || changed
		e.Bounds.Y = ay.Value()
	}

	if e.stops == nil || e.stops.Len() == 0 {
		return changed
	}

	_, done := e.stops.Evaluate(e.Bounds, dirX, dirY)
	if done {
		if ax != nil {
			ax.Stop()
		}
		if ay != nil {
			ay.Stop()
		}
		fn := e.moveComplete
		e.moveComplete = nil
		if fn != nil {
			fn()
		}
	}
	return changed
}
