package lantern

import "github.com/hajimehoshi/ebiten/v2"

// DialogStyle selects how the dialog box enters and leaves the screen.
type DialogStyle uint8

const (
	// DialogAppear shows and hides the box instantly.
	DialogAppear DialogStyle = iota

	// DialogFade fades the box in and out.
	DialogFade

	// DialogScale grows the box from nothing and shrinks it away.
	DialogScale
)

// DialogBox is the rectangle dialog text appears in: an entity for the box
// sprite plus a TextReveal for the text laid out inside it.
//
// Hiding the box keeps the reveal cursor where it is, so re-showing the box
// and appending text continues the conversation. Only Clear resets the
// cursor to the top of the box.
type DialogBox struct {
	// Box is the dialog backdrop entity.
	Box *Entity

	// Reveal animates the text inside the box.
	Reveal *TextReveal

	// TextOrigin is where the text's top-left sits, relative to the box.
	TextOrigin Vec2

	// IntroStyle and OutroStyle pick the box's entrance and exit.
	IntroStyle, OutroStyle DialogStyle

	// IntroSpeed and OutroSpeed are the animation rates in units per
	// second: opacity units for DialogFade, scale units for DialogScale.
	IntroSpeed, OutroSpeed float64

	hiding bool
}

// NewDialogBox creates a dialog box with the given backdrop image and font,
// entering and leaving instantly by default.
func NewDialogBox(image *ebiten.Image, font *FontSheet) *DialogBox {
	return &DialogBox{
		Box:        NewEntity("dialog", image),
		Reveal:     NewTextReveal(font),
		IntroSpeed: 1020,
		OutroSpeed: 1020,
	}
}

// Visible reports whether the box is on screen.
func (d *DialogBox) Visible() bool { return d.Box.Visible }

// Show plays the intro animation and makes the box visible. onDone, if not
// nil, fires once when the intro finishes.
func (d *DialogBox) Show(onDone func()) {
	d.hiding = false
	d.Box.Show()
	switch d.IntroStyle {
	case DialogFade:
		a := d.Box.Animator(PropertyFade)
		a.SetValue(0)
		a.OnComplete(onDone)
		a.StartTo(d.IntroSpeed, 255)
	case DialogScale:
		a := d.Box.Animator(PropertyScale)
		a.SetValue(0)
		a.OnComplete(onDone)
		a.StartTo(d.IntroSpeed, 1)
	default:
		d.Box.Animator(PropertyFade).SetValue(255)
		d.Box.Animator(PropertyScale).SetValue(1)
		if onDone != nil {
			onDone()
		}
	}
}

// Hide plays the outro animation, then removes the box from screen. The
// text and reveal cursor are kept, so a later Show can continue where the
// conversation left off. onDone, if not nil, fires once when the box is
// fully hidden.
func (d *DialogBox) Hide(onDone func()) {
	switch d.OutroStyle {
	case DialogFade:
		d.hiding = true
		a := d.Box.Animator(PropertyFade)
		a.OnComplete(onDone)
		a.StartTo(-d.OutroSpeed, 0)
	case DialogScale:
		d.hiding = true
		a := d.Box.Animator(PropertyScale)
		a.OnComplete(onDone)
		a.StartTo(-d.OutroSpeed, 0)
	default:
		d.Box.Hide()
		if onDone != nil {
			onDone()
		}
	}
}

// Clear erases the text and resets the reveal cursor to the top of the box.
func (d *DialogBox) Clear() {
	d.Reveal.Clear()
}

// Update advances the box animations and the text reveal by dt seconds.
func (d *DialogBox) Update(dt float64) {
	d.Box.Update(dt)

	if d.hiding {
		fade := d.Box.Animator(PropertyFade)
		scale := d.Box.Animator(PropertyScale)
		if !fade.Active() && !scale.Active() {
			d.hiding = false
			d.Box.Hide()
		}
		return
	}

	if d.Box.Visible {
		d.Reveal.Update(dt)
	}
}
