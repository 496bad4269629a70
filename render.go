package lantern

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// tintPixel is a shared 1x1 white image stretched over an entity's bounds
// to composite tint overlays.
var tintPixel *ebiten.Image

func tintOverlayImage() *ebiten.Image {
	if tintPixel == nil {
		tintPixel = ebiten.NewImage(1, 1)
		tintPixel.Fill(color.White)
	}
	return tintPixel
}

// Draw renders every visible entity, then the dialog box and its text, into
// scene. Pass scene through Camera.Render to put it on screen:
//
//	stage.Draw(scene)
//	stage.Camera().Render(scene, screen)
func (s *Stage) Draw(scene *ebiten.Image) {
	for _, e := range s.order {
		e.Draw(scene)
	}
	if s.dialog != nil {
		s.dialog.Draw(scene)
	}
}

// Draw renders the entity into dst with its current flip, scale, rotation,
// position, fade, and tint applied.
func (e *Entity) Draw(dst *ebiten.Image) {
	if !e.Visible || e.Image == nil {
		return
	}

	srcW := float64(e.Image.Bounds().Dx())
	srcH := float64(e.Image.Bounds().Dy())

	scale := 1.0
	if a := e.animators[PropertyScale]; a != nil {
		scale = a.Value()
	}
	if scale <= 0 {
		return
	}
	rotation := 0.0
	if a := e.animators[PropertyRotate]; a != nil {
		rotation = a.Value()
	}
	opacity := 255.0
	if a := e.animators[PropertyFade]; a != nil {
		opacity = clamp(a.Value(), 0, 255)
	}
	if opacity == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}

	// Flip and transform around the sprite center, then place the center
	// inside the (unscaled) bounds.
	op.GeoM.Translate(-srcW/2, -srcH/2)
	if e.FlippedH {
		op.GeoM.Scale(-1, 1)
	}
	if e.FlippedV {
		op.GeoM.Scale(1, -1)
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(rotation * math.Pi / 180)
	c := e.Bounds.Center()
	op.GeoM.Translate(c.X, c.Y)

	op.ColorScale.ScaleAlpha(float32(opacity) / 255)
	dst.DrawImage(e.Image, op)

	e.drawTint(dst, scale)
}

// drawTint composites the tint overlay as a flat gray rectangle over the
// entity's scaled bounds, using the tint style's blend.
func (e *Entity) drawTint(dst *ebiten.Image, scale float64) {
	if e.tint == nil {
		return
	}
	r, g, b, ok := e.tint.Tint()
	if !ok {
		return
	}

	w := e.Bounds.Width * scale
	h := e.Bounds.Height * scale
	if w <= 0 || h <= 0 {
		return
	}
	c := e.Bounds.Center()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(c.X-w/2, c.Y-h/2)
	op.ColorScale.Scale(float32(r)/255, float32(g)/255, float32(b)/255, 1)
	op.Blend = e.tint.Style().Blend()
	dst.DrawImage(tintOverlayImage(), op)
}

// Draw renders the dialog box and its revealed text into dst.
func (d *DialogBox) Draw(dst *ebiten.Image) {
	if !d.Box.Visible {
		return
	}
	d.Box.Draw(dst)

	boxOpacity := 255.0
	if a := d.Box.animators[PropertyFade]; a != nil {
		boxOpacity = clamp(a.Value(), 0, 255)
	}
	if boxOpacity == 0 {
		return
	}

	originX := d.Box.Bounds.X + d.TextOrigin.X
	originY := d.Box.Bounds.Y + d.TextOrigin.Y

	glyphs := d.Reveal.Glyphs()
	for i := range glyphs {
		g := &glyphs[i]
		if g.Image == nil || g.Opacity <= 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(originX+g.X, originY+g.Y)
		// Glyph opacity composes with the box's own fade.
		op.ColorScale.ScaleAlpha(float32(clamp(g.Opacity, 0, 255)) / 255 * float32(boxOpacity) / 255)
		dst.DrawImage(g.Image, op)
	}
}
