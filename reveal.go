package lantern

import "github.com/hajimehoshi/ebiten/v2"

// RevealMode selects how dialog text becomes visible.
type RevealMode uint8

const (
	// RevealInstant shows the whole text on the next update.
	RevealInstant RevealMode = iota

	// RevealWholeFade fades the whole text in at once.
	RevealWholeFade

	// RevealLetter shows letters one at a time at a fixed cadence.
	RevealLetter

	// RevealLetterFade fades letters in one after another, with up to three
	// letters fading at staggered rates at any moment.
	RevealLetterFade
)

// RevealStatus reports what a TextReveal update did this frame.
type RevealStatus uint8

const (
	// RevealNoChange means nothing visible changed (idle, or mid-pause).
	RevealNoChange RevealStatus = iota

	// RevealAnimating means glyph visibility changed this frame.
	RevealAnimating

	// RevealFinished means this frame completed the reveal.
	RevealFinished
)

// Glyph is one laid-out character of dialog text.
type Glyph struct {
	// Image is the glyph's sprite, nil for spaces and for metrics-only fonts.
	Image *ebiten.Image

	// X, Y is the glyph's top-left position, relative to the text origin.
	X, Y float64

	// Opacity is 0 (invisible) to 255 (fully shown).
	Opacity float64

	// IsSpace marks layout-only glyphs that reveal instantly.
	IsSpace bool

	// Rune is the character this glyph draws.
	Rune rune

	fadeStarted bool
}

// fadeWindow is how many letters fade concurrently in RevealLetterFade, and
// the relative rate of each slot behind the newest letter.
var fadeWindowRates = [3]float64{1, 0.66, 0.33}

// fadeHandoffOpacity is the opacity a fading letter must pass before the
// next letter begins fading.
const fadeHandoffOpacity = 120

// fadeHeadStart is the opacity bonus applied on the first frame a letter
// begins fading, so very slow fades still show immediate progress.
const fadeHeadStart = 15

// TextReveal lays out dialog text with a FontSheet and animates its
// appearance glyph by glyph.
//
// Letter cadence is time-based: a frame longer than the per-letter delay
// reveals several letters at once, so the reveal finishes on schedule
// regardless of frame rate. Spaces never consume delay budget. Punctuation
// letters can hold the reveal for a configured number of seconds after they
// appear.
type TextReveal struct {
	font   *FontSheet
	glyphs []Glyph
	mode   RevealMode

	animating bool

	// cursor is the index of the next glyph to reveal in letter modes; all
	// glyphs before it are fully visible.
	cursor int

	// fadeFrom marks where the current session's text begins, so a
	// whole-text fade after an append only fades the new glyphs.
	fadeFrom  int
	wholeFade float64

	// letterDelay is seconds of reveal budget per letter.
	letterDelay float64

	// fadeSpeed is opacity units per second for the fading modes.
	fadeSpeed float64

	punct        map[rune]float64
	pendingPause float64
	elapsed      float64

	penX, penY float64

	onShown func()
}

// NewTextReveal creates a reveal engine for the given font.
func NewTextReveal(font *FontSheet) *TextReveal {
	return &TextReveal{
		font:        font,
		letterDelay: 0.05,
		fadeSpeed:   300,
	}
}

// Glyphs returns the laid-out glyphs for rendering. The slice is owned by
// the engine; treat it as read-only.
func (t *TextReveal) Glyphs() []Glyph { return t.glyphs }

// Cursor returns the index of the next glyph to reveal.
func (t *TextReveal) Cursor() int { return t.cursor }

// Animating reports whether a reveal session is in flight.
func (t *TextReveal) Animating() bool { return t.animating }

// SetLetterDelay sets the seconds of reveal budget per letter for
// RevealLetter mode.
func (t *TextReveal) SetLetterDelay(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	t.letterDelay = seconds
}

// SetFadeSpeed sets the fade rate in opacity units per second for the
// fading modes.
func (t *TextReveal) SetFadeSpeed(unitsPerSecond float64) {
	if unitsPerSecond < 0 {
		unitsPerSecond = 0
	}
	t.fadeSpeed = unitsPerSecond
}

// SetPunctuationDelay holds the reveal for the given seconds after the
// letter appears. Zero seconds removes the hold, including one declared by
// the font sheet. These overrides take precedence over the font sheet's
// punctuation table.
func (t *TextReveal) SetPunctuationDelay(letter rune, seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if t.punct == nil {
		t.punct = make(map[rune]float64)
	}
	t.punct[letter] = seconds
}

// OnShown sets the callback fired once when the current session finishes
// revealing. The reference is cleared before it runs.
func (t *TextReveal) OnShown(fn func()) {
	t.onShown = fn
}

// Clear discards all laid-out text and resets the reveal cursor to the
// origin. The next Begin starts on an empty canvas.
func (t *TextReveal) Clear() {
	t.glyphs = nil
	t.cursor = 0
	t.fadeFrom = 0
	t.wholeFade = 0
	t.penX, t.penY = 0, 0
	t.pendingPause = 0
	t.elapsed = 0
	t.animating = false
}

// Begin lays out text and starts a reveal session in the given mode. With
// appendText the new glyphs continue after the existing ones, the cursor
// resumes where the previous session left it, and the pen keeps its
// position; otherwise the engine is cleared first.
func (t *TextReveal) Begin(text string, mode RevealMode, appendText bool) {
	if !appendText {
		t.Clear()
	}
	t.mode = mode
	t.fadeFrom = len(t.glyphs)
	t.wholeFade = 0
	t.pendingPause = 0
	t.elapsed = 0

	initial := 0.0
	if mode == RevealInstant {
		initial = 255
	}

	var prev rune
	for _, r := range text {
		if r == '\n' {
			t.penX = 0
			t.penY += float64(t.font.LetterHeight + t.font.PaddingLines)
			prev = 0
			continue
		}
		if r == ' ' {
			t.glyphs = append(t.glyphs, Glyph{
				X: t.penX, Y: t.penY,
				Opacity: initial,
				IsSpace: true,
				Rune:    r,
			})
			t.penX += t.spaceWidth()
			prev = 0
			continue
		}
		if !t.font.Has(r) {
			continue
		}
		left, right := t.font.Trims(r, prev)
		x := t.penX + float64(left)
		w := float64(t.font.Width(r))
		t.glyphs = append(t.glyphs, Glyph{
			Image:   t.font.Glyph(r),
			X:       x,
			Y:       t.penY,
			Opacity: initial,
			Rune:    r,
		})
		t.penX = x + w + float64(t.font.PaddingLetters+right)
		prev = r
	}

	t.animating = true
}

func (t *TextReveal) spaceWidth() float64 {
	if t.font.Has(' ') {
		return float64(t.font.Width(' ') + t.font.PaddingLetters)
	}
	return float64(t.font.LetterHeight) / 2
}

// punctuationDelay returns the hold in seconds after the letter appears,
// preferring session overrides over the font's table.
func (t *TextReveal) punctuationDelay(letter rune) float64 {
	if d, ok := t.punct[letter]; ok {
		return d
	}
	return t.font.Punctuation[letter]
}

// Update advances the reveal by dt seconds.
func (t *TextReveal) Update(dt float64) RevealStatus {
	if !t.animating {
		return RevealNoChange
	}

	switch t.mode {
	case RevealInstant:
		for i := range t.glyphs {
			t.glyphs[i].Opacity = 255
		}
		return t.finish()

	case RevealWholeFade:
		return t.updateWholeFade(dt)

	case RevealLetter:
		return t.updateLetter(dt)

	case RevealLetterFade:
		return t.updateLetterFade(dt)
	}
	return RevealNoChange
}

func (t *TextReveal) updateWholeFade(dt float64) RevealStatus {
	t.wholeFade += t.fadeSpeed * dt
	if t.wholeFade > 255 {
		t.wholeFade = 255
	}
	for i := t.fadeFrom; i < len(t.glyphs); i++ {
		t.glyphs[i].Opacity = t.wholeFade
	}
	if t.wholeFade >= 255 {
		return t.finish()
	}
	return RevealAnimating
}

func (t *TextReveal) updateLetter(dt float64) RevealStatus {
	if t.pendingPause > 0 {
		t.pendingPause -= dt
		if t.pendingPause > 0 {
			return RevealNoChange
		}
		// The frame that ends a pause spends its leftover time revealing.
		dt = -t.pendingPause
		t.pendingPause = 0
	}

	t.elapsed += dt
	changed := false

	for t.cursor < len(t.glyphs) {
		g := &t.glyphs[t.cursor]

		if g.IsSpace {
			g.Opacity = 255
			t.cursor++
			changed = true
			continue
		}

		if t.letterDelay > 0 && t.elapsed < t.letterDelay {
			break
		}
		t.elapsed -= t.letterDelay

		g.Opacity = 255
		t.cursor++
		changed = true

		if p := t.punctuationDelay(g.Rune); p > 0 && t.cursor < len(t.glyphs) {
			t.pendingPause = p
			t.elapsed = 0
			break
		}
	}

	if t.cursor >= len(t.glyphs) {
		return t.finish()
	}
	if changed {
		return RevealAnimating
	}
	return RevealNoChange
}

func (t *TextReveal) updateLetterFade(dt float64) RevealStatus {
	// Advance the cursor past anything already settled. Spaces settle
	// instantly and never consume a fade slot.
	for t.cursor < len(t.glyphs) {
		g := &t.glyphs[t.cursor]
		if g.IsSpace {
			g.Opacity = 255
			t.cursor++
			continue
		}
		if g.Opacity >= 255 {
			t.cursor++
			continue
		}
		break
	}
	if t.cursor >= len(t.glyphs) {
		return t.finish()
	}

	changed := false
	slot := 0
	var prevFading *Glyph
	for i := t.cursor; i < len(t.glyphs) && slot < len(fadeWindowRates); i++ {
		g := &t.glyphs[i]
		if g.IsSpace {
			continue
		}
		// A letter starts fading only after the one ahead of it has faded
		// past the handoff threshold.
		if prevFading != nil && prevFading.Opacity <= fadeHandoffOpacity {
			break
		}
		if !g.fadeStarted {
			g.fadeStarted = true
			g.Opacity += fadeHeadStart
		}
		g.Opacity += fadeWindowRates[slot] * t.fadeSpeed * dt
		if g.Opacity > 255 {
			g.Opacity = 255
		}
		changed = true
		prevFading = g
		slot++
	}

	// Settle any letter that just finished, then check for completion.
	for t.cursor < len(t.glyphs) {
		g := &t.glyphs[t.cursor]
		if g.IsSpace {
			g.Opacity = 255
			t.cursor++
			continue
		}
		if g.Opacity >= 255 {
			t.cursor++
			continue
		}
		break
	}
	if t.cursor >= len(t.glyphs) {
		return t.finish()
	}
	if changed {
		return RevealAnimating
	}
	return RevealNoChange
}

// SkipToEnd shows all remaining text immediately and completes the session.
func (t *TextReveal) SkipToEnd() {
	for i := range t.glyphs {
		t.glyphs[i].Opacity = 255
	}
	if t.animating {
		t.finish()
	} else {
		t.cursor = len(t.glyphs)
	}
}

func (t *TextReveal) finish() RevealStatus {
	t.animating = false
	t.cursor = len(t.glyphs)
	t.pendingPause = 0
	fn := t.onShown
	t.onShown = nil
	if fn != nil {
		fn()
	}
	return RevealFinished
}
