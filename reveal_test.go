package lantern

import (
	"math"
	"testing"
)

func TestRevealInstantFinishesInOneUpdate(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.Begin("abc", RevealInstant, false)

	if got := r.Update(1.0 / 60); got != RevealFinished {
		t.Fatalf("status = %v, want RevealFinished", got)
	}
	for i, g := range r.Glyphs() {
		if g.Opacity != 255 {
			t.Errorf("glyph %d opacity = %f, want 255", i, g.Opacity)
		}
	}
}

func TestRevealLetterCadence(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.1)
	r.Begin("abcde", RevealLetter, false)

	// Each 0.1s frame reveals exactly one letter.
	for want := 1; want <= 4; want++ {
		status := r.Update(0.1)
		if r.Cursor() != want {
			t.Fatalf("after frame %d: cursor = %d, want %d", want, r.Cursor(), want)
		}
		if status != RevealAnimating {
			t.Fatalf("after frame %d: status = %v, want RevealAnimating", want, status)
		}
	}
	if got := r.Update(0.1); got != RevealFinished {
		t.Errorf("final status = %v, want RevealFinished", got)
	}
}

func TestRevealLetterCatchesUpOnLongFrames(t *testing.T) {
	// A frame five times the per-letter delay reveals five letters, so the
	// reveal finishes on schedule regardless of frame rate.
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.1)
	r.Begin("abcdefghij", RevealLetter, false)

	r.Update(0.5)
	if r.Cursor() != 5 {
		t.Fatalf("cursor = %d after one 0.5s frame, want 5", r.Cursor())
	}
	if got := r.Update(0.5); got != RevealFinished {
		t.Errorf("status = %v after 1.0s total, want RevealFinished", got)
	}
}

func TestRevealLetterTotalTimeIndependentOfFrameRate(t *testing.T) {
	elapsedFor := func(dt float64) float64 {
		r := NewTextReveal(testFont(t))
		r.SetLetterDelay(0.1)
		r.Begin("abcdefghij", RevealLetter, false)
		total := 0.0
		for i := 0; i < 100000; i++ {
			total += dt
			if r.Update(dt) == RevealFinished {
				return total
			}
		}
		t.Fatalf("dt=%f: reveal never finished", dt)
		return 0
	}

	fine := elapsedFor(1.0 / 60)
	coarse := elapsedFor(0.25)

	// 10 letters at 0.1s each: about a second either way.
	if math.Abs(fine-1.0) > 0.05 {
		t.Errorf("fine-grained total = %f, want ~1.0", fine)
	}
	if math.Abs(coarse-1.0) > 0.26 {
		t.Errorf("coarse total = %f, want ~1.0 within one frame", coarse)
	}
}

func TestRevealSpacesAreFreeAndInstant(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.1)
	r.Begin("a b", RevealLetter, false)

	// The first frame's budget pays for "a"; the space rides along free.
	r.Update(0.1)
	if r.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2 (letter plus free space)", r.Cursor())
	}
	glyphs := r.Glyphs()
	if !glyphs[1].IsSpace || glyphs[1].Opacity != 255 {
		t.Error("space glyph should be instantly visible")
	}
	if glyphs[2].Opacity != 0 {
		t.Error("letter after the space still needs its own budget")
	}
}

func TestRevealPunctuationPause(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.05)
	r.Begin("Hi. Bob", RevealLetter, false)

	// Three frames reveal H, i, and the period.
	for i := 0; i < 3; i++ {
		r.Update(0.05)
	}
	if r.Cursor() != 3 {
		t.Fatalf("cursor = %d after 3 frames, want 3", r.Cursor())
	}

	// The font declares a 0.4s hold after a period. Count the frames until
	// the next letter appears; the hold is 8 frames at 0.05s.
	pauseFrames := 0
	for r.Cursor() == 3 {
		status := r.Update(0.05)
		pauseFrames++
		if r.Cursor() == 3 && status != RevealNoChange {
			t.Fatalf("status = %v during pause, want RevealNoChange", status)
		}
		if pauseFrames > 12 {
			t.Fatal("pause never ended")
		}
	}
	if pauseFrames < 8 || pauseFrames > 10 {
		t.Errorf("pause lasted %d frames, want about 9", pauseFrames)
	}
	// The frame that ends the pause spends its leftover budget: the free
	// space and the letter B arrive together.
	if r.Cursor() != 5 {
		t.Errorf("cursor = %d after pause, want 5", r.Cursor())
	}
}

func TestRevealPunctuationOverrideRemoval(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.05)
	r.SetPunctuationDelay('.', 0) // cancel the font's hold
	r.Begin("a.b", RevealLetter, false)

	for i := 0; i < 3; i++ {
		r.Update(0.05)
	}
	if !r.Animating() && r.Cursor() == 3 {
		return
	}
	t.Errorf("cursor = %d, animating = %v; removing the hold should let the reveal run through", r.Cursor(), r.Animating())
}

func TestRevealNoPauseAfterFinalGlyph(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.05)
	r.Begin("a.", RevealLetter, false)

	r.Update(0.05)
	// The period is the last glyph: it must finish the reveal, not hold it.
	if got := r.Update(0.05); got != RevealFinished {
		t.Errorf("status = %v, want RevealFinished with no trailing pause", got)
	}
}

func TestRevealWholeFade(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetFadeSpeed(510)
	r.Begin("ab", RevealWholeFade, false)

	r.Update(0.25)
	for i, g := range r.Glyphs() {
		if math.Abs(g.Opacity-127.5) > 1e-9 {
			t.Errorf("glyph %d opacity = %f at midpoint, want 127.5", i, g.Opacity)
		}
	}

	if got := r.Update(0.25); got != RevealFinished {
		t.Errorf("status = %v, want RevealFinished", got)
	}
}

func TestRevealLetterFadeStaggers(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetFadeSpeed(300)
	r.Begin("ab", RevealLetterFade, false)

	// First frame: only the first letter fades, with its head-start bonus.
	r.Update(0.2)
	glyphs := r.Glyphs()
	if glyphs[0].Opacity != 75 { // 15 head start + 300*0.2
		t.Errorf("first letter opacity = %f, want 75", glyphs[0].Opacity)
	}
	if glyphs[1].Opacity != 0 {
		t.Error("second letter must wait until the first passes the handoff threshold")
	}

	// Second frame: the first letter passes 120, so the second starts at
	// the slower second-slot rate plus its head start.
	r.Update(0.2)
	glyphs = r.Glyphs()
	if glyphs[0].Opacity != 135 {
		t.Errorf("first letter opacity = %f, want 135", glyphs[0].Opacity)
	}
	want := 15 + 0.66*300*0.2
	if math.Abs(glyphs[1].Opacity-want) > 1e-9 {
		t.Errorf("second letter opacity = %f, want %f", glyphs[1].Opacity, want)
	}
}

func TestRevealLetterFadeFinishes(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetFadeSpeed(600)
	r.Begin("abc", RevealLetterFade, false)

	finished := false
	for i := 0; i < 600; i++ {
		if r.Update(1.0/60) == RevealFinished {
			finished = true
			break
		}
	}
	if !finished {
		t.Fatal("letter fade never finished")
	}
	for i, g := range r.Glyphs() {
		if g.Opacity != 255 {
			t.Errorf("glyph %d opacity = %f, want 255", i, g.Opacity)
		}
	}
}

func TestRevealSkipToEnd(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.1)
	shown := false
	r.Begin("abcde", RevealLetter, false)
	r.OnShown(func() { shown = true })

	r.Update(0.1)
	r.SkipToEnd()

	if r.Animating() {
		t.Error("skip should end the session")
	}
	if !shown {
		t.Error("skip should fire the completion callback")
	}
	for i, g := range r.Glyphs() {
		if g.Opacity != 255 {
			t.Errorf("glyph %d opacity = %f, want 255", i, g.Opacity)
		}
	}

	// Idle afterwards.
	if got := r.Update(0.1); got != RevealNoChange {
		t.Errorf("status = %v after skip, want RevealNoChange", got)
	}
}

func TestRevealOnShownFiresOnce(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.01)
	fired := 0
	r.Begin("ab", RevealLetter, false)
	r.OnShown(func() { fired++ })

	for i := 0; i < 10; i++ {
		r.Update(0.05)
	}
	if fired != 1 {
		t.Errorf("OnShown fired %d times, want 1", fired)
	}
}

func TestRevealAppendResumesCursor(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.SetLetterDelay(0.05)
	r.Begin("ab", RevealLetter, false)
	for i := 0; i < 4; i++ {
		r.Update(0.05)
	}
	if r.Animating() {
		t.Fatal("setup: first session should be done")
	}

	r.Begin("cd", RevealLetter, true)
	if len(r.Glyphs()) != 4 {
		t.Fatalf("glyph count = %d after append, want 4", len(r.Glyphs()))
	}
	if r.Cursor() != 2 {
		t.Fatalf("cursor = %d after append, want resumed at 2", r.Cursor())
	}
	// Old text stays visible; new text continues to the right of it.
	glyphs := r.Glyphs()
	if glyphs[1].Opacity != 255 {
		t.Error("earlier text must stay revealed")
	}
	if glyphs[2].X <= glyphs[1].X {
		t.Errorf("appended glyph X = %f, want beyond %f", glyphs[2].X, glyphs[1].X)
	}

	r.Update(0.05)
	if r.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3 (revealing appended text)", r.Cursor())
	}
}

func TestRevealClearResetsLayout(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.Begin("abc", RevealInstant, false)
	r.Update(0.1)

	r.Clear()
	if len(r.Glyphs()) != 0 || r.Cursor() != 0 {
		t.Fatal("Clear should empty the canvas")
	}

	r.Begin("a", RevealInstant, false)
	if g := r.Glyphs()[0]; g.X != 0 || g.Y != 0 {
		t.Errorf("glyph at (%f, %f) after Clear, want origin", g.X, g.Y)
	}
}

func TestRevealLayoutNewlineAndKerning(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.Begin("To\nb", RevealInstant, false)

	glyphs := r.Glyphs()
	if len(glyphs) != 3 {
		t.Fatalf("glyph count = %d, want 3", len(glyphs))
	}

	// "o" after "T" kerns left by 3: T is 10 wide plus 1 padding.
	if glyphs[1].X != 8 {
		t.Errorf("kerned o at X = %f, want 8", glyphs[1].X)
	}
	// Newline: back to the left edge, down a line plus line padding.
	if glyphs[2].X != 0 || glyphs[2].Y != 14 {
		t.Errorf("b at (%f, %f), want (0, 14)", glyphs[2].X, glyphs[2].Y)
	}
}

func TestRevealUndefinedLettersSkipped(t *testing.T) {
	r := NewTextReveal(testFont(t))
	r.Begin("a!b", RevealInstant, false) // "!" is not in the font

	if n := len(r.Glyphs()); n != 2 {
		t.Errorf("glyph count = %d, want 2", n)
	}
}
