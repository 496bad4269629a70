package lantern

import (
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// KernAny is the wildcard in a kerning rule's Previous field: the rule
// applies after any preceding letter that has no more specific rule.
const KernAny = "*"

// KerningRule adjusts a letter's horizontal spacing depending on which
// letter precedes it. Left pulls the letter toward the previous one
// (negative values tighten); Right adjusts the gap before the next letter.
type KerningRule struct {
	// Previous lists the letters this rule applies after, or KernAny.
	Previous string `yaml:"previous"`
	Left     int    `yaml:"left"`
	Right    int    `yaml:"right"`
}

// LetterDef describes one glyph on the sprite sheet.
type LetterDef struct {
	// Crop is the glyph's rectangle on the sheet: left, top, right, bottom.
	Crop [4]int `yaml:"crop"`

	// Kerning rules for this letter, most specific first.
	Kerning []KerningRule `yaml:"kerning,omitempty"`
}

// fontSheetDesc is the on-disk YAML shape of a font sheet description.
type fontSheetDesc struct {
	Width          int                   `yaml:"width"`
	Height         int                   `yaml:"height"`
	PaddingLetters int                   `yaml:"paddingLetters"`
	PaddingLines   int                   `yaml:"paddingLines"`
	Letters        map[string]LetterDef  `yaml:"letters"`
	Punctuation    map[string]float64    `yaml:"punctuation,omitempty"`
}

// FontSheet is a bitmap font: a sprite sheet plus per-letter crop rectangles
// and kerning rules. The sheet image may be nil, in which case the font
// still provides metrics and layout but no glyph pixels; the text reveal
// logic only needs metrics.
type FontSheet struct {
	// LetterHeight is the uniform glyph height in pixels.
	LetterHeight int

	// PaddingLetters is the default gap between adjacent letters.
	PaddingLetters int

	// PaddingLines is the extra gap between lines.
	PaddingLines int

	// Punctuation maps letters to reveal pause durations in seconds,
	// as declared in the sheet description. Callers may override per
	// reveal session.
	Punctuation map[rune]float64

	sheet   *ebiten.Image
	letters map[rune]LetterDef
}

// LoadFontSheet parses a YAML font sheet description and binds it to the
// given sprite sheet image (which may be nil for metrics-only use).
func LoadFontSheet(desc []byte, sheet *ebiten.Image) (*FontSheet, error) {
	var d fontSheetDesc
	if err := yaml.Unmarshal(desc, &d); err != nil {
		return nil, fmt.Errorf("lantern: parse font sheet: %w", err)
	}
	if len(d.Letters) == 0 {
		return nil, fmt.Errorf("lantern: font sheet has no letter definitions")
	}
	if d.Height <= 0 {
		return nil, fmt.Errorf("lantern: font sheet height must be positive, got %d", d.Height)
	}

	f := &FontSheet{
		LetterHeight:   d.Height,
		PaddingLetters: d.PaddingLetters,
		PaddingLines:   d.PaddingLines,
		sheet:          sheet,
		letters:        make(map[rune]LetterDef, len(d.Letters)),
	}

	for s, def := range d.Letters {
		runes := []rune(s)
		if len(runes) != 1 {
			return nil, fmt.Errorf("lantern: font sheet letter key %q must be a single character", s)
		}
		if def.Crop[2] < def.Crop[0] || def.Crop[3] < def.Crop[1] {
			return nil, fmt.Errorf("lantern: font sheet letter %q has an inverted crop", s)
		}
		f.letters[runes[0]] = def
	}

	if len(d.Punctuation) > 0 {
		f.Punctuation = make(map[rune]float64, len(d.Punctuation))
		for s, secs := range d.Punctuation {
			runes := []rune(s)
			if len(runes) != 1 {
				return nil, fmt.Errorf("lantern: font sheet punctuation key %q must be a single character", s)
			}
			f.Punctuation[runes[0]] = secs
		}
	}

	return f, nil
}

// Has reports whether the font defines the given letter.
func (f *FontSheet) Has(letter rune) bool {
	_, ok := f.letters[letter]
	return ok
}

// Width returns the pixel width of the letter's crop, or 0 for letters the
// font does not define.
func (f *FontSheet) Width(letter rune) int {
	def, ok := f.letters[letter]
	if !ok {
		return 0
	}
	return def.Crop[2] - def.Crop[0]
}

// Glyph returns the sub-image for the letter, or nil when the font has no
// sheet image or does not define the letter.
func (f *FontSheet) Glyph(letter rune) *ebiten.Image {
	if f.sheet == nil {
		return nil
	}
	def, ok := f.letters[letter]
	if !ok {
		return nil
	}
	r := image.Rect(def.Crop[0], def.Crop[1], def.Crop[2], def.Crop[3])
	return f.sheet.SubImage(r).(*ebiten.Image)
}

// Trims returns the kerning adjustments for letter when it follows previous.
// A rule naming the previous letter explicitly wins over a KernAny wildcard;
// with no applicable rule both trims are zero. previous == 0 means the
// letter starts a line, where only explicit-empty rules could apply, so it
// gets no adjustment.
func (f *FontSheet) Trims(letter, previous rune) (left, right int) {
	def, ok := f.letters[letter]
	if !ok || previous == 0 {
		return 0, 0
	}

	var wildcard *KerningRule
	for i := range def.Kerning {
		rule := &def.Kerning[i]
		if rule.Previous == KernAny {
			if wildcard == nil {
				wildcard = rule
			}
			continue
		}
		if strings.ContainsRune(rule.Previous, previous) {
			return rule.Left, rule.Right
		}
	}
	if wildcard != nil {
		return wildcard.Left, wildcard.Right
	}
	return 0, 0
}
