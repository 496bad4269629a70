package lantern

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Preferences are the player-adjustable text settings.
type Preferences struct {
	// TextSpeedRow is the 1..10 position of the text speed slider.
	TextSpeedRow int `yaml:"textSpeedRow"`

	// LetterDelay is the seconds of reveal budget per letter for the
	// letter-by-letter mode, derived from TextSpeedRow but stored so a
	// saved game replays at the exact speed it was saved with.
	LetterDelay float64 `yaml:"letterDelay"`

	// RevealMode is the player's preferred text reveal mode.
	RevealMode RevealMode `yaml:"revealMode"`
}

// DefaultPreferences returns the middle-of-the-slider defaults.
func DefaultPreferences() *Preferences {
	return &Preferences{
		TextSpeedRow: 5,
		LetterDelay:  1.0 / LetterRevealSpeed(5),
		RevealMode:   RevealLetter,
	}
}

const (
	prefsObject   = "settings"
	prefsProperty = "text"
)

// PreferenceStore loads and saves Preferences through a gdata manager. A
// nil manager degrades to in-memory defaults: Load yields defaults and Save
// is a no-op, so the store works on platforms without writable storage.
type PreferenceStore struct {
	manager *gdata.Manager
	prefs   *Preferences
}

// NewPreferenceStore creates a store and loads any saved preferences. A
// load failure is not fatal; the store falls back to defaults and returns
// the error for logging.
func NewPreferenceStore(manager *gdata.Manager) (*PreferenceStore, error) {
	ps := &PreferenceStore{
		manager: manager,
		prefs:   DefaultPreferences(),
	}
	err := ps.Load()
	return ps, err
}

// Preferences returns the current in-memory preferences.
func (ps *PreferenceStore) Preferences() *Preferences {
	return ps.prefs
}

// Load reads saved preferences, or resets to defaults when nothing is
// saved or the store is in degraded mode.
func (ps *PreferenceStore) Load() error {
	if ps.manager == nil {
		ps.prefs = DefaultPreferences()
		return nil
	}
	if !ps.manager.ObjectPropExists(prefsObject, prefsProperty) {
		ps.prefs = DefaultPreferences()
		return nil
	}
	data, err := ps.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		ps.prefs = DefaultPreferences()
		return fmt.Errorf("lantern: load preferences: %w", err)
	}
	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		ps.prefs = DefaultPreferences()
		return fmt.Errorf("lantern: unmarshal preferences: %w", err)
	}
	if loaded.TextSpeedRow < 1 || loaded.TextSpeedRow > 10 {
		loaded.TextSpeedRow = 5
	}
	ps.prefs = &loaded
	return nil
}

// Save persists the current preferences. In degraded mode it is a no-op.
func (ps *PreferenceStore) Save() error {
	if ps.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(ps.prefs)
	if err != nil {
		return fmt.Errorf("lantern: marshal preferences: %w", err)
	}
	if err := ps.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("lantern: save preferences: %w", err)
	}
	return nil
}

// SetTextSpeedRow moves the text speed slider, clamped to 1..10, and
// rederives the letter delay.
func (ps *PreferenceStore) SetTextSpeedRow(row int) {
	if row < 1 {
		row = 1
	}
	if row > 10 {
		row = 10
	}
	ps.prefs.TextSpeedRow = row
	ps.prefs.LetterDelay = 1.0 / LetterRevealSpeed(row)
}

// SpeedForRow maps a 1-based slider row to a rate: row 1 yields initial,
// and each further row adds increment. Rows outside 1..maxRow clamp.
func SpeedForRow(initial, increment float64, maxRow, row int) float64 {
	if row < 1 {
		row = 1
	}
	if row > maxRow {
		row = maxRow
	}
	return initial + float64(row-1)*increment
}

// letterFadeSpeeds and wholeFadeSpeeds map slider rows 1..10 to fade rates
// in opacity units per second for the letter-by-letter fade and whole-text
// fade modes. The steps are hand-tuned rather than linear: the top rows
// pull away faster so "fast" feels fast.
var (
	letterFadeSpeeds = [10]float64{30, 60, 150, 210, 300, 330, 360, 390, 420, 480}
	wholeFadeSpeeds  = [10]float64{90, 180, 330, 510, 600, 750, 840, 990, 1080, 1200}
)

// LetterFadeSpeed returns the per-letter fade rate for a 1..10 slider row,
// in opacity units per second.
func LetterFadeSpeed(row int) float64 {
	return rowSpeed(letterFadeSpeeds, row)
}

// WholeFadeSpeed returns the whole-text fade rate for a 1..10 slider row,
// in opacity units per second.
func WholeFadeSpeed(row int) float64 {
	return rowSpeed(wholeFadeSpeeds, row)
}

// LetterRevealSpeed returns letters per second for a 1..10 slider row in
// the non-fading letter mode.
func LetterRevealSpeed(row int) float64 {
	// 0.5 letters per frame at row 1 up to 8 at row 10, at a 60 FPS
	// reference rate.
	return SpeedForRow(0.5, (8.0-0.5)/9.0, 10, row) * 60
}

func rowSpeed(table [10]float64, row int) float64 {
	if row < 1 {
		row = 1
	}
	if row > len(table) {
		row = len(table)
	}
	return table[row-1]
}
