package lantern

import "fmt"

// Animation configures one property animation request.
type Animation struct {
	// Speed is the signed rate in units per second.
	Speed float64

	// Target is the value to stop at; only read when HasTarget is true.
	Target    float64
	HasTarget bool

	// DelayFrames skips that many frames between effective animator
	// updates. Zero updates every frame.
	DelayFrames int

	// OnDone names the script to run when the target is reached. Empty
	// means no completion signal.
	OnDone string
}

// Stage owns the entities, camera, and dialog box of one scene and drives
// them all from a single per-frame delta.
//
// The script layer talks to the Stage by entity name and receives exactly
// one kind of signal back, through OnComplete: "this animation finished,
// run that script". The Stage never inspects or runs scripts itself.
type Stage struct {
	// OnComplete receives the script name attached to a finished
	// animation, movement, or text reveal. Nil drops the signals.
	OnComplete func(script string)

	screenW, screenH int

	entities map[string]*Entity
	// order preserves insertion order for deterministic updates and draws.
	order []*Entity

	camera *Camera
	dialog *DialogBox
}

// NewStage creates an empty stage for a screen of the given size.
func NewStage(screenW, screenH int) *Stage {
	return &Stage{
		screenW:  screenW,
		screenH:  screenH,
		entities: make(map[string]*Entity),
		camera:   NewCamera(screenW, screenH),
	}
}

// Camera returns the stage's camera.
func (s *Stage) Camera() *Camera { return s.camera }

// Dialog returns the stage's dialog box, or nil if none was attached.
func (s *Stage) Dialog() *DialogBox { return s.dialog }

// SetDialog attaches the dialog box the text operations act on.
func (s *Stage) SetDialog(d *DialogBox) { s.dialog = d }

// ScreenSize returns the stage's screen dimensions.
func (s *Stage) ScreenSize() (w, h int) { return s.screenW, s.screenH }

// Add registers an entity. Adding a name that already exists replaces the
// old entity in place, keeping its draw order.
func (s *Stage) Add(e *Entity) {
	if old, ok := s.entities[e.Name]; ok {
		for i, ent := range s.order {
			if ent == old {
				s.order[i] = e
				break
			}
		}
	} else {
		s.order = append(s.order, e)
	}
	s.entities[e.Name] = e
}

// Entity returns the named entity, or nil.
func (s *Stage) Entity(name string) *Entity {
	return s.entities[name]
}

// Remove deletes the named entity from the stage.
func (s *Stage) Remove(name string) {
	e, ok := s.entities[name]
	if !ok {
		return
	}
	delete(s.entities, name)
	for i, ent := range s.order {
		if ent == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Entities returns the entities in insertion (draw) order. The slice is
// owned by the stage; treat it as read-only.
func (s *Stage) Entities() []*Entity { return s.order }

func (s *Stage) entity(name string) (*Entity, error) {
	e, ok := s.entities[name]
	if !ok {
		return nil, fmt.Errorf("lantern: no entity named %q", name)
	}
	return e, nil
}

// completion wraps a script name as a fire-once callback routed through
// OnComplete. An empty name yields nil.
func (s *Stage) completion(script string) func() {
	if script == "" {
		return nil
	}
	return func() {
		if s.OnComplete != nil {
			s.OnComplete(script)
		}
	}
}

// Animate starts an animation on one property of the named entity.
func (s *Stage) Animate(name string, p Property, anim Animation) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	a := e.Animator(p)
	a.SetDelay(anim.DelayFrames)
	a.OnComplete(s.completion(anim.OnDone))
	if anim.HasTarget {
		a.StartTo(anim.Speed, anim.Target)
	} else {
		a.Start(anim.Speed)
	}
	return nil
}

// StopAnimation halts one property of the named entity without firing its
// completion signal.
func (s *Stage) StopAnimation(name string, p Property) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.Animator(p).Stop()
	return nil
}

// AddStopCondition registers a movement stop condition on the named entity.
func (s *Stage) AddStopCondition(name string, edge Edge, coordinate float64) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.Stops().Add(edge, coordinate)
	return nil
}

// AfterMovementStop sets the script to run when the named entity's movement
// stop conditions are all satisfied.
func (s *Stage) AfterMovementStop(name, script string) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.OnMovementStop(s.completion(script))
	return nil
}

// Show requests the named entity become visible at its next update.
func (s *Stage) Show(name string) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.Show()
	return nil
}

// Hide requests the named entity become invisible at its next update.
func (s *Stage) Hide(name string) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.Hide()
	return nil
}

// Flip mirrors the named entity on the requested axes.
func (s *Stage) Flip(name string, horizontal, vertical bool) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.Flip(horizontal, vertical)
	return nil
}

// Place moves the named entity to named screen placements on both axes.
func (s *Stage) Place(name string, px PositionX, py PositionY) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.PlaceX(px, float64(s.screenW))
	e.PlaceY(py, float64(s.screenH))
	return nil
}

// AddStopAt registers stop conditions at named screen placements, one per
// axis, on the named entity.
func (s *Stage) AddStopAt(name string, px PositionX, py PositionY) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.AddStopX(px, float64(s.screenW))
	e.AddStopY(py, float64(s.screenH))
	return nil
}

// SetTint starts tinting the named entity toward target at speed levels per
// second.
func (s *Stage) SetTint(name string, style TintStyle, target, speed float64) error {
	e, err := s.entity(name)
	if err != nil {
		return err
	}
	e.Tint().Start(style, target, speed)
	return nil
}

// CameraMove starts a camera pan and zoom.
func (s *Stage) CameraMove(x, y, zoom, duration float64, easing Easing) {
	s.camera.StartMove(x, y, zoom, duration, easing)
}

// CameraShake starts a camera shake.
func (s *Stage) CameraShake(intensity, duration float64) {
	s.camera.StartShake(intensity, duration)
}

// RevealText starts revealing dialog text in the given mode. With
// appendText the text continues after what is already shown. onDone names
// the script to run when the reveal finishes.
func (s *Stage) RevealText(text string, mode RevealMode, appendText bool, onDone string) error {
	if s.dialog == nil {
		return fmt.Errorf("lantern: stage has no dialog box")
	}
	s.dialog.Reveal.Begin(text, mode, appendText)
	s.dialog.Reveal.OnShown(s.completion(onDone))
	return nil
}

// SetPunctuationDelay configures a reveal hold for the given letter, in
// seconds. Zero removes the hold.
func (s *Stage) SetPunctuationDelay(letter rune, seconds float64) error {
	if s.dialog == nil {
		return fmt.Errorf("lantern: stage has no dialog box")
	}
	s.dialog.Reveal.SetPunctuationDelay(letter, seconds)
	return nil
}

// Update advances every entity, then the camera, then the dialog box, by dt
// seconds.
func (s *Stage) Update(dt float64) {
	for _, e := range s.order {
		e.Update(dt)
	}
	s.camera.Update(dt)
	if s.dialog != nil {
		s.dialog.Update(dt)
	}
}
