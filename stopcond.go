package lantern

// Edge identifies a side of an entity's bounding box for stop conditions.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String returns the lowercase edge name.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	}
	return "unknown"
}

// StopTracker holds per-edge stop coordinates for a moving entity. Each
// condition says "when this edge of the bounding box crosses this
// coordinate". Satisfied conditions are removed immediately; when the set
// becomes empty the tracker reports movement complete, exactly once.
type StopTracker struct {
	conditions map[Edge]float64
}

// NewStopTracker creates an empty tracker.
func NewStopTracker() *StopTracker {
	return &StopTracker{conditions: make(map[Edge]float64)}
}

// Add registers (or replaces) a stop condition for the given edge.
func (t *StopTracker) Add(edge Edge, coordinate float64) {
	t.conditions[edge] = coordinate
}

// Len returns the number of pending conditions.
func (t *StopTracker) Len() int { return len(t.conditions) }

// Clear removes all pending conditions without reporting completion.
func (t *StopTracker) Clear() {
	for e := range t.conditions {
		delete(t.conditions, e)
	}
}

// Evaluate tests every pending condition against the entity's current
// bounds. dirX and dirY are the signs of the movement speed on each axis
// (-1, 0, +1); the comparison for an edge flips with the approach direction,
// because the same edge can be reached from either side. A condition on an
// axis with no movement is left pending, not failed: it may become relevant
// if the direction changes later.
//
// Satisfied edges are removed and returned. done is true only on the call
// where the last condition is satisfied; calling again afterwards is a
// no-op, so repeated evaluation cannot re-fire completion.
func (t *StopTracker) Evaluate(bounds Rect, dirX, dirY int) (satisfied []Edge, done bool) {
	if len(t.conditions) == 0 {
		return nil, false
	}

	for edge, coord := range t.conditions {
		var pos float64
		var dir int
		switch edge {
		case EdgeLeft:
			pos, dir = bounds.Left(), dirX
		case EdgeRight:
			pos, dir = bounds.Right(), dirX
		case EdgeTop:
			pos, dir = bounds.Top(), dirY
		case EdgeBottom:
			pos, dir = bounds.Bottom(), dirY
		}

		var hit bool
		switch {
		case dir < 0:
			hit = pos <= coord
		case dir > 0:
			hit = pos >= coord
		}
		if hit {
			satisfied = append(satisfied, edge)
		}
	}

	for _, edge := range satisfied {
		delete(t.conditions, edge)
	}

	return satisfied, len(satisfied) > 0 && len(t.conditions) == 0
}
