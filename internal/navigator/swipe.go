// Package navigator turns horizontal touch drags into tab changes.
package navigator

import "math"

const (
	// MinSwipeDistance is the horizontal travel, in pixels, a drag must exceed.
	MinSwipeDistance = 50.0
	// MaxVerticalRatio bounds vertical drift relative to horizontal travel.
	MaxVerticalRatio = 0.8
)

// Point is a touch position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Swipe is the classification of a finished drag.
type Swipe int

const (
	None Swipe = iota
	// Left means the finger moved left; it advances to the next tab.
	Left
	// Right means the finger moved right; it retreats to the previous tab.
	Right
)

func (s Swipe) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// Classify classifies a drag by its deltas, where dx = startX - endX and
// dy = startY - endY.
func Classify(dx, dy float64) Swipe {
	if math.Abs(dx) <= MinSwipeDistance {
		return None
	}
	if math.Abs(dy) > MaxVerticalRatio*math.Abs(dx) {
		return None
	}
	if dx > 0 {
		return Left
	}
	return Right
}

// Next returns the tab a swipe lands on. Swipes past either end are no-ops,
// as is a current tab that is not in tabs.
func Next(tabs []string, current string, s Swipe) (string, bool) {
	index := -1
	for i, tab := range tabs {
		if tab == current {
			index = i
			break
		}
	}
	if index < 0 {
		return current, false
	}

	switch s {
	case Left:
		if index < len(tabs)-1 {
			return tabs[index+1], true
		}
	case Right:
		if index > 0 {
			return tabs[index-1], true
		}
	}
	return current, false
}

// Tracker follows a single touch sequence.
//
// The zero value is ready to use.
type Tracker struct {
	start   Point
	last    Point
	started bool
	moved   bool
}

// Start records the touch-start position and discards any previous move.
func (t *Tracker) Start(p Point) {
	t.start = p
	t.last = Point{}
	t.started = true
	t.moved = false
}

// Move records the latest touch position.
func (t *Tracker) Move(p Point) {
	t.last = p
	t.moved = true
}

// End finishes the sequence and classifies it. A sequence without a start
// or any move is not a swipe.
func (t *Tracker) End() Swipe {
	defer func() {
		t.started = false
		t.moved = false
	}()
	if !t.started || !t.moved {
		return None
	}
	return Classify(t.start.X-t.last.X, t.start.Y-t.last.Y)
}
