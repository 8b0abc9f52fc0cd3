package gallery

// DefaultSwipeThreshold is the horizontal displacement, in terminal cells,
// a drag must exceed to count as a swipe.
const DefaultSwipeThreshold = 5

// SwipeDirection is the navigation outcome of a drag gesture.
type SwipeDirection int

const (
	SwipeNone SwipeDirection = iota
	SwipeNext                // dragged left
	SwipePrev                // dragged right
)

func (d SwipeDirection) String() string {
	switch d {
	case SwipeNext:
		return "next"
	case SwipePrev:
		return "prev"
	default:
		return "none"
	}
}

// ClassifySwipe maps a pointer displacement to a navigation direction.
// The drag must be predominantly horizontal and exceed threshold.
func ClassifySwipe(dx, dy, threshold int) SwipeDirection {
	adx, ady := abs(dx), abs(dy)
	if adx <= ady || adx <= threshold {
		return SwipeNone
	}
	if dx < 0 {
		return SwipeNext
	}
	return SwipePrev
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Drag tracks one pointer press until its release.
type Drag struct {
	active bool
	startX int
	startY int
}

// Start records the press position, replacing any unfinished drag.
func (d *Drag) Start(x, y int) {
	d.active = true
	d.startX = x
	d.startY = y
}

// Cancel drops the tracked press.
func (d *Drag) Cancel() { d.active = false }

// End finishes the drag at the release position and classifies it.
// A release without a matching press yields SwipeNone.
func (d *Drag) End(x, y, threshold int) SwipeDirection {
	if !d.active {
		return SwipeNone
	}
	d.active = false
	return ClassifySwipe(x-d.startX, y-d.startY, threshold)
}
