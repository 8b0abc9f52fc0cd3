package gallery

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		name      string
		dx, dy    int
		threshold int
		want      SwipeDirection
	}{
		{"left past threshold advances", -8, 1, 5, SwipeNext},
		{"right past threshold goes back", 8, -2, 5, SwipePrev},
		{"exactly threshold is a no-op", -5, 0, 5, SwipeNone},
		{"sub-threshold", 3, 0, 5, SwipeNone},
		{"predominantly vertical", -9, 12, 5, SwipeNone},
		{"diagonal tie is not horizontal", 10, -10, 5, SwipeNone},
		{"no movement", 0, 0, 5, SwipeNone},
		{"zero threshold", -1, 0, 0, SwipeNext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySwipe(tt.dx, tt.dy, tt.threshold)
			assert.Equal(t, got, tt.want, "ClassifySwipe(%d, %d, %d)", tt.dx, tt.dy, tt.threshold)
		})
	}
}

func TestDrag_StartEnd(t *testing.T) {
	var d Drag

	// release without press
	assert.Equal(t, d.End(10, 10, 5), SwipeNone)

	d.Start(40, 10)
	assert.Equal(t, d.End(20, 12, 5), SwipeNext)
	// a second release is not a swipe
	assert.Equal(t, d.End(0, 12, 5), SwipeNone)

	d.Start(20, 10)
	assert.Equal(t, d.End(30, 10, 5), SwipePrev)

	d.Start(20, 10)
	d.Cancel()
	assert.Equal(t, d.End(0, 10, 5), SwipeNone)
}

func TestSwipeDirection_String(t *testing.T) {
	assert.Equal(t, SwipeNext.String(), "next")
	assert.Equal(t, SwipePrev.String(), "prev")
	assert.Equal(t, SwipeNone.String(), "none")
}
