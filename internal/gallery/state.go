// Package gallery holds the view state of the gallery: the loaded items of
// the active category, the live search text, pagination, layout, and the
// fullscreen pointer. It does no I/O.
package gallery

import (
	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/search"
)

// DefaultPageSize is the number of items revealed per page.
const DefaultPageSize = 12

// State is the complete view state of one gallery screen.
type State struct {
	category model.Category
	layout   model.Layout
	items    []model.Item
	query    string
	filtered []model.Item

	pageSize   int
	visible    int  // pagination cursor: number of filtered items revealed
	fullscreen *int // index into filtered, nil when closed

	loading    bool
	err        error
	generation uint64 // bumped on every category switch
}

// Params holds parameters for creating a new State.
type Params struct {
	Category model.Category
	Layout   model.Layout
	PageSize int // optional, DefaultPageSize when <= 0
}

// New creates a State for the given category. Items are empty until a
// fetch result is applied with Loaded.
func New(params Params) State {
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		category: params.Category,
		layout:   params.Layout,
		pageSize: pageSize,
		visible:  pageSize,
	}
}

// Category returns the active category.
func (s *State) Category() model.Category { return s.category }

// Layout returns the active layout mode.
func (s *State) Layout() model.Layout { return s.layout }

// Query returns the live search text.
func (s *State) Query() string { return s.query }

// Items returns the unfiltered item list of the active category.
func (s *State) Items() []model.Item { return s.items }

// Loading reports whether a fetch for the active category is outstanding.
func (s *State) Loading() bool { return s.loading }

// Err returns the last fetch error, or nil.
func (s *State) Err() error { return s.err }

// PageSize returns the pagination step.
func (s *State) PageSize() int { return s.pageSize }

// SetCategory switches the active category. It clears the item list,
// resets pagination, closes fullscreen and enters the loading state.
// The returned generation must be passed back to Loaded or Failed.
func (s *State) SetCategory(c model.Category) uint64 {
	s.category = c
	s.items = nil
	s.filtered = nil
	s.visible = s.pageSize
	s.fullscreen = nil
	s.loading = true
	s.err = nil
	s.generation++
	return s.generation
}

// Reload starts a new fetch of the active category without touching the
// search text.
func (s *State) Reload() uint64 {
	return s.SetCategory(s.category)
}

// Loaded replaces the item list with a successful fetch result.
// Results of a superseded fetch are ignored and false is returned.
func (s *State) Loaded(gen uint64, items []model.Item) bool {
	if gen != s.generation {
		return false
	}
	s.items = items
	s.loading = false
	s.err = nil
	s.refilter()
	return true
}

// Failed records a fetch failure. Results of a superseded fetch are
// ignored and false is returned.
func (s *State) Failed(gen uint64, err error) bool {
	if gen != s.generation {
		return false
	}
	s.items = nil
	s.filtered = nil
	s.loading = false
	s.err = err
	s.fullscreen = nil
	return true
}

// SetQuery updates the search text. A changed query resets pagination
// and closes fullscreen.
func (s *State) SetQuery(q string) {
	if q == s.query {
		return
	}
	s.query = q
	s.visible = s.pageSize
	s.fullscreen = nil
	s.refilter()
}

func (s *State) refilter() {
	s.filtered = search.Filter(s.items, s.query)
	if s.fullscreen != nil && *s.fullscreen >= len(s.filtered) {
		s.fullscreen = nil
	}
}

// Filtered returns the items matching the search text.
func (s *State) Filtered() []model.Item { return s.filtered }

// VisibleCount returns how many filtered items are revealed.
func (s *State) VisibleCount() int {
	return min(s.visible, len(s.filtered))
}

// Visible returns the revealed prefix of the filtered list.
func (s *State) Visible() []model.Item {
	return s.filtered[:s.VisibleCount()]
}

// HasMore reports whether LoadMore would reveal additional items.
func (s *State) HasMore() bool {
	return s.visible < len(s.filtered)
}

// LoadMore reveals the next page. The pagination cursor never decreases
// and the visible count never exceeds the filtered length.
func (s *State) LoadMore() {
	if !s.HasMore() {
		return
	}
	s.visible = min(s.visible+s.pageSize, len(s.filtered))
}

// CycleLayout advances to the next layout mode.
func (s *State) CycleLayout() model.Layout {
	s.layout = s.layout.Next()
	return s.layout
}

// Open shows the filtered item at index i fullscreen. Out-of-range
// indexes are ignored and false is returned.
func (s *State) Open(i int) bool {
	if i < 0 || i >= len(s.filtered) {
		return false
	}
	s.fullscreen = &i
	return true
}

// Close leaves fullscreen.
func (s *State) Close() { s.fullscreen = nil }

// IsFullscreen reports whether an item is shown fullscreen.
func (s *State) IsFullscreen() bool { return s.fullscreen != nil }

// FullscreenIndex returns the fullscreen index and whether it is set.
func (s *State) FullscreenIndex() (int, bool) {
	if s.fullscreen == nil {
		return 0, false
	}
	return *s.fullscreen, true
}

// Current returns the fullscreen item, or nil when closed.
func (s *State) Current() *model.Item {
	if s.fullscreen == nil {
		return nil
	}
	return &s.filtered[*s.fullscreen]
}

// Next moves fullscreen to the following item. It stops at the last item.
func (s *State) Next() bool {
	if s.fullscreen == nil || *s.fullscreen >= len(s.filtered)-1 {
		return false
	}
	i := *s.fullscreen + 1
	s.fullscreen = &i
	return true
}

// Prev moves fullscreen to the preceding item. It stops at the first item.
func (s *State) Prev() bool {
	if s.fullscreen == nil || *s.fullscreen <= 0 {
		return false
	}
	i := *s.fullscreen - 1
	s.fullscreen = &i
	return true
}

// Swipe applies a classified drag gesture to fullscreen navigation.
func (s *State) Swipe(dir SwipeDirection) bool {
	switch dir {
	case SwipeNext:
		return s.Next()
	case SwipePrev:
		return s.Prev()
	default:
		return false
	}
}
