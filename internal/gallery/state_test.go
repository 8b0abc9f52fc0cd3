package gallery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nikbrunner/gallery/internal/model"
	"gotest.tools/v3/assert"
)

func makeItems(n int) []model.Item {
	items := make([]model.Item, n)
	for i := range items {
		items[i] = model.Item{
			ID:       model.ItemID(fmt.Sprintf("id-%d", i)),
			Title:    fmt.Sprintf("Item %d", i),
			ImageURL: fmt.Sprintf("https://cdn.example.com/%d.png", i),
		}
	}
	return items
}

// loadedState returns a State for the comic category holding n items.
func loadedState(t *testing.T, n, pageSize int) State {
	t.Helper()
	s := New(Params{Category: model.CategoryComic, PageSize: pageSize})
	gen := s.SetCategory(model.CategoryComic)
	assert.Assert(t, s.Loaded(gen, makeItems(n)))
	return s
}

func TestNew_Defaults(t *testing.T) {
	s := New(Params{})

	assert.Equal(t, s.PageSize(), DefaultPageSize)
	assert.Equal(t, s.Category(), model.CategoryComic)
	assert.Equal(t, s.Layout(), model.LayoutCompact)
	assert.Assert(t, !s.IsFullscreen())
	assert.Equal(t, s.VisibleCount(), 0)
}

func TestSetCategory_ResetsPaginationAndFullscreen(t *testing.T) {
	s := loadedState(t, 30, 5)
	s.LoadMore()
	s.LoadMore()
	assert.Equal(t, s.VisibleCount(), 15)
	assert.Assert(t, s.Open(7))

	gen := s.SetCategory(model.CategoryArt)

	assert.Equal(t, s.Category(), model.CategoryArt)
	assert.Assert(t, s.Loading())
	assert.Assert(t, !s.IsFullscreen())
	assert.Equal(t, len(s.Items()), 0)

	assert.Assert(t, s.Loaded(gen, makeItems(30)))
	assert.Equal(t, s.VisibleCount(), 5)
	assert.Assert(t, !s.Loading())
}

func TestSetCategory_SameCategoryStillResets(t *testing.T) {
	s := loadedState(t, 10, 3)
	s.LoadMore()
	s.Open(2)

	s.Reload()

	assert.Assert(t, !s.IsFullscreen())
	assert.Assert(t, s.Loading())
}

func TestLoaded_IgnoresStaleGeneration(t *testing.T) {
	s := New(Params{PageSize: 4})
	stale := s.SetCategory(model.CategoryComic)
	current := s.SetCategory(model.CategoryNFT)

	assert.Assert(t, !s.Loaded(stale, makeItems(3)))
	assert.Assert(t, s.Loading())
	assert.Equal(t, len(s.Items()), 0)

	assert.Assert(t, !s.Failed(stale, errors.New("boom")))
	assert.NilError(t, s.Err())

	assert.Assert(t, s.Loaded(current, makeItems(2)))
	assert.Equal(t, len(s.Items()), 2)
}

func TestFailed_RecordsError(t *testing.T) {
	s := New(Params{})
	gen := s.SetCategory(model.CategoryToken)
	loadErr := errors.New("load failed")

	assert.Assert(t, s.Failed(gen, loadErr))

	assert.Assert(t, !s.Loading())
	assert.Equal(t, s.Err(), loadErr)
	assert.Equal(t, len(s.Filtered()), 0)

	// next switch clears the error
	s.SetCategory(model.CategoryArt)
	assert.NilError(t, s.Err())
}

func TestSetQuery_FiltersAndResets(t *testing.T) {
	s := New(Params{PageSize: 2})
	gen := s.SetCategory(model.CategoryArt)
	s.Loaded(gen, []model.Item{
		{ID: "a", Title: "Blue Hour"},
		{ID: "b", Title: "Red Dawn", Description: "blue tint"},
		{ID: "c", Title: "Green"},
		{ID: "d", Title: "BLUEPRINT"},
	})
	s.LoadMore()
	assert.Equal(t, s.VisibleCount(), 4)
	s.Open(3)

	s.SetQuery("blue")

	assert.Equal(t, len(s.Filtered()), 3)
	assert.Equal(t, s.VisibleCount(), 2)
	assert.Assert(t, !s.IsFullscreen())
}

func TestSetQuery_UnchangedKeepsState(t *testing.T) {
	s := loadedState(t, 10, 3)
	s.SetQuery("item")
	s.LoadMore()
	s.Open(4)

	s.SetQuery("item")

	assert.Equal(t, s.VisibleCount(), 6)
	idx, ok := s.FullscreenIndex()
	assert.Assert(t, ok)
	assert.Equal(t, idx, 4)
}

func TestLoadMore_NeverDecreasesNorExceeds(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		presses  int
		want     int
	}{
		{"fewer items than a page", 3, 5, 2, 3},
		{"exact pages", 10, 5, 1, 10},
		{"partial last page", 12, 5, 2, 12},
		{"many presses", 12, 5, 10, 12},
		{"empty list", 0, 5, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedState(t, tt.total, tt.pageSize)
			prev := s.VisibleCount()
			for i := 0; i < tt.presses; i++ {
				s.LoadMore()
				got := s.VisibleCount()
				assert.Assert(t, got >= prev, "visible count decreased: %d -> %d", prev, got)
				assert.Assert(t, got <= len(s.Filtered()))
				prev = got
			}
			assert.Equal(t, s.VisibleCount(), tt.want)
			assert.Equal(t, s.HasMore(), false)
		})
	}
}

func TestLoadMore_WithFilterShrinkingList(t *testing.T) {
	s := loadedState(t, 25, 10)
	s.SetQuery("Item 1") // Item 1, Item 10..19
	assert.Equal(t, len(s.Filtered()), 11)
	assert.Equal(t, s.VisibleCount(), 10)
	assert.Assert(t, s.HasMore())

	s.LoadMore()

	assert.Equal(t, s.VisibleCount(), 11)
	assert.Equal(t, len(s.Visible()), 11)
}

func TestOpen_RejectsOutOfRange(t *testing.T) {
	s := loadedState(t, 3, 10)

	assert.Assert(t, !s.Open(-1))
	assert.Assert(t, !s.Open(3))
	assert.Assert(t, !s.IsFullscreen())
	assert.Assert(t, s.Current() == nil)

	assert.Assert(t, s.Open(2))
	assert.Equal(t, s.Current().ID, model.ItemID("id-2"))
}

func TestFullscreenNavigation_Clamps(t *testing.T) {
	s := loadedState(t, 3, 10)
	s.Open(0)

	assert.Assert(t, !s.Prev(), "prev at first item should not move")
	idx, _ := s.FullscreenIndex()
	assert.Equal(t, idx, 0)

	assert.Assert(t, s.Next())
	assert.Assert(t, s.Next())
	assert.Assert(t, !s.Next(), "next at last item should not wrap")
	idx, _ = s.FullscreenIndex()
	assert.Equal(t, idx, 2)

	assert.Assert(t, s.Prev())
	idx, _ = s.FullscreenIndex()
	assert.Equal(t, idx, 1)

	s.Close()
	assert.Assert(t, !s.Next())
	assert.Assert(t, !s.Prev())
}

func TestFullscreenNavigation_StaysInFilteredRange(t *testing.T) {
	s := loadedState(t, 20, 5)
	s.SetQuery("Item 1")
	n := len(s.Filtered())
	s.Open(0)

	for i := 0; i < 3*n; i++ {
		s.Next()
		idx, ok := s.FullscreenIndex()
		assert.Assert(t, ok)
		assert.Assert(t, idx >= 0 && idx < n)
	}
	assert.Equal(t, s.Current().Title, s.Filtered()[n-1].Title)
}

func TestSwipe_AppliesDirection(t *testing.T) {
	s := loadedState(t, 3, 10)
	s.Open(1)

	assert.Assert(t, s.Swipe(SwipeNext))
	idx, _ := s.FullscreenIndex()
	assert.Equal(t, idx, 2)

	assert.Assert(t, !s.Swipe(SwipeNone))
	assert.Assert(t, s.Swipe(SwipePrev))
	idx, _ = s.FullscreenIndex()
	assert.Equal(t, idx, 1)
}

func TestCycleLayout(t *testing.T) {
	s := New(Params{Layout: model.LayoutGrid})

	assert.Equal(t, s.CycleLayout(), model.LayoutSingle)
	assert.Equal(t, s.CycleLayout(), model.LayoutCompact)
	assert.Equal(t, s.Layout(), model.LayoutCompact)
}
