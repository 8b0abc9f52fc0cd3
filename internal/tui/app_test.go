package tui_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/source"
	"github.com/nikbrunner/gallery/internal/tui"
)

// fakeFetcher serves items from memory. Commands run synchronously in
// these tests, so no locking is needed.
type fakeFetcher struct {
	items     map[model.Category][]model.Item
	err       error
	calls     []model.Category
	cancelled map[model.Category]bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, c model.Category) ([]model.Item, error) {
	f.calls = append(f.calls, c)
	if ctx.Err() != nil {
		if f.cancelled == nil {
			f.cancelled = make(map[model.Category]bool)
		}
		f.cancelled[c] = true
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.items[c], nil
}

func makeItems(prefix string, n int) []model.Item {
	items := make([]model.Item, n)
	for i := range items {
		items[i] = model.Item{
			ID:       model.ItemID(fmt.Sprintf("%s-%d", prefix, i)),
			Title:    fmt.Sprintf("%s %02d", prefix, i),
			ImageURL: fmt.Sprintf("https://cdn.example.com/%s/%d.png", prefix, i),
		}
	}
	return items
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func sendKey(app tui.App, k string) (tui.App, tea.Cmd) {
	updated, cmd := app.Update(keyMsg(k))
	return updated.(tui.App), cmd
}

func pressKeys(app tui.App, keys ...string) tui.App {
	for _, k := range keys {
		app, _ = sendKey(app, k)
	}
	return app
}

// runCmd executes a fetch command and feeds the resulting messages back
// into the app. Commands returned by Update (spinner ticks) are dropped.
func runCmd(app tui.App, cmd tea.Cmd) tui.App {
	if cmd == nil {
		return app
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			app = runCmd(app, c)
		}
		return app
	}
	updated, _ := app.Update(msg)
	return updated.(tui.App)
}

func newLoadedApp(t *testing.T, params tui.AppParams) tui.App {
	t.Helper()
	app := tui.NewApp(params)
	app = runCmd(app, app.Init())
	if app.Gallery().Loading() {
		t.Fatal("expected initial fetch to complete")
	}
	return app
}

func TestApp_InitLoadsCategory(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryArt: makeItems("Art", 3),
	}}

	app := tui.NewApp(tui.AppParams{Fetcher: fetcher, Category: model.CategoryArt})
	if !app.Gallery().Loading() {
		t.Error("expected loading before Init runs")
	}

	app = runCmd(app, app.Init())

	g := app.Gallery()
	if g.Loading() {
		t.Error("expected loading to finish")
	}
	if g.Category() != model.CategoryArt {
		t.Errorf("expected category art, got %s", g.Category())
	}
	if len(g.Items()) != 3 {
		t.Errorf("expected 3 items, got %d", len(g.Items()))
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != model.CategoryArt {
		t.Errorf("expected one fetch of art, got %v", fetcher.calls)
	}
}

func TestApp_GridNavigation(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 5),
	}}
	// 80 columns in grid layout fit 2 cards per row
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher, Layout: model.LayoutGrid})

	tests := []struct {
		key  string
		want int
	}{
		{"l", 1},
		{"j", 3},
		{"j", 4}, // partial last row
		{"j", 4}, // bottom stays
		{"k", 2},
		{"h", 1},
		{"h", 0},
		{"h", 0}, // no wrap
		{"G", 4},
		{"g", 4}, // first g waits
		{"g", 0},
	}

	for i, tt := range tests {
		app = pressKeys(app, tt.key)
		if app.Cursor() != tt.want {
			t.Fatalf("step %d (%s): expected cursor %d, got %d", i, tt.key, tt.want, app.Cursor())
		}
	}
}

func TestApp_SwitchCategoryResetsPaginationAndFullscreen(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 30),
		model.CategoryArt:   makeItems("Art", 30),
	}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher, PageSize: 10})

	app = pressKeys(app, "m", "l", "enter")
	if app.Mode() != tui.ModeFullscreen {
		t.Fatalf("expected fullscreen mode, got %v", app.Mode())
	}
	if got := app.Gallery().VisibleCount(); got != 20 {
		t.Fatalf("expected 20 visible after load more, got %d", got)
	}

	app, cmd := sendKey(app, "tab")
	if app.Mode() != tui.ModeNormal {
		t.Errorf("category switch should leave fullscreen, got mode %v", app.Mode())
	}
	if app.Gallery().IsFullscreen() {
		t.Error("category switch should close fullscreen")
	}
	if !app.Gallery().Loading() {
		t.Error("expected loading after category switch")
	}
	if app.Cursor() != 0 {
		t.Errorf("expected cursor reset, got %d", app.Cursor())
	}

	app = runCmd(app, cmd)
	g := app.Gallery()
	if g.Category() != model.CategoryArt {
		t.Errorf("expected art, got %s", g.Category())
	}
	if g.VisibleCount() != 10 {
		t.Errorf("expected pagination reset to 10, got %d", g.VisibleCount())
	}
}

func TestApp_CategoryKeys(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher})

	tests := []struct {
		key  string
		want model.Category
	}{
		{"3", model.CategoryNFT},
		{"tab", model.CategoryToken},
		{"tab", model.CategoryComic}, // wraps
		{"shift+tab", model.CategoryToken},
		{"2", model.CategoryArt},
	}

	for _, tt := range tests {
		var cmd tea.Cmd
		app, cmd = sendKey(app, tt.key)
		app = runCmd(app, cmd)
		if got := app.Gallery().Category(); got != tt.want {
			t.Errorf("after %s: expected %s, got %s", tt.key, tt.want, got)
		}
	}
}

func TestApp_StaleFetchResultIgnored(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 4),
		model.CategoryArt:   makeItems("Art", 2),
	}}

	app := tui.NewApp(tui.AppParams{Fetcher: fetcher})
	comicCmd := app.Init()

	app, artCmd := sendKey(app, "tab")
	app = runCmd(app, artCmd)

	// The superseded comic fetch completes late
	app = runCmd(app, comicCmd)

	g := app.Gallery()
	if g.Category() != model.CategoryArt {
		t.Errorf("expected art, got %s", g.Category())
	}
	if len(g.Items()) != 2 || g.Items()[0].Title != "Art 00" {
		t.Errorf("stale comic result replaced art items: %v", g.Items())
	}
	if !fetcher.cancelled[model.CategoryComic] {
		t.Error("expected the superseded fetch context to be cancelled")
	}
}

func TestApp_FetchFailure(t *testing.T) {
	cause := errors.New("connection refused")
	fetcher := &fakeFetcher{err: fmt.Errorf("%w: %w", source.ErrLoad, cause)}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher})

	g := app.Gallery()
	if !errors.Is(g.Err(), source.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", g.Err())
	}
	if len(g.Items()) != 0 {
		t.Errorf("expected no items, got %d", len(g.Items()))
	}

	// Retry succeeds once the source recovers
	fetcher.err = nil
	fetcher.items = map[model.Category][]model.Item{model.CategoryComic: makeItems("Comic", 1)}
	app, cmd := sendKey(app, "r")
	app = runCmd(app, cmd)

	if app.Gallery().Err() != nil {
		t.Errorf("expected error cleared after reload, got %v", app.Gallery().Err())
	}
	if len(app.Gallery().Items()) != 1 {
		t.Errorf("expected 1 item after reload, got %d", len(app.Gallery().Items()))
	}
}

func TestApp_ReloadKeepsSearch(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{model.CategoryComic: makeItems("Comic", 5)}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher})

	app = pressKeys(app, "/", "0", "3", "enter")
	fetcher.items[model.CategoryComic] = makeItems("Comic", 8)

	app, cmd := sendKey(app, "r")
	if !app.Gallery().Loading() {
		t.Error("expected reload to start a fetch")
	}
	app = runCmd(app, cmd)

	g := app.Gallery()
	if g.Query() != "03" {
		t.Errorf("expected query kept across reload, got %q", g.Query())
	}
	if len(g.Items()) != 8 || len(g.Filtered()) != 1 {
		t.Errorf("expected 8 items with 1 match, got %d and %d", len(g.Items()), len(g.Filtered()))
	}
	if len(fetcher.calls) != 2 || fetcher.calls[1] != model.CategoryComic {
		t.Errorf("expected a second comic fetch, got %v", fetcher.calls)
	}
}

func TestApp_LiveSearch(t *testing.T) {
	items := []model.Item{
		{ID: "1", Title: "Batman", ImageURL: "https://cdn/1.png"},
		{ID: "2", Title: "Superman", Description: "Man of steel", ImageURL: "https://cdn/2.png"},
		{ID: "3", Title: "Wonder Woman", Description: "Amazon from Themyscira", ImageURL: "https://cdn/3.png"},
	}
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{model.CategoryComic: items}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher})

	app = pressKeys(app, "l", "/")
	if app.Mode() != tui.ModeFilter {
		t.Fatalf("expected filter mode, got %v", app.Mode())
	}

	app = pressKeys(app, "M", "A", "N")
	g := app.Gallery()
	if g.Query() != "MAN" {
		t.Errorf("expected query MAN, got %q", g.Query())
	}
	if len(g.Filtered()) != 3 {
		t.Errorf("expected 3 case-insensitive matches, got %d", len(g.Filtered()))
	}
	if app.Cursor() != 0 {
		t.Errorf("expected cursor reset on query change, got %d", app.Cursor())
	}

	app = pressKeys(app, "backspace")
	app = pressKeys(app, "enter")
	if app.Mode() != tui.ModeNormal {
		t.Errorf("enter should leave filter mode, got %v", app.Mode())
	}

	// Reopening the input keeps the query and appends to it
	app = pressKeys(app, "/", "s", "t", "e", "e", "l")
	if got := len(app.Gallery().Filtered()); got != 0 {
		t.Errorf("expected no matches for %q, got %d", app.Gallery().Query(), got)
	}

	app = pressKeys(app, "esc")
	if app.Gallery().Query() != "" {
		t.Errorf("esc should clear the search, got %q", app.Gallery().Query())
	}
	if len(app.Gallery().Filtered()) != 3 {
		t.Errorf("expected all items after clearing, got %d", len(app.Gallery().Filtered()))
	}
}

func TestApp_LoadMore(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 25),
	}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher, PageSize: 10})

	want := []int{20, 25, 25}
	for i, w := range want {
		app = pressKeys(app, "m")
		if got := app.Gallery().VisibleCount(); got != w {
			t.Errorf("load more #%d: expected %d visible, got %d", i+1, w, got)
		}
	}

	text, msgType := app.Message()
	if text != "All items shown" || msgType != tui.MessageInfo {
		t.Errorf("expected info message, got %q (%v)", text, msgType)
	}
}

func TestApp_FullscreenNavigationClamped(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 3),
	}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher})

	app = pressKeys(app, "enter")
	if app.Mode() != tui.ModeFullscreen {
		t.Fatalf("expected fullscreen, got %v", app.Mode())
	}

	tests := []struct {
		key  string
		want int
	}{
		{"left", 0},
		{"h", 0},
		{"l", 1},
		{"right", 2},
		{"l", 2},
		{"h", 1},
	}
	for _, tt := range tests {
		app = pressKeys(app, tt.key)
		idx, ok := app.Gallery().FullscreenIndex()
		if !ok || idx != tt.want {
			t.Errorf("after %s: expected index %d, got %d (open=%v)", tt.key, tt.want, idx, ok)
		}
	}

	app = pressKeys(app, "esc")
	if app.Mode() != tui.ModeNormal || app.Gallery().IsFullscreen() {
		t.Error("esc should close fullscreen")
	}
	if app.Cursor() != 1 {
		t.Errorf("expected grid cursor on last shown item, got %d", app.Cursor())
	}
}

func TestApp_FullscreenCloseRevealsPage(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 5),
	}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher, PageSize: 2})

	app = pressKeys(app, "l", "enter", "l", "l", "esc")
	if app.Cursor() != 3 {
		t.Errorf("expected cursor 3, got %d", app.Cursor())
	}
	if got := app.Gallery().VisibleCount(); got != 4 {
		t.Errorf("expected the page holding item 3 revealed (4 visible), got %d", got)
	}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	button := tea.MouseButtonLeft
	if action == tea.MouseActionRelease {
		button = tea.MouseButtonNone
	}
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func drag(app tui.App, x0, y0, x1, y1 int) tui.App {
	updated, _ := app.Update(mouse(tea.MouseActionPress, x0, y0))
	updated, _ = updated.(tui.App).Update(mouse(tea.MouseActionRelease, x1, y1))
	return updated.(tui.App)
}

func TestApp_Swipe(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 3),
	}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher, SwipeThreshold: 5})
	app = pressKeys(app, "enter")

	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"swipe left goes next", 40, 10, 30, 11, 1},
		{"below threshold is ignored", 40, 10, 36, 10, 1},
		{"vertical drag is ignored", 40, 10, 32, 20, 1},
		{"swipe right goes previous", 30, 10, 40, 10, 0},
		{"swipe right at first stays", 30, 10, 40, 10, 0},
		{"next", 40, 10, 20, 10, 1},
		{"next", 40, 10, 20, 10, 2},
		{"next at last stays", 40, 10, 20, 10, 2},
	}

	for _, tt := range tests {
		app = drag(app, tt.x0, tt.y0, tt.x1, tt.y1)
		idx, _ := app.Gallery().FullscreenIndex()
		if idx != tt.want {
			t.Errorf("%s: expected index %d, got %d", tt.name, tt.want, idx)
		}
	}
}

func TestApp_SwipeIgnoredOutsideFullscreen(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 3),
	}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher})

	app = drag(app, 40, 10, 10, 10)
	if app.Gallery().IsFullscreen() || app.Cursor() != 0 {
		t.Error("drag in grid mode should do nothing")
	}
}

func TestApp_CycleLayout(t *testing.T) {
	fetcher := &fakeFetcher{}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher, Layout: model.LayoutGrid})

	want := []model.Layout{model.LayoutSingle, model.LayoutCompact, model.LayoutGrid}
	for _, w := range want {
		app = pressKeys(app, "v")
		if got := app.Gallery().Layout(); got != w {
			t.Errorf("expected layout %s, got %s", w, got)
		}
	}
}

func TestApp_YankURL(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 2),
	}}
	var copied string
	app := newLoadedApp(t, tui.AppParams{
		Fetcher: fetcher,
		CopyToClipboard: func(s string) error {
			copied = s
			return nil
		},
	})

	app = pressKeys(app, "l", "Y")
	if copied != "https://cdn.example.com/Comic/1.png" {
		t.Errorf("expected URL of second item copied, got %q", copied)
	}
	if text, msgType := app.Message(); msgType != tui.MessageSuccess {
		t.Errorf("expected success message, got %q (%v)", text, msgType)
	}

	// Message clears on next key
	app = pressKeys(app, "h")
	if text, _ := app.Message(); text != "" {
		t.Errorf("expected message cleared, got %q", text)
	}
}

func TestApp_YankURLFailure(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 1),
	}}
	app := newLoadedApp(t, tui.AppParams{
		Fetcher:         fetcher,
		CopyToClipboard: func(string) error { return errors.New("no clipboard") },
	})

	app = pressKeys(app, "enter", "Y")
	if _, msgType := app.Message(); msgType != tui.MessageError {
		t.Errorf("expected error message, got %v", msgType)
	}
}

func TestApp_OpenURLInFullscreen(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 2),
	}}
	var opened string
	app := newLoadedApp(t, tui.AppParams{
		Fetcher: fetcher,
		OpenURL: func(s string) error {
			opened = s
			return nil
		},
	})

	app = pressKeys(app, "enter", "l", "o")
	if opened != "https://cdn.example.com/Comic/1.png" {
		t.Errorf("expected second item opened, got %q", opened)
	}
}

func TestApp_FindJumpsToItem(t *testing.T) {
	items := []model.Item{
		{ID: "1", Title: "Alpha"},
		{ID: "2", Title: "Bravo"},
		{ID: "3", Title: "Charlie"},
		{ID: "4", Title: "Delta"},
		{ID: "5", Title: "Echo"},
	}
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{model.CategoryComic: items}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher, PageSize: 2})

	app = pressKeys(app, "s")
	if app.Mode() != tui.ModeFind {
		t.Fatalf("expected find mode, got %v", app.Mode())
	}

	app = pressKeys(app, "e", "c", "h", "o", "enter")
	if app.Mode() != tui.ModeFullscreen {
		t.Fatalf("expected fullscreen after selecting a match, got %v", app.Mode())
	}
	idx, _ := app.Gallery().FullscreenIndex()
	if idx != 4 {
		t.Errorf("expected Echo (index 4), got %d", idx)
	}
	if app.Cursor() != 4 {
		t.Errorf("expected cursor 4, got %d", app.Cursor())
	}
	if got := app.Gallery().VisibleCount(); got != 5 {
		t.Errorf("expected pages revealed up to the match, got %d visible", got)
	}
}

func TestApp_FindEscCancels(t *testing.T) {
	fetcher := &fakeFetcher{items: map[model.Category][]model.Item{
		model.CategoryComic: makeItems("Comic", 3),
	}}
	app := newLoadedApp(t, tui.AppParams{Fetcher: fetcher})

	app = pressKeys(app, "s", "x", "esc")
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode, got %v", app.Mode())
	}
	if app.Gallery().IsFullscreen() {
		t.Error("esc should not open an item")
	}
}

func TestApp_HelpToggle(t *testing.T) {
	app := newLoadedApp(t, tui.AppParams{Fetcher: &fakeFetcher{}})

	app = pressKeys(app, "?")
	if app.Mode() != tui.ModeHelp {
		t.Fatalf("expected help mode, got %v", app.Mode())
	}

	app = pressKeys(app, "q")
	if app.Mode() != tui.ModeNormal {
		t.Errorf("q should close help, got %v", app.Mode())
	}
}

func TestApp_Quit(t *testing.T) {
	app := newLoadedApp(t, tui.AppParams{Fetcher: &fakeFetcher{}})

	_, cmd := sendKey(app, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
