package tui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/gallery/internal/gallery"
	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/search"
	"github.com/nikbrunner/gallery/internal/source"
	"github.com/nikbrunner/gallery/internal/tui/layout"
)

// itemsLoadedMsg carries a successful fetch result.
type itemsLoadedMsg struct {
	gen      uint64
	category model.Category
	items    []model.Item
}

// itemsFailedMsg carries a failed fetch.
type itemsFailedMsg struct {
	gen      uint64
	category model.Category
	err      error
}

// App is the main bubbletea model for the gallery viewer.
type App struct {
	fetcher      source.Fetcher
	logger       *zap.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	gallery gallery.State
	mode    Mode
	cursor  int // index into the visible items

	filter  FilterState
	find    FindState
	spinner spinner.Model

	drag           gallery.Drag
	swipeThreshold int

	// cancelFetch aborts the outstanding fetch when a newer one starts.
	cancelFetch context.CancelFunc
	initCmd     tea.Cmd

	copyToClipboard func(string) error
	openURL         func(string) error

	// Status message shown above the help bar until the next key press
	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Fetcher        source.Fetcher
	Category       model.Category
	Layout         model.Layout
	PageSize       int                  // optional, gallery.DefaultPageSize if <= 0
	SwipeThreshold int                  // optional, gallery.DefaultSwipeThreshold if <= 0
	Logger         *zap.Logger          // optional, no-op if nil
	Keys           *KeyMap              // optional, uses default if nil
	Styles         *Styles              // optional, uses default if nil
	LayoutConfig   *layout.LayoutConfig // optional, uses default if nil

	CopyToClipboard func(string) error // optional, system clipboard if nil
	OpenURL         func(string) error // optional, system browser if nil
}

// NewApp creates a new App with the given parameters. The first fetch of
// params.Category starts when the program calls Init.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	threshold := params.SwipeThreshold
	if threshold <= 0 {
		threshold = gallery.DefaultSwipeThreshold
	}

	copyFn := params.CopyToClipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	openFn := params.OpenURL
	if openFn == nil {
		openFn = OpenURL
	}

	category := params.Category
	if !category.Valid() {
		category = model.CategoryComic
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.Title

	app := App{
		fetcher:      params.Fetcher,
		logger:       logger,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		gallery: gallery.New(gallery.Params{
			Category: category,
			Layout:   params.Layout,
			PageSize: params.PageSize,
		}),
		mode:            ModeNormal,
		filter:          NewFilterState(layoutCfg),
		find:            NewFindState(layoutCfg),
		spinner:         s,
		swipeThreshold:  threshold,
		copyToClipboard: copyFn,
		openURL:         openFn,
		width:           80,
		height:          24,
	}

	app.initCmd = app.fetch(category)
	return app
}

// WithDimensions returns a copy of the app with the given window size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the grid cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Gallery returns a snapshot of the gallery view state.
func (a App) Gallery() *gallery.State {
	g := a.gallery
	return &g
}

// Message returns the current status message and its type.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.initCmd
}

// fetch switches to category and returns the command loading it.
func (a *App) fetch(category model.Category) tea.Cmd {
	return a.load(a.gallery.SetCategory(category))
}

// reload refetches the active category, keeping the search text.
func (a *App) reload() tea.Cmd {
	return a.load(a.gallery.Reload())
}

// load resets the view for fetch generation gen and returns the command
// loading the active category. Any outstanding fetch is cancelled; its
// late result is dropped by generation.
func (a *App) load(gen uint64) tea.Cmd {
	if a.cancelFetch != nil {
		a.cancelFetch()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelFetch = cancel

	category := a.gallery.Category()
	a.cursor = 0
	if a.mode == ModeFullscreen {
		a.mode = ModeNormal
	}
	a.drag.Cancel()

	fetcher := a.fetcher
	fetchItems := func() tea.Msg {
		if fetcher == nil {
			return itemsFailedMsg{gen: gen, category: category, err: source.ErrLoad}
		}
		items, err := fetcher.Fetch(ctx, category)
		if err != nil {
			return itemsFailedMsg{gen: gen, category: category, err: err}
		}
		return itemsLoadedMsg{gen: gen, category: category, items: items}
	}

	return tea.Batch(a.spinner.Tick, fetchItems)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case itemsLoadedMsg:
		if !a.gallery.Loaded(msg.gen, msg.items) {
			a.logger.Debug("dropping stale fetch result",
				zap.Stringer("category", msg.category),
				zap.Uint64("generation", msg.gen),
			)
			return a, nil
		}
		a.cursor = 0
		return a, nil

	case itemsFailedMsg:
		if !a.gallery.Failed(msg.gen, msg.err) {
			return a, nil
		}
		a.cursor = 0
		if a.mode == ModeFullscreen {
			a.mode = ModeNormal
		}
		if !errors.Is(msg.err, context.Canceled) {
			a.logger.Error("load items",
				zap.Stringer("category", msg.category),
				zap.Error(msg.err),
			)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.gallery.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		a.clearMessage()
		switch a.mode {
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeFind:
			return a.updateFind(msg)
		case ModeFullscreen:
			return a.updateFullscreen(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

// updateNormal handles keys while browsing the grid.
func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			// This is the second g - go to top
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		// First g - wait for second
		a.lastKeyWasG = true
		return a, nil
	}

	// Reset g flag for any other key
	a.lastKeyWasG = false

	if cmd, ok := a.handleCategoryKey(msg); ok {
		return a, cmd
	}

	count := a.gallery.VisibleCount()
	columns := layout.CalculateColumns(a.width, a.gallery.Layout(), a.layoutConfig.Grid)

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Close):
		if a.gallery.Query() != "" {
			a.setQuery("")
			a.filter.Reset()
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor+columns < count {
			a.cursor += columns
		} else if a.cursor/columns < (count-1)/columns {
			// Partial last row: land on its last card
			a.cursor = count - 1
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor-columns >= 0 {
			a.cursor -= columns
		}

	case key.Matches(msg, a.keys.Right):
		if a.cursor < count-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Left):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if count > 0 {
			a.cursor = count - 1
		}

	case key.Matches(msg, a.keys.Open):
		if a.gallery.Open(a.cursor) {
			a.mode = ModeFullscreen
			a.drag.Cancel()
		}

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filter.Input.SetValue(a.gallery.Query())
		a.filter.Input.CursorEnd()
		return a, a.filter.Input.Focus()

	case key.Matches(msg, a.keys.Layout):
		l := a.gallery.CycleLayout()
		a.setMessage(MessageInfo, "Layout: "+l.String())

	case key.Matches(msg, a.keys.LoadMore):
		if !a.gallery.HasMore() {
			a.setMessage(MessageInfo, "All items shown")
			return a, nil
		}
		a.gallery.LoadMore()

	case key.Matches(msg, a.keys.Search):
		if len(a.gallery.Filtered()) == 0 {
			return a, nil
		}
		a.mode = ModeFind
		a.find.Reset()
		a.find.Matches = findMatches(a.gallery.Filtered(), "")
		return a, a.find.Input.Focus()

	case key.Matches(msg, a.keys.YankURL):
		if item := a.selectedItem(); item != nil {
			a.yankURL(*item)
		}

	case key.Matches(msg, a.keys.OpenURL):
		if item := a.selectedItem(); item != nil {
			a.open(*item)
		}

	case key.Matches(msg, a.keys.Reload):
		return a, a.reload()
	}

	return a, nil
}

// handleCategoryKey switches category for tab, shift+tab and 1-4.
func (a *App) handleCategoryKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	current := a.gallery.Category()
	switch {
	case key.Matches(msg, a.keys.NextCategory):
		return a.fetch(current.Next()), true
	case key.Matches(msg, a.keys.PrevCategory):
		return a.fetch(current.Prev()), true
	case key.Matches(msg, a.keys.Category) && len(msg.Runes) == 1:
		idx := int(msg.Runes[0] - '1')
		if idx < 0 || idx >= len(model.Categories) {
			return nil, false
		}
		return a.fetch(model.Categories[idx]), true
	}
	return nil, false
}

// updateFilter handles keys while editing the search text.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.filter.Input.Blur()
		a.filter.Reset()
		a.setQuery("")
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.filter.Input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	a.setQuery(a.filter.Input.Value())
	return a, cmd
}

// setQuery applies the search text and resets the grid cursor if the
// filtered list changed.
func (a *App) setQuery(q string) {
	if q == a.gallery.Query() {
		return
	}
	a.gallery.SetQuery(q)
	a.cursor = 0
}

// updateFullscreen handles keys in the lightbox.
func (a App) updateFullscreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.handleCategoryKey(msg); ok {
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Close):
		a.closeFullscreen()

	case key.Matches(msg, a.keys.Left):
		a.gallery.Prev()

	case key.Matches(msg, a.keys.Right):
		a.gallery.Next()

	case key.Matches(msg, a.keys.YankURL):
		if item := a.gallery.Current(); item != nil {
			a.yankURL(*item)
		}

	case key.Matches(msg, a.keys.OpenURL):
		if item := a.gallery.Current(); item != nil {
			a.open(*item)
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// closeFullscreen leaves the lightbox and moves the grid cursor to the
// item that was shown, revealing more pages if needed.
func (a *App) closeFullscreen() {
	idx, ok := a.gallery.FullscreenIndex()
	a.gallery.Close()
	a.mode = ModeNormal
	a.drag.Cancel()
	if !ok {
		return
	}
	for idx >= a.gallery.VisibleCount() && a.gallery.HasMore() {
		a.gallery.LoadMore()
	}
	a.cursor = idx
}

// handleMouse turns a left-button press and release in the lightbox into
// a swipe.
func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.mode != ModeFullscreen {
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			a.drag.Start(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		dir := a.drag.End(msg.X, msg.Y, a.swipeThreshold)
		if dir != gallery.SwipeNone {
			a.logger.Debug("swipe", zap.Stringer("direction", dir))
			a.gallery.Swipe(dir)
		}
	}

	return a, nil
}

// updateFind handles keys in the fuzzy finder.
func (a App) updateFind(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.find.Input.Blur()
		a.find.Reset()
		return a, nil

	case tea.KeyEnter:
		selected := a.find.Selected()
		a.find.Input.Blur()
		a.mode = ModeNormal
		if selected == nil {
			a.find.Reset()
			return a, nil
		}
		idx := selected.Index
		a.find.Reset()
		for idx >= a.gallery.VisibleCount() && a.gallery.HasMore() {
			a.gallery.LoadMore()
		}
		a.cursor = idx
		if a.gallery.Open(idx) {
			a.mode = ModeFullscreen
		}
		return a, nil

	case tea.KeyUp, tea.KeyCtrlK, tea.KeyCtrlP:
		if a.find.Cursor > 0 {
			a.find.Cursor--
		}
		return a, nil

	case tea.KeyDown, tea.KeyCtrlJ, tea.KeyCtrlN:
		if a.find.Cursor < len(a.find.Matches)-1 {
			a.find.Cursor++
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.find.Input, cmd = a.find.Input.Update(msg)
	a.find.Matches = findMatches(a.gallery.Filtered(), a.find.Input.Value())
	a.find.Cursor = 0
	return a, cmd
}

// findMatches ranks items for the finder. An empty query lists all items
// in order.
func findMatches(items []model.Item, query string) []search.SearchResult {
	if query == "" {
		matches := make([]search.SearchResult, len(items))
		for i, item := range items {
			matches[i] = search.SearchResult{Item: item, Index: i}
		}
		return matches
	}
	return search.FuzzySearch(items, query)
}

// updateHelp handles keys while the help overlay is shown.
func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Quit) || key.Matches(msg, a.keys.Close) {
		if a.gallery.IsFullscreen() {
			a.mode = ModeFullscreen
		} else {
			a.mode = ModeNormal
		}
	}
	return a, nil
}

// selectedItem returns the item under the grid cursor, or nil.
func (a *App) selectedItem() *model.Item {
	visible := a.gallery.Visible()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return nil
	}
	return &visible[a.cursor]
}

// yankURL copies the image URL of item to the clipboard.
func (a *App) yankURL(item model.Item) {
	if item.ImageURL == "" {
		a.setMessage(MessageWarning, "Item has no image URL")
		return
	}
	if err := a.copyToClipboard(item.ImageURL); err != nil {
		a.logger.Warn("copy to clipboard", zap.Error(err))
		a.setMessage(MessageError, "Could not copy to clipboard")
		return
	}
	a.setMessage(MessageSuccess, "Copied image URL")
}

// open opens the image URL of item in the browser.
func (a *App) open(item model.Item) {
	if item.ImageURL == "" {
		a.setMessage(MessageWarning, "Item has no image URL")
		return
	}
	if err := a.openURL(item.ImageURL); err != nil {
		a.logger.Warn("open url", zap.String("url", item.ImageURL), zap.Error(err))
		a.setMessage(MessageError, "Could not open browser")
		return
	}
	a.setMessage(MessageInfo, "Opened in browser")
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
