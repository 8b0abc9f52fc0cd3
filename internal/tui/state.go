package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/gallery/internal/search"
	"github.com/nikbrunner/gallery/internal/tui/layout"
)

// Mode represents the current input mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeFullscreen
	ModeFind
	ModeHelp
)

// MessageType determines the styling of the status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// FilterState holds the live search input of the grid.
type FilterState struct {
	Input textinput.Model
}

// NewFilterState creates a FilterState with an initialized input.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	input := textinput.New()
	input.Placeholder = "Search title or description..."
	input.CharLimit = cfg.Input.FilterCharLimit
	input.Width = cfg.Input.FilterWidth
	return FilterState{Input: input}
}

// Reset clears the search input.
func (f *FilterState) Reset() {
	f.Input.Reset()
}

// FindState holds state for the fuzzy "jump to item" finder.
type FindState struct {
	Input   textinput.Model       // Query input
	Matches []search.SearchResult // Current fuzzy match results
	Cursor  int                   // Selected index in Matches
}

// NewFindState creates a FindState with an initialized input.
func NewFindState(cfg layout.LayoutConfig) FindState {
	input := textinput.New()
	input.Placeholder = "Find..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return FindState{Input: input}
}

// Reset clears the finder for a new session.
func (f *FindState) Reset() {
	f.Input.Reset()
	f.Matches = nil
	f.Cursor = 0
}

// Selected returns the highlighted match, or nil when there is none.
func (f *FindState) Selected() *search.SearchResult {
	if f.Cursor < 0 || f.Cursor >= len(f.Matches) {
		return nil
	}
	return &f.Matches[f.Cursor]
}
