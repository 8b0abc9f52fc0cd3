package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move enter:open /:search"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	View   []Hint // View hints (layout, load more, etc.)
	Action []Hint // Action hints (Enter, Y, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + View + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.View)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.View...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeFilter:
		return a.getFilterModeHints()
	case ModeFullscreen:
		return a.getFullscreenHints()
	case ModeFind:
		return a.getFindModeHints()
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getGlobalHints returns hints that apply regardless of the grid cursor.
func (a App) getGlobalHints() []Hint {
	return []Hint{
		{Key: "tab", Desc: "category"},
		{Key: "1-4", Desc: "jump"},
		{Key: "r", Desc: "reload"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

// getNormalModeHints returns hints for ModeNormal (grid browse).
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "hjkl", Desc: "move"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "open"},
			{Key: "Y", Desc: "yank"},
			{Key: "s", Desc: "find"},
			{Key: "/", Desc: "search"},
		},
		View: []Hint{
			{Key: "v", Desc: a.gallery.Layout().Next().String()},
		},
	}
	if a.gallery.HasMore() {
		hints.View = append(hints.View, Hint{Key: "m", Desc: "more"})
	}
	if a.gallery.Query() != "" {
		hints.System = []Hint{{Key: "Esc", Desc: "clear search"}}
	}
	return hints
}

// getFilterModeHints returns hints for ModeFilter (search text input).
func (a App) getFilterModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "search"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "done"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "clear"},
		},
	}
}

// getFullscreenHints returns hints for ModeFullscreen (lightbox).
func (a App) getFullscreenHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "h/l", Desc: "prev/next"},
			{Key: "drag", Desc: "swipe"},
		},
		Action: []Hint{
			{Key: "Y", Desc: "yank"},
			{Key: "o", Desc: "open"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "close"},
		},
	}
}

// getFindModeHints returns hints for ModeFind (fuzzy finder).
func (a App) getFindModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "↑/↓", Desc: "move"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "open"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
}
