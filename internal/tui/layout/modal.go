package layout

// FuzzyLayout holds calculated fuzzy finder dimensions.
type FuzzyLayout struct {
	ListWidth    int
	PreviewWidth int
	ListHeight   int
}

// CalculateFuzzyLayout computes the fuzzy finder pane dimensions.
func CalculateFuzzyLayout(terminalWidth, terminalHeight int, cfg FuzzyConfig) FuzzyLayout {
	listWidth := terminalWidth * cfg.ListWidthPercent / 100
	previewWidth := terminalWidth * cfg.PreviewWidthPercent / 100
	listHeight := terminalHeight - cfg.HeaderReduction

	if listHeight < 1 {
		listHeight = 1
	}

	return FuzzyLayout{
		ListWidth:    listWidth,
		PreviewWidth: previewWidth,
		ListHeight:   listHeight,
	}
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}

// CalculateLightboxWidth computes the text column width of the fullscreen view.
func CalculateLightboxWidth(terminalWidth int, cfg LightboxConfig) int {
	width := terminalWidth - 4
	if cfg.MaxWidth > 0 && width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	if width < 10 {
		width = 10
	}
	return width
}
