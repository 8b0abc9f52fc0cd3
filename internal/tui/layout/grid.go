package layout

import "github.com/nikbrunner/gallery/internal/model"

// GridLayout holds calculated grid dimensions.
type GridLayout struct {
	Columns     int
	CardWidth   int // outer width, borders included
	CardHeight  int // outer height, borders included
	Height      int // available grid height
	VisibleRows int
}

// CalculateGridHeight computes the content height for the grid.
// Returns at least MinHeight.
func CalculateGridHeight(terminalHeight int, cfg GridConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateColumns computes how many cards fit per row for a layout mode.
func CalculateColumns(terminalWidth int, mode model.Layout, cfg GridConfig) int {
	available := terminalWidth - cfg.WidthReduction

	var minCard int
	switch mode {
	case model.LayoutSingle:
		return 1
	case model.LayoutCompact:
		minCard = cfg.CompactCardWidth
	default:
		minCard = cfg.GridCardWidth
	}

	columns := available / minCard
	if columns < 1 {
		return 1
	}
	if cfg.MaxColumns > 0 && columns > cfg.MaxColumns {
		return cfg.MaxColumns
	}
	return columns
}

// CardHeight returns the outer card height for a layout mode.
func CardHeight(mode model.Layout, cfg GridConfig) int {
	switch mode {
	case model.LayoutCompact:
		return cfg.CompactCardHeight
	case model.LayoutSingle:
		return cfg.SingleCardHeight
	default:
		return cfg.GridCardHeight
	}
}

// CalculateGridLayout computes every grid dimension for the terminal size.
func CalculateGridLayout(terminalWidth, terminalHeight int, mode model.Layout, cfg GridConfig) GridLayout {
	columns := CalculateColumns(terminalWidth, mode, cfg)
	cardWidth := (terminalWidth - cfg.WidthReduction) / columns
	if cardWidth < cfg.CardPadding+1 {
		cardWidth = cfg.CardPadding + 1
	}

	height := CalculateGridHeight(terminalHeight, cfg)
	cardHeight := CardHeight(mode, cfg)

	rows := height / cardHeight
	if rows < 1 {
		rows = 1
	}

	return GridLayout{
		Columns:     columns,
		CardWidth:   cardWidth,
		CardHeight:  cardHeight,
		Height:      height,
		VisibleRows: rows,
	}
}

// CalculateCardContentWidth computes the width available for card text.
func CalculateCardContentWidth(cardWidth int, cfg GridConfig) int {
	width := cardWidth - cfg.CardPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}

// RowCount returns the number of grid rows needed for n cards.
func RowCount(n, columns int) int {
	if n <= 0 || columns <= 0 {
		return 0
	}
	return (n + columns - 1) / columns
}
