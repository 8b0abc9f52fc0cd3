package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/search"
	"github.com/nikbrunner/gallery/internal/source"
	"github.com/nikbrunner/gallery/internal/tui/layout"
)

// renderView creates the complete view for the current mode.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeFind:
		return a.renderFuzzyFinder()
	case ModeFullscreen:
		return a.renderLightbox()
	}

	content := a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		a.renderStatusLine(),
		"",
		a.renderGrid(),
		a.renderHelpBar(),
	))

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderTabs renders the category selector with the active layout on the right.
func (a App) renderTabs() string {
	tabs := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		label := fmt.Sprintf("%d %s", i+1, c.Label())
		if c == a.gallery.Category() {
			tabs[i] = a.styles.TabActive.Render(label)
		} else {
			tabs[i] = a.styles.Tab.Render(label)
		}
	}
	row := strings.Join(tabs, " ")

	layoutLabel := a.styles.Status.Render("[" + a.gallery.Layout().String() + "]")
	gap := a.width - 4 - lipgloss.Width(row) - lipgloss.Width(layoutLabel)
	if gap < 1 {
		gap = 1
	}
	return row + strings.Repeat(" ", gap) + layoutLabel
}

// renderStatusLine renders the search input or the active search and item counts.
func (a App) renderStatusLine() string {
	if a.mode == ModeFilter {
		return "/ " + a.filter.Input.View()
	}

	if a.gallery.Loading() || a.gallery.Err() != nil {
		if q := a.gallery.Query(); q != "" {
			return a.styles.Status.Render(fmt.Sprintf("search: %q", q))
		}
		return ""
	}

	filtered := len(a.gallery.Filtered())
	var parts []string
	if q := a.gallery.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
		parts = append(parts, fmt.Sprintf("%d of %d match", filtered, len(a.gallery.Items())))
	}
	parts = append(parts, fmt.Sprintf("showing %d of %s", a.gallery.VisibleCount(), itemCount(filtered)))
	if a.gallery.HasMore() {
		parts = append(parts, "m for more")
	}
	return a.styles.Status.Render(strings.Join(parts, " · "))
}

// renderGrid renders the card grid, or the loading, error or empty state.
func (a App) renderGrid() string {
	gridLayout := layout.CalculateGridLayout(a.width, a.height, a.gallery.Layout(), a.layoutConfig.Grid)
	box := lipgloss.NewStyle().Height(gridLayout.Height)

	switch {
	case a.gallery.Loading():
		return box.Render(a.spinner.View() + " Loading " + a.gallery.Category().Label() + "...")

	case a.gallery.Err() != nil:
		return box.Render(
			a.styles.Error.Render("✗ "+source.LoadFailedMessage) + "\n\n" +
				a.renderHintsInline([]Hint{{Key: "r", Desc: "retry"}, {Key: "tab", Desc: "other category"}}),
		)

	case len(a.gallery.Filtered()) == 0:
		if q := a.gallery.Query(); q != "" {
			return box.Render(a.styles.Empty.Render(fmt.Sprintf("No items match %q", q)))
		}
		return box.Render(a.styles.Empty.Render("No items"))
	}

	visible := a.gallery.Visible()
	columns := gridLayout.Columns
	totalRows := layout.RowCount(len(visible), columns)
	offset := layout.CalculateViewportOffset(a.cursor/columns, totalRows, gridLayout.VisibleRows)

	var rows []string
	for r := offset; r < totalRows && r < offset+gridLayout.VisibleRows; r++ {
		cards := make([]string, 0, columns)
		for c := 0; c < columns; c++ {
			i := r*columns + c
			if i >= len(visible) {
				break
			}
			cards = append(cards, a.renderCard(visible[i], i == a.cursor, gridLayout.CardWidth, gridLayout.CardHeight))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderLightbox renders the fullscreen view of the current item.
func (a App) renderLightbox() string {
	item := a.gallery.Current()
	if item == nil {
		return a.styles.Empty.Render("No item")
	}
	idx, _ := a.gallery.FullscreenIndex()
	total := len(a.gallery.Filtered())

	width := layout.CalculateLightboxWidth(a.width, a.layoutConfig.Lightbox)
	textWidth := width - 4 // border + padding

	var content strings.Builder
	content.WriteString(a.styles.Counter.Render(fmt.Sprintf("%s  %d / %d", a.gallery.Category().Label(), idx+1, total)))
	content.WriteString("\n\n")
	title, _ := layout.TruncateText(item.Title, textWidth, a.layoutConfig.Text)
	content.WriteString(a.styles.Title.Render(title))
	content.WriteString("\n\n")

	if item.ImageURL != "" {
		url, _ := layout.TruncateText(item.ImageURL, textWidth-6, a.layoutConfig.Text)
		content.WriteString(a.styles.URL.Render("image ") + termenv.Hyperlink(item.ImageURL, a.styles.Link.Render(url)))
	} else {
		content.WriteString(a.styles.Empty.Render("(no image)"))
	}

	if item.Description != "" {
		content.WriteString("\n\n")
		content.WriteString(a.renderLinkified(item.Description, textWidth))
	}

	content.WriteString("\n\n")
	content.WriteString(a.renderLightboxNav(idx, total, textWidth))

	frame := a.styles.CardSelected.
		Width(width - 2).
		Render(content.String())

	main := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Center,
		lipgloss.Center,
		frame,
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())
}

// renderLightboxNav renders the previous/next indicators, dimmed at the ends.
func (a App) renderLightboxNav(idx, total, width int) string {
	prev := a.styles.HintKey.Render("‹ prev")
	if idx > 0 {
		prev = a.styles.Title.Render("‹ prev")
	}
	next := a.styles.HintKey.Render("next ›")
	if idx < total-1 {
		next = a.styles.Title.Render("next ›")
	}

	gap := width - lipgloss.Width(prev) - lipgloss.Width(next)
	if gap < 1 {
		gap = 1
	}
	return prev + strings.Repeat(" ", gap) + next
}

// renderFuzzyFinder renders the jump-to-item finder.
func (a App) renderFuzzyFinder() string {
	// Brutalist style: no borders, full screen, top-left aligned (like help overlay)
	contentStyle := lipgloss.NewStyle().Padding(1, 2)

	// Calculate layout using config
	fuzzyLayout := layout.CalculateFuzzyLayout(a.width, a.height, a.layoutConfig.Fuzzy)
	listWidth := fuzzyLayout.ListWidth
	previewWidth := fuzzyLayout.PreviewWidth
	listHeight := fuzzyLayout.ListHeight

	// Build results list
	var results strings.Builder
	if len(a.find.Matches) == 0 {
		results.WriteString(a.styles.Empty.Render("No matches"))
	} else {
		start, end := layout.CalculateVisibleListItems(listHeight, a.find.Cursor, len(a.find.Matches))
		for i := start; i < end; i++ {
			line := a.renderFuzzyItem(a.find.Matches[i], i == a.find.Cursor, listWidth-2)
			results.WriteString(line + "\n")
		}
	}

	// Build preview content
	var preview strings.Builder
	if selected := a.find.Selected(); selected != nil {
		item := selected.Item
		textWidth := previewWidth - 2
		preview.WriteString(a.styles.Title.Render(item.Title))
		preview.WriteString("\n\n")
		url, _ := layout.TruncateText(item.ImageURL, textWidth, a.layoutConfig.Text)
		preview.WriteString(a.styles.URL.Render(url))
		if desc := wrapText(item.Description, textWidth, listHeight-4); len(desc) > 0 {
			preview.WriteString("\n\n")
			preview.WriteString(a.styles.Description.Render(strings.Join(desc, "\n")))
		}
	}

	// Style for results list (no border)
	resultsStyle := lipgloss.NewStyle().
		Width(listWidth).
		Height(listHeight)

	// Style for preview (no border)
	previewStyle := lipgloss.NewStyle().
		Width(previewWidth).
		Height(listHeight).
		PaddingLeft(2)

	resultsPane := resultsStyle.Render(strings.TrimRight(results.String(), "\n"))
	previewPane := previewStyle.Render(strings.TrimRight(preview.String(), "\n"))

	// Join panes horizontally
	panes := lipgloss.JoinHorizontal(lipgloss.Top, resultsPane, previewPane)

	// Result count
	countStr := fmt.Sprintf("%d results", len(a.find.Matches))
	if len(a.find.Matches) == 1 {
		countStr = "1 result"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Find in "+a.gallery.Category().Label())+"  "+a.styles.Empty.Render(countStr),
		"",
		"> "+a.find.Input.Value()+"█",
		"",
		panes,
	)

	// Top-left aligned, leave room for help bar at bottom
	main := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Left,
		lipgloss.Top,
		contentStyle.Render(content),
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())
}

// renderFuzzyItem renders a finder row with matched characters highlighted.
func (a App) renderFuzzyItem(match search.SearchResult, selected bool, maxWidth int) string {
	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var line strings.Builder
	for i, r := range match.Item.Title {
		if matchSet[i] {
			// Highlight matched character (bold/underline)
			line.WriteString("\033[1;4m")
			line.WriteRune(r)
			line.WriteString("\033[22;24m")
		} else {
			line.WriteRune(r)
		}
	}

	result := line.String()
	if layout.VisibleLength(result) > maxWidth {
		result = layout.TruncateANSIAware(result, maxWidth, a.layoutConfig.Text)
	}

	// Pad title to fixed width
	if visibleLen := layout.VisibleLength(result); visibleLen < maxWidth {
		result += strings.Repeat(" ", maxWidth-visibleLen)
	}

	if selected {
		return a.styles.ItemSelected.Render(result)
	}
	return a.styles.Item.Render(result)
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "") // Empty line provides gap when no message
	}

	// Line 2: Local (contextual) keyboard hints
	localHints := a.renderHints(a.getContextualHints())
	if localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 3: Global keyboard hints (only in normal mode)
	if a.mode == ModeNormal {
		globalHints := a.renderHintSlice(a.getGlobalHints())
		if globalHints != "" {
			lines = append(lines, a.styles.HintLabel.Render("Global ")+globalHints)
		}
	}

	return strings.Join(lines, "\n")
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderHelpOverlay renders the full-screen key reference.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	// Left column: Navigation + Categories
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("hjkl    move\n")
	left.WriteString("gg      top\n")
	left.WriteString("G       bottom\n")
	left.WriteString("enter   fullscreen\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("category") + "\n")
	left.WriteString("tab     next\n")
	left.WriteString("S-tab   previous\n")
	left.WriteString("1-4     jump\n")
	left.WriteString("r       reload\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("view") + "\n")
	left.WriteString("/       search\n")
	left.WriteString("esc     clear search\n")
	left.WriteString("v       cycle layout\n")
	left.WriteString("m       load more\n")

	// Right column: Actions + Fullscreen
	var right strings.Builder
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("s       jump to item\n")
	right.WriteString("Y       yank image url\n")
	right.WriteString("o       open in browser\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("fullscreen") + "\n")
	right.WriteString("h/l     prev/next\n")
	right.WriteString("drag    swipe\n")
	right.WriteString("esc     close\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/q/esc] close"))

	// Join columns
	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
