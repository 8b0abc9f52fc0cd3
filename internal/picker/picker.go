// Package picker is a minimal standalone selector for fuzzy search results,
// used by the find command outside the full gallery TUI.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/search"
	"github.com/nikbrunner/gallery/internal/tui/layout"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	selectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"})

	matchStyle = lipgloss.NewStyle().
			Underline(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(subtle)
)

// Picker is a simple TUI for selecting from search results.
type Picker struct {
	results   []search.SearchResult
	category  model.Category
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, category model.Category, query string) Picker {
	return Picker{
		results:  results,
		category: category,
		query:    query,
		cursor:   0,
		width:    80,
		height:   24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			p.selected = true
			return p, tea.Quit

		case tea.KeyDown:
			p.moveDown()
			return p, nil

		case tea.KeyUp:
			p.moveUp()
			return p, nil
		}

		// Handle j/k vim keys
		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.moveDown()
			case "k":
				p.moveUp()
			case "g":
				p.cursor = 0
			case "G":
				if len(p.results) > 0 {
					p.cursor = len(p.results) - 1
				}
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) moveDown() {
	if p.cursor < len(p.results)-1 {
		p.cursor++
	}
}

func (p *Picker) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	// Header
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s: %s (%d results)", p.category.Label(), p.query, len(p.results))))
	b.WriteString("\n\n")

	// Each result takes two lines; header and footer take four
	maxVisible := (p.height - 4) / 2
	if maxVisible < 1 {
		maxVisible = 1
	}
	start, end := layout.CalculateVisibleListItems(maxVisible, p.cursor, len(p.results))

	textCfg := layout.DefaultConfig().Text
	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := highlight(result, style)
		url, _ := layout.TruncateText(result.Item.ImageURL, p.width-3, textCfg)

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, title))
		b.WriteString(fmt.Sprintf("   %s\n", urlStyle.Render(url)))
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: select  q/Esc: cancel"))

	return b.String()
}

// highlight renders the title with matched characters underlined.
func highlight(result search.SearchResult, style lipgloss.Style) string {
	if len(result.MatchedIndexes) == 0 {
		return style.Render(result.Item.Title)
	}

	matched := make(map[int]bool, len(result.MatchedIndexes))
	for _, idx := range result.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range result.Item.Title {
		if matched[i] {
			b.WriteString(matchStyle.Inherit(style).Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedItem returns the selected item, or nil if cancelled.
func (p Picker) SelectedItem() *model.Item {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return &p.results[p.cursor].Item
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
