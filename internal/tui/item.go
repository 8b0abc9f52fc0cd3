package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/nikbrunner/gallery/internal/gallery"
	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/tui/layout"
)

// renderCard renders one item as a bordered card of the given outer size.
func (a App) renderCard(item model.Item, selected bool, width, height int) string {
	style := a.styles.Card
	if selected {
		style = a.styles.CardSelected
	}

	contentWidth := layout.CalculateCardContentWidth(width, a.layoutConfig.Grid)
	textCfg := a.layoutConfig.Text

	title, _ := layout.TruncateText(item.Title, contentWidth, textCfg)
	lines := []string{a.styles.Title.Render(title)}

	switch a.gallery.Layout() {
	case model.LayoutGrid:
		desc, _ := layout.TruncateText(firstLine(item.Description), contentWidth, textCfg)
		lines = append(lines, a.styles.Description.Render(desc))
	case model.LayoutSingle:
		descLines := wrapText(item.Description, contentWidth, a.layoutConfig.Grid.SingleCardHeight-4)
		for _, l := range descLines {
			lines = append(lines, a.styles.Description.Render(l))
		}
		for i := len(descLines); i < a.layoutConfig.Grid.SingleCardHeight-4; i++ {
			lines = append(lines, "")
		}
	}

	url, _ := layout.TruncateText(item.ImageURL, contentWidth, textCfg)
	lines = append(lines, a.styles.URL.Render(url))

	// Width and Height exclude the border
	return style.
		Width(width - 2).
		Height(height - 2).
		Render(strings.Join(lines, "\n"))
}

// linkToken is one unbreakable run of linkified text: a word, or a
// whole URL when href is set.
type linkToken struct {
	text  string
	href  string
	glued bool // no space before it
}

// linkTokens splits text into words and whole URLs, in order.
func linkTokens(text string) []linkToken {
	var tokens []linkToken
	space := true
	for _, seg := range gallery.Linkify(text) {
		if seg.Link {
			tokens = append(tokens, linkToken{text: seg.Text, href: seg.Href(), glued: !space && len(tokens) > 0})
			space = false
			continue
		}

		start, glued := -1, false
		for i, r := range seg.Text {
			if unicode.IsSpace(r) {
				if start >= 0 {
					tokens = append(tokens, linkToken{text: seg.Text[start:i], glued: glued})
					start = -1
				}
				space = true
				continue
			}
			if start < 0 {
				start, glued = i, !space && len(tokens) > 0
				space = false
			}
		}
		if start >= 0 {
			tokens = append(tokens, linkToken{text: seg.Text[start:], glued: glued})
		}
	}
	return tokens
}

// renderLinkified word-wraps text to width with URL spans as OSC 8
// hyperlinks. A URL wider than a line is split, and every fragment links
// to the full URL.
func (a App) renderLinkified(text string, width int) string {
	if width <= 0 {
		return ""
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	breakLine := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, tok := range linkTokens(text) {
		gap := 1
		if tok.glued || lineWidth == 0 {
			gap = 0
		}
		if lineWidth > 0 && lineWidth+gap+xansi.StringWidth(tok.text) > width {
			breakLine()
			gap = 0
		}
		line.WriteString(strings.Repeat(" ", gap))
		lineWidth += gap

		for rest := tok.text; rest != ""; {
			frag := rest
			if xansi.StringWidth(rest) > width-lineWidth {
				frag = xansi.Cut(rest, 0, width-lineWidth)
			}
			if frag == "" {
				if lineWidth > 0 {
					breakLine()
					continue
				}
				// single cell wider than the line
				_, size := utf8.DecodeRuneInString(rest)
				frag = rest[:size]
			}
			rest = rest[len(frag):]

			if tok.href != "" {
				line.WriteString(termenv.Hyperlink(tok.href, a.styles.Link.Render(frag)))
			} else {
				line.WriteString(a.styles.Description.Render(frag))
			}
			lineWidth += xansi.StringWidth(frag)
		}
	}
	if lineWidth > 0 {
		breakLine()
	}
	return strings.Join(lines, "\n")
}

// wrapText word-wraps text to width and returns at most maxLines lines
// (all lines when maxLines <= 0). Excess is marked with an ellipsis.
func wrapText(text string, width, maxLines int) []string {
	text = strings.TrimSpace(text)
	if text == "" || width <= 0 {
		return nil
	}

	rendered := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(rendered, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		last, _ := layout.TruncateText(lines[maxLines-1]+" ...", width, layout.DefaultConfig().Text)
		lines[maxLines-1] = last
	}
	return lines
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
