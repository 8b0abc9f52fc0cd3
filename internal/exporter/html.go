package exporter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nikbrunner/gallery/internal/gallery"
	"github.com/nikbrunner/gallery/internal/model"
)

const pageStyle = `
body { font-family: sans-serif; margin: 2rem; background: #1a1a1a; color: #a0a0a0; }
h1 { color: #5f8787; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
figure { margin: 0; border: 2px solid #505050; padding: 0.5rem; }
figure img { width: 100%; height: auto; display: block; }
figcaption h2 { font-size: 1rem; margin: 0.5rem 0; }
a { color: #5f8787; }
`

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/gallery-<category>-YYYY-MM-DD.<ext>
func DefaultExportPath(category model.Category, ext string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("gallery-%s-%s.%s", category, time.Now().Format("2006-01-02"), ext)
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders items as a standalone HTML gallery page. Descriptions
// are linkified.
func ExportHTML(category model.Category, items []model.Item) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), category.Label()))
	head.AppendChild(withText(element(atom.Style), pageStyle))
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), category.Label()))
	body.AppendChild(withText(element(atom.P), itemCount(len(items))))

	grid := element(atom.Div, attr("class", "grid"))
	for _, item := range items {
		grid.AppendChild(figure(item))
	}
	body.AppendChild(grid)
	root.AppendChild(body)

	var b bytes.Buffer
	if err := html.Render(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// figure builds the card of one item.
func figure(item model.Item) *html.Node {
	fig := element(atom.Figure, attr("id", "item-"+item.ID.String()))

	img := element(atom.Img,
		attr("src", item.ImageURL),
		attr("alt", item.Title),
		attr("loading", "lazy"),
	)
	link := element(atom.A, attr("href", item.ImageURL), attr("target", "_blank"))
	link.AppendChild(img)
	fig.AppendChild(link)

	caption := element(atom.Figcaption)
	caption.AppendChild(withText(element(atom.H2), item.Title))
	if item.Description != "" {
		p := element(atom.P)
		appendLinkified(p, item.Description)
		caption.AppendChild(p)
	}
	fig.AppendChild(caption)

	return fig
}

// appendLinkified appends text to parent, turning URL spans into anchors.
func appendLinkified(parent *html.Node, text string) {
	for _, seg := range gallery.Linkify(text) {
		if !seg.Link {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: seg.Text})
			continue
		}
		a := element(atom.A,
			attr("href", seg.Href()),
			attr("target", "_blank"),
			attr("rel", "noopener noreferrer"),
		)
		parent.AppendChild(withText(a, seg.Text))
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
