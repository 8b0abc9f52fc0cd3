package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownLayout   = errors.New("unknown layout")
)

// Category is one of the fixed content buckets a gallery can show.
type Category int

const (
	CategoryComic Category = iota
	CategoryArt
	CategoryNFT
	CategoryToken
)

// Categories lists every category in display order.
var Categories = []Category{CategoryComic, CategoryArt, CategoryNFT, CategoryToken}

var categoryNames = map[Category]string{
	CategoryComic: "comic",
	CategoryArt:   "art",
	CategoryNFT:   "nft",
	CategoryToken: "token",
}

var categoryLabels = map[Category]string{
	CategoryComic: "Comics",
	CategoryArt:   "Art",
	CategoryNFT:   "NFTs",
	CategoryToken: "Tokens",
}

// String returns the category key ("comic", "art", ...).
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Label returns the human readable tab label.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return c.String()
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Next returns the following category, wrapping after the last one.
func (c Category) Next() Category {
	return Categories[(int(c)+1)%len(Categories)]
}

// Prev returns the preceding category, wrapping before the first one.
func (c Category) Prev() Category {
	return Categories[(int(c)+len(Categories)-1)%len(Categories)]
}

// ParseCategory parses a category key. Matching is case-insensitive and
// accepts the plural tab labels too ("comics", "NFTs").
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if key == categoryNames[c] || key == strings.ToLower(categoryLabels[c]) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Layout controls how many cards the grid packs per row.
type Layout int

const (
	LayoutCompact Layout = iota
	LayoutGrid
	LayoutSingle
)

var layoutNames = []string{"compact", "grid", "single"}

// String returns the layout key.
func (l Layout) String() string {
	if int(l) >= 0 && int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// Next cycles compact -> grid -> single -> compact.
func (l Layout) Next() Layout {
	return Layout((int(l) + 1) % len(layoutNames))
}

// ParseLayout parses a layout key.
func ParseLayout(s string) (Layout, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range layoutNames {
		if key == name {
			return Layout(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}
