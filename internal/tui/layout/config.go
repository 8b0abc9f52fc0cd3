package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Grid     GridConfig
	Modal    ModalConfig
	Input    InputConfig
	Text     TextConfig
	Fuzzy    FuzzyConfig
	Lightbox LightboxConfig
}

// GridConfig holds card grid dimension configuration.
type GridConfig struct {
	// HeightReduction is subtracted from terminal height for the grid area.
	// Accounts for: app padding (1) + tabs (1) + status line (1) + gap (1) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum grid height.
	MinHeight int

	// WidthReduction is subtracted from terminal width (app padding left/right).
	WidthReduction int

	// Minimum outer card width per layout mode; columns are derived from it.
	CompactCardWidth int
	GridCardWidth    int

	// MaxColumns caps the column count on very wide terminals.
	MaxColumns int

	// Outer card heights per layout mode, borders included.
	CompactCardHeight int
	GridCardHeight    int
	SingleCardHeight  int

	// CardPadding is subtracted from the outer card width for content.
	// Accounts for border (2) + horizontal padding (2).
	CardPadding int
}

// ModalConfig holds overlay configuration.
type ModalConfig struct {
	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	FilterCharLimit int

	FilterWidth int
	SearchWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// FuzzyConfig holds fuzzy finder layout configuration.
type FuzzyConfig struct {
	// ListWidthPercent: percentage of width for results list.
	ListWidthPercent int

	// PreviewWidthPercent: percentage of width for preview pane.
	PreviewWidthPercent int

	// HeaderReduction: lines for header, input, help, padding.
	HeaderReduction int
}

// LightboxConfig holds fullscreen view configuration.
type LightboxConfig struct {
	// MaxWidth caps the text column of the fullscreen view.
	MaxWidth int
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			HeightReduction:   7,
			MinHeight:         5,
			WidthReduction:    4,
			CompactCardWidth:  24,
			GridCardWidth:     36,
			MaxColumns:        6,
			CompactCardHeight: 4, // title + url
			GridCardHeight:    5, // title + description + url
			SingleCardHeight:  7, // title + 3 description lines + url
			CardPadding:       4,
		},
		Modal: ModalConfig{
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			FilterCharLimit: 50,
			FilterWidth:     30,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
		Fuzzy: FuzzyConfig{
			ListWidthPercent:    40,
			PreviewWidthPercent: 55,
			HeaderReduction:     8,
		},
		Lightbox: LightboxConfig{
			MaxWidth: 100,
		},
	}
}
