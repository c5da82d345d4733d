package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation
// that may clash with palettes like Solarized.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Stock levels
	InStock    lipgloss.AdaptiveColor
	LowStock   lipgloss.AdaptiveColor
	OutOfStock lipgloss.AdaptiveColor

	// Value accents
	Price  lipgloss.AdaptiveColor
	Rating lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Pre-computed row styles, created once at startup instead of per-frame
	MutedText     lipgloss.Style // SKU, counts
	InfoText      lipgloss.Style // category
	SecondaryText lipgloss.Style // IDs
	PrimaryBold   lipgloss.Style // selection indicator
	PriceText     lipgloss.Style
	RatingText    lipgloss.Style
	StatusBusy    lipgloss.Style // spinner line
	StatusError   lipgloss.Style // transient failure notice
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		InStock:    lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		LowStock:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		OutOfStock: lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red

		Price:  lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		Rating: lipgloss.AdaptiveColor{Light: "#808000", Dark: "#F1FA8C"}, // Yellow

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(ColorMuted)
	t.InfoText = r.NewStyle().Foreground(ColorInfo)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.PriceText = r.NewStyle().Foreground(t.Price)
	t.RatingText = r.NewStyle().Foreground(t.Rating)
	t.StatusBusy = r.NewStyle().Foreground(t.Primary)
	t.StatusError = r.NewStyle().Foreground(t.OutOfStock).Bold(true)

	return t
}

// GetStockColor maps a stock count to its severity color.
func (t Theme) GetStockColor(stock int) lipgloss.AdaptiveColor {
	switch {
	case stock <= 0:
		return t.OutOfStock
	case stock < 10:
		return t.LowStock
	default:
		return t.InStock
	}
}

// GetCategoryIcon returns a one-cell marker and color for a category.
func (t Theme) GetCategoryIcon(category string) (string, lipgloss.AdaptiveColor) {
	switch category {
	case "Electronics":
		return "E", t.Price
	case "Books":
		return "B", t.Primary
	case "Clothing":
		return "C", t.Rating
	case "Garden":
		return "G", t.InStock
	case "Toys & Games":
		return "T", t.LowStock
	case "Sports & Outdoors":
		return "S", t.Secondary
	case "Home & Kitchen":
		return "H", t.Subtext
	case "Automotive":
		return "A", t.OutOfStock
	default:
		return "·", t.Subtext
	}
}

// TestTheme returns a theme suitable for use in tests (stdout renderer).
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
