package theme

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/glyph-popup/internal/markup"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	SubmenuMarker         *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SubmenuMarker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// namedColors maps common Pango colour names onto the 16-colour palette.
var namedColors = map[string]string{
	"black":   "0",
	"maroon":  "1",
	"green":   "2",
	"olive":   "3",
	"navy":    "4",
	"purple":  "5",
	"teal":    "6",
	"silver":  "7",
	"gray":    "8",
	"grey":    "8",
	"red":     "9",
	"lime":    "10",
	"yellow":  "11",
	"blue":    "12",
	"magenta": "13",
	"fuchsia": "13",
	"cyan":    "14",
	"aqua":    "14",
	"white":   "15",
	"orange":  "208",
	"pink":    "218",
	"brown":   "130",
}

// AttributeStyle layers markup attributes over base. Attributes a terminal
// cannot show, such as fonts, sizes, spacing and alpha, are ignored.
func AttributeStyle(base lipgloss.Style, attrs []markup.Attribute) lipgloss.Style {
	style := base
	for _, attr := range attrs {
		value := strings.ToLower(strings.TrimSpace(attr.Value))
		switch attr.Kind {
		case markup.KindWeight:
			style = style.Bold(isBold(value))
		case markup.KindStyle:
			style = style.Italic(value == "italic" || value == "oblique")
		case markup.KindUnderline:
			style = style.Underline(value != "none")
		case markup.KindStrikethrough:
			style = style.Strikethrough(value == "true" || value == "yes" || value == "t" || value == "y")
		case markup.KindForeground:
			if c, ok := Color(value); ok {
				style = style.Foreground(c)
			}
		case markup.KindBackground:
			if c, ok := Color(value); ok {
				style = style.Background(c)
			}
		case markup.KindTextTransform:
			switch value {
			case "uppercase":
				style = style.Transform(strings.ToUpper)
			case "lowercase":
				style = style.Transform(strings.ToLower)
			default:
				style = style.UnsetTransform()
			}
		}
	}
	return style
}

// Color converts a markup colour (#rgb, #rrggbb, #rrggbbaa, #rrrrggggbbbb or a
// name) into a lipgloss colour.
func Color(value string) (lipgloss.Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if !strings.HasPrefix(value, "#") {
		code, ok := namedColors[value]
		return lipgloss.Color(code), ok
	}
	hex := value[1:]
	switch len(hex) {
	case 3, 4:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		hex = hex[:6]
	case 12:
		hex = hex[0:2] + hex[4:6] + hex[8:10]
	default:
		return "", false
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", false
	}
	return lipgloss.Color("#" + hex), true
}

func isBold(weight string) bool {
	switch weight {
	case "bold", "ultrabold", "heavy", "ultraheavy", "semibold":
		return true
	case "thin", "ultralight", "light", "semilight", "book", "normal", "medium":
		return false
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}
