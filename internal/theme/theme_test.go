package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/glyph-popup/internal/markup"
)

func TestColor(t *testing.T) {
	cases := []struct {
		in   string
		want lipgloss.Color
		ok   bool
	}{
		{"#abc", "#aabbcc", true},
		{"#ABCD", "#aabbcc", true},
		{"#102030", "#102030", true},
		{"#10203040", "#102030", true},
		{"#1111aaaaffff", "#11aaff", true},
		{"red", "9", true},
		{" Grey ", "8", true},
		{"#12345", "", false},
		{"#zzzzzz", "", false},
		{"chartreuse", "", false},
	}
	for _, tc := range cases {
		got, ok := Color(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			require.Equal(t, tc.want, got, tc.in)
		}
	}
}

func TestAttributeStyle(t *testing.T) {
	style := AttributeStyle(lipgloss.NewStyle(), []markup.Attribute{
		{Kind: markup.KindWeight, Value: "bold"},
		{Kind: markup.KindStyle, Value: "italic"},
		{Kind: markup.KindUnderline, Value: "single"},
		{Kind: markup.KindStrikethrough, Value: "true"},
		{Kind: markup.KindForeground, Value: "#f00"},
		{Kind: markup.KindBackground, Value: "navy"},
		{Kind: markup.KindFamily, Value: "monospace"},
	})
	require.True(t, style.GetBold())
	require.True(t, style.GetItalic())
	require.True(t, style.GetUnderline())
	require.True(t, style.GetStrikethrough())
	require.Equal(t, lipgloss.Color("#ff0000"), style.GetForeground())
	require.Equal(t, lipgloss.Color("4"), style.GetBackground())
}

func TestAttributeStyleWeights(t *testing.T) {
	for weight, want := range map[string]bool{
		"bold":   true,
		"heavy":  true,
		"700":    true,
		"600":    true,
		"400":    false,
		"normal": false,
		"light":  false,
	} {
		style := AttributeStyle(lipgloss.NewStyle(), []markup.Attribute{{Kind: markup.KindWeight, Value: weight}})
		require.Equal(t, want, style.GetBold(), weight)
	}
}

func TestAttributeStyleKeepsBase(t *testing.T) {
	base := lipgloss.NewStyle().Background(lipgloss.Color("238"))
	style := AttributeStyle(base, []markup.Attribute{{Kind: markup.KindUnderline, Value: "none"}})
	require.False(t, style.GetUnderline())
	require.Equal(t, lipgloss.Color("238"), style.GetBackground())
	require.Equal(t, base.GetBackground(), AttributeStyle(base, nil).GetBackground())
}

func TestDefaultStylesPopulated(t *testing.T) {
	s := Default()
	require.NotNil(t, s.Item)
	require.NotNil(t, s.SelectedItem)
	require.NotNil(t, s.SubmenuMarker)
	require.NotNil(t, s.Header)
	require.NotNil(t, s.Cursor)
}

func TestAttributeStyleTextTransform(t *testing.T) {
	upper := AttributeStyle(lipgloss.NewStyle(), []markup.Attribute{{Kind: markup.KindTextTransform, Value: "uppercase"}})
	require.Equal(t, "OMEGA", upper.GetTransform()("omega"))

	lower := AttributeStyle(lipgloss.NewStyle(), []markup.Attribute{{Kind: markup.KindTextTransform, Value: "lowercase"}})
	require.Equal(t, "omega", lower.GetTransform()("OMEGA"))

	none := AttributeStyle(upper, []markup.Attribute{{Kind: markup.KindTextTransform, Value: "none"}})
	require.Nil(t, none.GetTransform())
}

func TestAttributeStyleIgnoresUnrenderableSpanAttributes(t *testing.T) {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	style := AttributeStyle(base, []markup.Attribute{
		{Kind: markup.KindRise, Value: "5000"},
		{Kind: markup.KindFont, Value: "Sans Bold 12"},
		{Kind: markup.KindLanguage, Value: "el"},
		{Kind: markup.KindLetterSpacing, Value: "1024"},
		{Kind: markup.KindUnderlineColor, Value: "red"},
		{Kind: markup.KindStrikethrough, Value: "yes"},
	})
	require.True(t, style.GetStrikethrough())
	require.False(t, style.GetBold())
	require.Equal(t, lipgloss.Color("249"), style.GetForeground())
}
