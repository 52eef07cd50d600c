package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/glyph-popup/internal/markup"
	"github.com/atomicstack/glyph-popup/internal/menu"
	"github.com/atomicstack/glyph-popup/internal/theme"
)

const (
	itemIndicator = "▌"
	submenuMarker = " ›"
	footerHint    = "↑/↓ move  enter select  tab complete  esc back  ctrl+c quit"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	if header := m.menuHeader(); header != "" {
		lines = append(lines, styledLine{text: header, raw: true})
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
		start := 0
		displayItems := current.Items
		if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
			start = current.ViewportOffset
			if start < 0 {
				start = 0
			}
			if start+maxItems > len(displayItems) {
				start = len(displayItems) - maxItems
				if start < 0 {
					start = 0
				}
				current.ViewportOffset = start
			}
			displayItems = displayItems[start : start+maxItems]
		}
		if len(current.Items) == 0 {
			msg := "(no entries)"
			if current.Filter != "" {
				msg = fmt.Sprintf("No matches for %q", current.Filter)
			}
			lines = append(lines, styledLine{text: msg, style: styles.Info})
		} else {
			for i, row := range displayItems {
				lines = append(lines, m.buildItemLine(row.Slot, start+i == current.Cursor, m.width))
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (error/status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	promptText, _ := m.filterPrompt()
	bottomLines := []styledLine{
		statusLine,
		{text: promptText, raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

// buildItemLine renders row slot of the active list with its markup
// attributes applied. width > 0 pads the line so the selected row's
// background spans the container.
func (m *Model) buildItemLine(slot int, selected bool, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	base := lipgloss.NewStyle()
	if lineStyle != nil {
		base = *lineStyle
	}
	indicator := itemIndicator
	if indicatorStyle != nil {
		indicator = indicatorStyle.Render(indicator)
	}
	plain, attrs := m.engine.EntryRender(slot)
	var b strings.Builder
	b.WriteString(indicator)
	b.WriteString(base.Render(" "))
	b.WriteString(renderAttributed(base, plain, attrs))
	if item, ok := m.engine.Entry(slot); ok && item.Kind == menu.ItemList {
		marker := base
		if styles.SubmenuMarker != nil {
			marker = base.Copy().Foreground(styles.SubmenuMarker.GetForeground())
		}
		b.WriteString(marker.Render(submenuMarker))
	}
	text := b.String()
	if width > 0 {
		if pad := width - lipgloss.Width(text); pad > 0 {
			text += base.Render(strings.Repeat(" ", pad))
		}
	}
	return styledLine{text: text, raw: true}
}

// renderAttributed splits plain at every attribute boundary and renders each
// segment with the attributes covering it layered over base.
func renderAttributed(base lipgloss.Style, plain string, attrs []markup.Attribute) string {
	if len(attrs) == 0 {
		return base.Render(plain)
	}
	cuts := []int{0, len(plain)}
	for _, attr := range attrs {
		cuts = append(cuts, clampOffset(attr.Start, plain), clampOffset(attr.End, plain))
	}
	sort.Ints(cuts)
	var b strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		from, to := cuts[i], cuts[i+1]
		if from == to {
			continue
		}
		var covering []markup.Attribute
		for _, attr := range attrs {
			if attr.Start <= from && attr.End >= to {
				covering = append(covering, attr)
			}
		}
		b.WriteString(theme.AttributeStyle(base, covering).Render(plain[from:to]))
	}
	return b.String()
}

func clampOffset(offset int, s string) int {
	if offset < 0 {
		return 0
	}
	if offset > len(s) {
		return len(s)
	}
	return offset
}

// menuHeader shows the breadcrumb below the root and the configured title at
// the root. Breadcrumb segments keep their markup styling.
func (m *Model) menuHeader() string {
	base := lipgloss.NewStyle()
	if styles.Header != nil {
		base = *styles.Header
	}
	crumb := m.engine.Breadcrumb()
	if crumb == "" {
		title := strings.TrimSpace(m.rootTitle)
		if title == "" {
			title = defaultRootTitle
		}
		return base.Render(title)
	}
	parsed, err := markup.Parse(crumb)
	if err != nil {
		return base.Render(crumb)
	}
	return renderAttributed(base, parsed.Plain, parsed.Attrs)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + error/status + filter prompt
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width terminal cells, counting wide glyphs as two.
func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}
