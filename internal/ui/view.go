package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const infoTTL = 5 * time.Second

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// paint renders text with style, tolerating a nil style.
func paint(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

// View implements tea.Model.
func (m *Model) View() string {
	header := applyWidth([]styledLine{{text: m.menuHeader(), style: styles.Header}}, m.width)
	if pane := m.currentRecord(); pane != nil {
		out := renderLines(header) + "\n" + pane.view(m.width, m.recordPaneHeight())
		if m.opts.ShowFooter {
			out += "\n" + m.footerLine(recordKeys.ShortHelp())
		}
		return out
	}
	return m.viewMenu(header)
}

// viewMenu renders the filter prompt, the visible items and the bottom bar.
func (m *Model) viewMenu(header []styledLine) string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, header...)
	current := m.currentLevel()
	if current == nil {
		return renderLines(lines)
	}
	prompt := m.renderPrompt(current.Filter, "type to filter")
	if m.anyBusy() {
		prompt += " " + m.spinner.View()
	}
	lines = append(lines, styledLine{text: prompt, raw: true})
	m.syncViewport(current)
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter.Value != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter.Value)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		start, end := current.Nav.Window(len(current.Items), m.maxVisibleItems())
		for idx := start; idx < end; idx++ {
			lines = append(lines, m.buildItemLine(idx, current, m.width))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.opts.ShowFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.footerLine(menuKeys.ShortHelp()), raw: true})
	}
	lines = limitHeight(lines, m.height-1, m.width)
	lines = append(lines, m.menuStatusLine())
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) menuStatusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if m.loading && m.pendingLabel != "" {
		return styledLine{text: "Loading " + m.pendingLabel + "…", style: styles.Loading}
	}
	if ok, msg := m.hasBackendIssue(); ok {
		return styledLine{text: msg, style: styles.Warning}
	}
	return styledLine{}
}

func (m *Model) footerLine(bindings []key.Binding) string {
	m.help.Width = m.width
	return m.help.ShortHelpView(bindings)
}

// buildItemLine renders one menu row. The hint is dimmed after the label.
func (m *Model) buildItemLine(idx int, current *level, width int) styledLine {
	item := current.Items[idx]
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == current.Cursor() {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := "  " + item.Label
	if width > 0 {
		used := lipgloss.Width("▌" + text)
		if item.Hint != "" {
			used += 2 + lipgloss.Width(item.Hint)
		}
		if pad := width - used; pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	out := paint(indicatorStyle, "▌") + paint(lineStyle, text)
	if item.Hint != "" {
		out += paint(lineStyle, "  ") + paint(styles.ItemHint, item.Hint)
	}
	return styledLine{text: out, raw: true}
}

func (m *Model) menuHeader() string {
	segments := make([]string, 0, len(m.stack)+1)
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	segments = append(segments, root)
	for _, s := range m.stack[1:] {
		if title := strings.TrimSpace(headerSegmentCleaner.Replace(s.title())); title != "" {
			segments = append(segments, title)
		}
	}
	return strings.Join(segments, menuHeaderSeparator)
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
	events.UI.Resize(m.width, m.height)
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

// recordPaneHeight returns the rows a record screen may draw, or 0 when the
// terminal height is unknown.
func (m *Model) recordPaneHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - 1
	if m.opts.ShowFooter {
		h--
	}
	if h < 4 {
		return 4
	}
	return h
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header, prompt and status line
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.opts.ShowFooter {
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
	m.infoExpire = m.now().Add(infoTTL)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && m.now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
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
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			text = paint(line.prefixStyle, head) + paint(line.style, tail)
		} else {
			text = paint(line.style, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
