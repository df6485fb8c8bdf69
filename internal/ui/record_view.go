package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/ohsdash/internal/format/table"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// maxCellWidth caps a table cell so one long value cannot push the other
// columns off screen.
const maxCellWidth = 32

// view renders the prompt, the table (with the detail pane beside it when a
// record is selected) and the status line in exactly height rows.
func (s *recordScreen[R]) view(width, height int) string {
	s.layout()
	prompt := s.m.renderPrompt(s.search, "search "+lowerTitle(s.kind.Title))
	if s.busy() {
		prompt += " " + s.m.spinner.View()
	}
	bodyH := height - 2
	if bodyH < 1 {
		bodyH = 1
	}
	var body string
	if s.form.Open() && s.dialog != nil {
		dialog := s.dialog.view(width, s.form.Err(), s.form.Submitting())
		body = lipgloss.Place(width, bodyH, lipgloss.Center, lipgloss.Center, dialog)
	} else {
		body = s.viewBody(width, bodyH)
	}
	status := applyWidth([]styledLine{s.statusLine()}, width)
	return prompt + "\n" + body + "\n" + renderLines(status)
}

func (s *recordScreen[R]) viewBody(width, height int) string {
	listW := width
	split := s.split.Mode() == uistate.PaneSplit && s.split.DetailWidth() > 0
	if split {
		listW = s.split.ListWidth()
	}
	left := fitRows(s.tableLines(listW, height), listW, height)
	if !split {
		return left
	}
	dividerStyle := styles.Divider
	if s.split.Dragging() {
		dividerStyle = styles.DividerActive
	}
	divider := paint(dividerStyle, strings.TrimRight(strings.Repeat("│\n", height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, divider, s.detailView(s.split.DetailWidth(), height))
}

// tableLines renders the heading and the visible window of the current page.
func (s *recordScreen[R]) tableLines(width, height int) []string {
	headers := make([]string, len(s.kind.Columns))
	for i, col := range s.kind.Columns {
		headers[i] = col.Title
	}
	rows := s.pageRows()
	if len(rows) == 0 {
		return []string{paint(styles.TableHeader, strings.Join(headers, "  ")), paint(styles.Info, s.emptyText())}
	}
	visible := height - 1
	start, end := s.nav.Window(len(rows), visible)
	cells := make([][]string, 0, end-start+1)
	cells = append(cells, headers)
	for _, rec := range rows[start:end] {
		row := make([]string, len(s.kind.Columns))
		for i, col := range s.kind.Columns {
			row[i] = col.Value(rec, s.m.directory)
		}
		cells = append(cells, row)
	}
	formatted := table.Format(table.Clip(cells, maxCellWidth), nil)
	selected := s.restore.SelectedID()
	lines := make([]string, 0, len(formatted))
	lines = append(lines, paint(styles.TableHeader, table.Truncate(formatted[0], width)))
	for i, text := range formatted[1:] {
		idx := start + i
		marker := "  "
		if rows[idx].RecordID() == selected {
			marker = "▌ "
		}
		text = table.Truncate(marker+text, width)
		style := styles.Item
		if idx == s.nav.Index {
			style = styles.SelectedItem
			if pad := width - lipgloss.Width(text); pad > 0 {
				text += strings.Repeat(" ", pad)
			}
		}
		lines = append(lines, paint(style, text))
	}
	return lines
}

func (s *recordScreen[R]) emptyText() string {
	switch {
	case s.list.Loading() && !s.list.Loaded():
		return "Loading…"
	case s.list.Err() != nil && s.list.Len() == 0:
		return "Could not load " + lowerTitle(s.kind.Title)
	case s.search.Value != "":
		return fmt.Sprintf("No matches for %q", s.search.Value)
	case s.list.StatusFilter() != "":
		return fmt.Sprintf("No %s records", humanStatus(s.list.StatusFilter()))
	}
	return "No " + lowerTitle(s.kind.Title) + " yet"
}

func (s *recordScreen[R]) detailView(width, height int) string {
	title := ""
	if rec, ok := s.restore.Selected(); ok {
		title = s.kind.RecordLabel(rec, s.m.directory)
	} else if s.restore.Pending() {
		title = "Loading…"
	}
	lines := []string{paint(styles.DetailTitle, table.Truncate(title, width))}
	if body := s.detail.view(); body != "" {
		lines = append(lines, strings.Split(body, "\n")...)
	}
	return fitRows(lines, width, height)
}

func (s *recordScreen[R]) statusLine() styledLine {
	if s.m.errMsg != "" {
		return styledLine{text: "Error: " + s.m.errMsg, style: styles.Error}
	}
	if info := s.m.currentInfo(); info != "" {
		style := styles.Info
		if s.confirmDelete != "" {
			style = styles.Warning
		}
		return styledLine{text: info, style: style}
	}
	if err := s.list.Err(); err != nil {
		return styledLine{text: "Error: " + err.Error(), style: styles.Error}
	}
	if ok, msg := s.m.hasBackendIssue(); ok {
		return styledLine{text: msg, style: styles.Warning}
	}
	info := s.list.PageInfo()
	parts := make([]string, 0, 3)
	if info.TotalPages > 1 {
		s.pager.PerPage = s.list.Limit()
		s.pager.TotalPages = info.TotalPages
		s.pager.Page = info.Page - 1
		parts = append(parts, "page "+s.pager.View())
	}
	noun := "records"
	if info.Total == 1 {
		noun = "record"
	}
	parts = append(parts, fmt.Sprintf("%d %s", info.Total, noun))
	if status := s.list.StatusFilter(); status != "" {
		parts = append(parts, "status: "+humanStatus(status))
	}
	return styledLine{text: strings.Join(parts, " · "), style: styles.Footer}
}

func humanStatus(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}

// fitRows pads or cuts lines to exactly height rows of width cells each, so
// columns joined beside them stay aligned.
func fitRows(lines []string, width, height int) string {
	rows := make([]string, height)
	for i := range rows {
		var row string
		if i < len(lines) {
			row = lines[i]
		}
		w := lipgloss.Width(row)
		if w > width && width > 0 {
			row = truncate.StringWithTail(row, uint(width-1), "…")
			w = lipgloss.Width(row)
		}
		if w < width {
			row += strings.Repeat(" ", width-w)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
