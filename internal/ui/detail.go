package ui

import (
	"strings"

	"github.com/atomicstack/ohsdash/internal/logging"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// detailPane renders a record's markdown detail into a scrollable viewport.
type detailPane struct {
	vp       viewport.Model
	style    string
	source   string
	rendered string
	wrap     int
	renderer *glamour.TermRenderer
	// key identifies the record shown; a new key scrolls back to the top.
	key string
}

func newDetailPane(style string) *detailPane {
	return &detailPane{vp: viewport.New(0, 0), style: style}
}

// setContent replaces the markdown source. Content for the same key keeps
// the scroll position.
func (d *detailPane) setContent(key, markdown string) {
	if key != d.key {
		d.key = key
		d.vp.GotoTop()
	}
	if markdown == d.source && d.rendered != "" {
		return
	}
	d.source = markdown
	d.rendered = ""
}

func (d *detailPane) clear() {
	d.key = ""
	d.source = ""
	d.rendered = ""
	d.vp.SetContent("")
	d.vp.GotoTop()
}

func (d *detailPane) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width != d.vp.Width {
		d.rendered = ""
	}
	d.vp.Width = width
	d.vp.Height = height
}

func (d *detailPane) scroll(delta int) bool {
	before := d.vp.YOffset
	if delta < 0 {
		d.vp.LineUp(-delta)
	} else {
		d.vp.LineDown(delta)
	}
	return d.vp.YOffset != before
}

func (d *detailPane) view() string {
	if d.rendered == "" && d.source != "" {
		d.rendered = d.render(d.source, d.vp.Width)
		offset := d.vp.YOffset
		d.vp.SetContent(d.rendered)
		d.vp.SetYOffset(offset)
	}
	return d.vp.View()
}

func (d *detailPane) render(markdown string, width int) string {
	if width <= 0 {
		return markdown
	}
	if d.style == "" {
		return strings.TrimRight(wordwrap.String(markdown, width), "\n")
	}
	if d.renderer == nil || d.wrap != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(d.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logging.Error(err)
			d.style = ""
			return d.render(markdown, width)
		}
		d.renderer = r
		d.wrap = width
	}
	out, err := d.renderer.Render(markdown)
	if err != nil {
		logging.Error(err)
		return markdown
	}
	return strings.Trim(out, "\n")
}
