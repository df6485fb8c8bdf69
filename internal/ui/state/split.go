package state

import "math"

// PaneMode reports whether the detail pane is visible.
type PaneMode int

const (
	PaneSingle PaneMode = iota
	PaneSplit
)

// DragState tracks the divider drag gesture.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (d DragState) String() string {
	if d == DragDragging {
		return "dragging"
	}
	return "idle"
}

// SplitConfig bounds the list pane width, in percent of the container.
type SplitConfig struct {
	MinPct     float64
	MaxPct     float64
	DefaultPct float64
}

// DefaultSplitConfig is used when no bounds are configured.
var DefaultSplitConfig = SplitConfig{MinPct: 25, MaxPct: 75, DefaultPct: 50}

// Normalize fills in missing bounds and keeps the default inside them.
func (c SplitConfig) Normalize() SplitConfig {
	if c.MinPct <= 0 || c.MinPct >= 100 {
		c.MinPct = DefaultSplitConfig.MinPct
	}
	if c.MaxPct <= c.MinPct || c.MaxPct >= 100 {
		c.MaxPct = math.Max(c.MinPct, DefaultSplitConfig.MaxPct)
	}
	if c.DefaultPct == 0 {
		c.DefaultPct = (c.MinPct + c.MaxPct) / 2
	}
	c.DefaultPct = clampPct(c.DefaultPct, c.MinPct, c.MaxPct)
	return c
}

// SplitLayout is the list/detail pane state machine.
type SplitLayout struct {
	cfg            SplitConfig
	mode           PaneMode
	drag           DragState
	left           float64
	containerLeft  int
	containerWidth int
}

// NewSplitLayout starts in single-pane mode at the default width.
func NewSplitLayout(cfg SplitConfig) *SplitLayout {
	cfg = cfg.Normalize()
	return &SplitLayout{cfg: cfg, left: cfg.DefaultPct}
}

// Config returns the normalized bounds.
func (s *SplitLayout) Config() SplitConfig { return s.cfg }

// Mode returns the current pane mode.
func (s *SplitLayout) Mode() PaneMode { return s.mode }

// Drag returns the current drag state.
func (s *SplitLayout) Drag() DragState { return s.drag }

// Dragging reports whether a drag gesture is active.
func (s *SplitLayout) Dragging() bool { return s.drag == DragDragging }

// Open shows the detail pane.
func (s *SplitLayout) Open() { s.mode = PaneSplit }

// Close hides the detail pane and ends any drag.
func (s *SplitLayout) Close() {
	s.mode = PaneSingle
	s.drag = DragIdle
}

// SetContainer records the screen columns occupied by both panes.
func (s *SplitLayout) SetContainer(left, width int) {
	if width < 0 {
		width = 0
	}
	s.containerLeft = left
	s.containerWidth = width
}

// LeftPercent returns the list pane width in percent.
func (s *SplitLayout) LeftPercent() float64 { return s.left }

// SetLeftPercent clamps pct into the configured bounds and applies it.
func (s *SplitLayout) SetLeftPercent(pct float64) float64 {
	s.left = clampPct(pct, s.cfg.MinPct, s.cfg.MaxPct)
	return s.left
}

// Nudge moves the divider by delta percent.
func (s *SplitLayout) Nudge(delta float64) float64 {
	return s.SetLeftPercent(s.left + delta)
}

// Reset restores the default width.
func (s *SplitLayout) Reset() float64 {
	s.left = s.cfg.DefaultPct
	return s.left
}

// ListWidth returns the list pane width in columns.
func (s *SplitLayout) ListWidth() int {
	if s.mode == PaneSingle {
		return s.containerWidth
	}
	return int(math.Round(float64(s.containerWidth) * s.left / 100))
}

// DetailWidth returns the columns left for the detail pane after the list
// and the one-column handle.
func (s *SplitLayout) DetailWidth() int {
	if s.mode == PaneSingle {
		return 0
	}
	w := s.containerWidth - s.ListWidth() - 1
	if w < 0 {
		return 0
	}
	return w
}

// HandleX returns the column of the divider, or -1 in single-pane mode.
func (s *SplitLayout) HandleX() int {
	if s.mode == PaneSingle {
		return -1
	}
	return s.containerLeft + s.ListWidth()
}

// OnHandle reports whether column x is the divider.
func (s *SplitLayout) OnHandle(x int) bool {
	h := s.HandleX()
	return h >= 0 && x == h
}

// BeginDrag starts a drag when idle, split, and x is on the divider.
func (s *SplitLayout) BeginDrag(x int) bool {
	if s.drag != DragIdle || s.mode != PaneSplit || !s.OnHandle(x) {
		return false
	}
	s.drag = DragDragging
	return true
}

// DragTo moves the divider to pointer column x while dragging. Positions
// outside the bounds are clamped.
func (s *SplitLayout) DragTo(x int) (float64, bool) {
	if s.drag != DragDragging || s.containerWidth <= 0 {
		return s.left, false
	}
	prev := s.left
	pct := float64(x-s.containerLeft) * 100 / float64(s.containerWidth)
	applied := s.SetLeftPercent(pct)
	return applied, applied != prev
}

// EndDrag finishes a drag. It reports whether one was active.
func (s *SplitLayout) EndDrag() bool {
	if s.drag != DragDragging {
		return false
	}
	s.drag = DragIdle
	return true
}

func clampPct(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
