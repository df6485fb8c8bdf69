package state

// ListCursor is a highlighted row plus the first visible row of a scrolling
// list. The record table and menu levels both use it.
type ListCursor struct {
	Index  int
	Offset int
}

// Home moves the cursor to the first row.
func (c *ListCursor) Home(n int) bool {
	if n == 0 {
		c.Index = 0
		return false
	}
	old := c.Index
	c.Index = 0
	return old != c.Index
}

// End moves the cursor to the last row.
func (c *ListCursor) End(n int) bool {
	if n == 0 {
		c.Index = 0
		return false
	}
	old := c.Index
	c.Index = n - 1
	return old != c.Index
}

// Move shifts the cursor by delta rows, stopping at either end.
func (c *ListCursor) Move(delta, n int) bool {
	if n == 0 {
		c.Index = 0
		return false
	}
	old := c.Index
	if c.Index < 0 {
		c.Index = 0
	}
	c.Index += delta
	if c.Index < 0 {
		c.Index = 0
	}
	if c.Index >= n {
		c.Index = n - 1
	}
	return c.Index != old
}

// PageUp moves the cursor up by one screenful.
func (c *ListCursor) PageUp(n, maxVisible int) bool {
	return c.Move(-pageSize(n, maxVisible), n)
}

// PageDown moves the cursor down by one screenful.
func (c *ListCursor) PageDown(n, maxVisible int) bool {
	return c.Move(pageSize(n, maxVisible), n)
}

// Clamp keeps the cursor inside [0, n).
func (c *ListCursor) Clamp(n int) {
	if n == 0 {
		c.Index = 0
		c.Offset = 0
		return
	}
	if c.Index < 0 {
		c.Index = 0
	}
	if c.Index >= n {
		c.Index = n - 1
	}
}

func pageSize(n, maxVisible int) int {
	if n == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > n {
		size = n
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureVisible adjusts the offset so the cursor row is on screen.
func (c *ListCursor) EnsureVisible(n, maxVisible int) {
	c.Clamp(n)
	if n == 0 {
		return
	}
	if maxVisible <= 0 {
		c.Offset = 0
		return
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.Offset > maxOffset {
		c.Offset = maxOffset
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	if c.Index < c.Offset {
		c.Offset = c.Index
	}
	if upper := c.Offset + maxVisible - 1; c.Index > upper {
		c.Offset = c.Index - maxVisible + 1
		if c.Offset > maxOffset {
			c.Offset = maxOffset
		}
	}
}

// Window returns the [start, end) rows visible for n rows.
func (c *ListCursor) Window(n, maxVisible int) (int, int) {
	if maxVisible <= 0 || n <= maxVisible {
		return 0, n
	}
	start := c.Offset
	if start < 0 {
		start = 0
	}
	if start+maxVisible > n {
		start = n - maxVisible
	}
	return start, start + maxVisible
}
