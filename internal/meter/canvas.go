package meter

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Canvas is a row-addressed drawing surface. Meters place styled text at
// (x, y) cells; Lines assembles each row with space padding in between.
type Canvas struct {
	width int
	rows  [][]segment
}

type segment struct {
	x     int
	width int
	text  string
}

// NewCanvas creates a canvas. A width of zero or less means unbounded.
func NewCanvas(width int) *Canvas {
	return &Canvas{width: width}
}

// Width returns the canvas width (0 when unbounded).
func (c *Canvas) Width() int { return c.width }

// Put writes text at (x, y), truncated to maxWidth cells and to the canvas
// edge. It returns the number of cells written.
func (c *Canvas) Put(x, y, maxWidth int, text string) int {
	if x < 0 || y < 0 || maxWidth <= 0 || text == "" {
		return 0
	}
	if c.width > 0 && x+maxWidth > c.width {
		maxWidth = c.width - x
		if maxWidth <= 0 {
			return 0
		}
	}

	w := lipgloss.Width(text)
	if w > maxWidth {
		text = ansi.Truncate(text, maxWidth, "")
		w = lipgloss.Width(text)
	}
	if w == 0 {
		return 0
	}

	for len(c.rows) <= y {
		c.rows = append(c.rows, nil)
	}
	c.rows[y] = append(c.rows[y], segment{x: x, width: w, text: text})
	return w
}

// Height is the number of rows touched so far.
func (c *Canvas) Height() int { return len(c.rows) }

// Lines renders every row. A segment starting inside an earlier one on
// the same row is dropped.
func (c *Canvas) Lines() []string {
	lines := make([]string, len(c.rows))
	for y, row := range c.rows {
		segs := append([]segment(nil), row...)
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].x < segs[j].x })

		var b strings.Builder
		cursor := 0
		for _, s := range segs {
			if s.x < cursor {
				continue
			}
			b.WriteString(strings.Repeat(" ", s.x-cursor))
			b.WriteString(s.text)
			cursor = s.x + s.width
		}
		lines[y] = b.String()
	}
	return lines
}

func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}
