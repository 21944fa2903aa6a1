package meter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/coremeter/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroup(t *testing.T, prov *fakeProvider, variant string) *Group {
	t.Helper()
	v, ok := LookupVariant(variant)
	require.True(t, ok, variant)
	g := NewGroup(newTestHost(prov), v)
	g.Init()
	return g
}

func TestGroup_AllFourColumns(t *testing.T) {
	prov := newFakeProvider(4)
	for u := 1; u <= 4; u++ {
		prov.set(u, 10)
	}
	g := newGroup(t, prov, "AllCPUs4")

	assert.Equal(t, []int{1, 2, 3, 4}, g.Pool().Units())
	assert.Equal(t, 1, g.Height())

	g.UpdateValues()
	c := NewCanvas(40)
	g.Draw(c, 0, 0, 40)

	lines := c.Lines()
	require.Len(t, lines, 1)
	for col := 0; col < 4; col++ {
		x := col * 10
		assert.Equal(t, "  "+string(rune('1'+col)), lines[0][x:x+3], "column %d", col)
	}
}

func TestGroup_FirstHalfOfOdd(t *testing.T) {
	prov := newFakeProvider(5)
	g := newGroup(t, prov, "LeftCPUs")

	assert.Equal(t, []int{1, 2, 3}, g.Pool().Units())
	assert.Equal(t, 3, g.Height())

	right := newGroup(t, prov, "RightCPUs")
	assert.Equal(t, []int{4, 5}, right.Pool().Units())
}

func TestGroup_ColumnMajorGrid(t *testing.T) {
	prov := newFakeProvider(8)
	g := newGroup(t, prov, "AllCPUs4")
	require.Equal(t, 2, g.Height())

	c := NewCanvas(40)
	g.Draw(c, 0, 0, 40)
	lines := c.Lines()
	require.Len(t, lines, 2)

	assert.Equal(t, "  1", lines[0][0:3])
	assert.Equal(t, "  2", lines[1][0:3])
	assert.Equal(t, "  3", lines[0][10:13])
	assert.Equal(t, "  8", lines[1][30:33])
}

func TestGroup_RemainderShiftsColumns(t *testing.T) {
	prov := newFakeProvider(4)
	g := newGroup(t, prov, "AllCPUs4")

	// width 42: base 10, remainder 2
	c := NewCanvas(0)
	g.Draw(c, 0, 0, 42)
	line := c.Lines()[0]
	assert.Equal(t, "  2", line[11:14])
	assert.Equal(t, "  3", line[22:25])
	assert.Equal(t, "  4", line[32:35])
}

func TestGroup_NoUnits(t *testing.T) {
	prov := newFakeProvider(0)
	g := newGroup(t, prov, "AllCPUs2")

	assert.Zero(t, g.Pool().Len())
	assert.Equal(t, 1, g.Height())

	g.SetMode(ModeGraph)
	assert.Equal(t, 1, g.Height())

	g.UpdateValues()
	c := NewCanvas(40)
	g.Draw(c, 0, 0, 40)
	assert.Zero(t, c.Height())
	assert.Empty(t, prov.fetched)
}

func TestGroup_ModeHeight(t *testing.T) {
	prov := newFakeProvider(5)
	g := newGroup(t, prov, "AllCPUs2")
	assert.Equal(t, 3, g.Height())

	g.SetMode(ModeGraph)
	assert.Equal(t, ModeGraph, g.Mode())
	assert.Equal(t, 3*GraphHeight, g.Height())
	for i := 0; i < g.Pool().Len(); i++ {
		assert.Equal(t, ModeGraph, g.Pool().At(i).Mode())
	}

	g.SetMode(ModeText)
	assert.Equal(t, 3, g.Height())
}

func TestGroup_InitKeepsMode(t *testing.T) {
	prov := newFakeProvider(2)
	g := NewGroup(newTestHost(prov), ParseVariant("AllCPUs"))
	g.SetMode(ModeGraph)
	g.Init()

	assert.Equal(t, 2*GraphHeight, g.Height())
	assert.Equal(t, ModeGraph, g.Pool().At(1).Mode())
}

func TestGroup_StackedAdvancesByChildHeight(t *testing.T) {
	prov := newFakeProvider(3)
	g := newGroup(t, prov, "AllCPUs")
	g.SetMode(ModeGraph)
	g.UpdateValues()

	c := NewCanvas(30)
	g.Draw(c, 0, 0, 30)
	lines := c.Lines()
	require.Len(t, lines, 3*GraphHeight)
	assert.Equal(t, "  1", lines[0][0:3])
	assert.Equal(t, "  2", lines[GraphHeight][0:3])
	assert.Equal(t, "  3", lines[2*GraphHeight][0:3])
}

func TestGroup_CountChangeKeepsPool(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.Init(&buf, "debug"))
	t.Cleanup(func() { _ = logger.Init(&bytes.Buffer{}, "info") })

	prov := newFakeProvider(4)
	g := newGroup(t, prov, "AllCPUs2")

	prov.existing = 6
	g.UpdateValues()
	g.UpdateValues()
	g.Init()

	assert.Equal(t, []int{1, 2, 3, 4}, g.Pool().Units())
	assert.Equal(t, 1, strings.Count(buf.String(), "CPU count changed"))
}

func TestGroup_Done(t *testing.T) {
	prov := newFakeProvider(4)
	g := newGroup(t, prov, "AllCPUs2")
	g.Done()

	assert.Zero(t, g.Pool().Len())
	assert.Equal(t, 1, g.Height())
}
