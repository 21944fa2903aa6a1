package meter

// Group is a meter made of one UnitMeter per CPU in a subset, laid out in
// a fixed number of columns.
type Group struct {
	host     *Host
	variant  Variant
	pool     *Pool
	mode     Mode
	height   int
	diverged bool
}

func NewGroup(host *Host, v Variant) *Group {
	if v.Columns < 1 {
		v.Columns = 1
	}
	return &Group{
		host:    host,
		variant: v,
		pool:    &Pool{},
		mode:    ModeBar,
		height:  1,
	}
}

func (g *Group) Variant() Variant { return g.variant }

// Pool exposes the group's meters.
func (g *Group) Pool() *Pool { return g.pool }

// Init creates the per-CPU meters for the variant's subset. Calling it
// again only fills slots that are still empty.
func (g *Group) Init() {
	offset, count := Range(g.host.ExistingUnits(), g.variant.Subset)
	g.pool.EnsureInitialized(g.host, offset, count)
	g.checkUnits(count)
	g.applyMode(g.mode, g.variant.Columns)
}

func (g *Group) UpdateValues() {
	_, count := Range(g.host.ExistingUnits(), g.variant.Subset)
	g.checkUnits(count)
	g.pool.RefreshAll()
}

// checkUnits logs once when the platform's CPU count no longer matches
// the pool. The pool keeps its original CPUs.
func (g *Group) checkUnits(count int) {
	if g.diverged || count == g.pool.Len() {
		return
	}
	g.diverged = true
	g.host.log.Warn().
		Str("variant", g.variant.Name).
		Int("meters", g.pool.Len()).
		Int("cpus", count).
		Msg("CPU count changed; meter keeps its original CPUs")
}

func (g *Group) Caption() string { return UnitMeterName }

func (g *Group) UIName() string { return g.variant.UIName }

func (g *Group) SetMode(m Mode) { g.applyMode(m, g.variant.Columns) }

func (g *Group) Mode() Mode { return g.mode }

func (g *Group) Height() int { return g.height }

// applyMode stores mode, forwards it to every child and recomputes the
// group height from the first child's height and the row count.
func (g *Group) applyMode(mode Mode, columns int) {
	g.mode = mode
	n := g.pool.Len()
	if n == 0 || g.pool.At(0) == nil {
		g.height = 1
		return
	}
	g.pool.SetMode(mode)
	g.height = g.pool.At(0).Height() * Rows(n, columns)
	g.host.log.Debug().
		Str("variant", g.variant.Name).
		Stringer("mode", mode).
		Int("height", g.height).
		Msg("cpu meter mode applied")
}

func (g *Group) Draw(c *Canvas, x, y, w int) {
	if g.variant.Columns <= 1 {
		g.drawStacked(c, x, y, w)
		return
	}
	g.drawGrid(c, x, y, w, g.variant.Columns)
}

// drawGrid splits w into columns and fills them column-major. The first
// w%columns columns are one cell wider, which shows up as a one cell
// shift of every later column.
func (g *Group) drawGrid(c *Canvas, x, y, w, columns int) {
	n := g.pool.Len()
	if n == 0 || g.pool.At(0) == nil {
		return
	}
	nrows := Rows(n, columns)
	base, rem := w/columns, w%columns
	h := g.pool.At(0).Height()

	for i := 0; i < n; i++ {
		m := g.pool.At(i)
		if m == nil {
			continue
		}
		col, row := Cell(i, nrows)
		m.Draw(c, x+ColumnOffset(col, base, rem), y+row*h, base)
	}
}

// drawStacked draws one meter per row, each advancing y by its own height.
func (g *Group) drawStacked(c *Canvas, x, y, w int) {
	for i := 0; i < g.pool.Len(); i++ {
		m := g.pool.At(i)
		if m == nil {
			continue
		}
		m.Draw(c, x, y, w)
		y += m.Height()
	}
}

// Done releases every child meter and then the pool.
func (g *Group) Done() {
	g.pool.Destroy()
	g.height = 1
}
