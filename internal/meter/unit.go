package meter

import (
	"math"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/coremeter/internal/model"
)

// historySize bounds the usage history kept for graph mode.
const historySize = 256

var graphBlocks = []rune("▁▂▃▄▅▆▇█")

// bar cell owners that are not sample slots
const (
	ownerEmpty = -1
	ownerText  = -2
)

// UnitMeter shows one CPU, or the average of all CPUs when unit is 0.
// It is bound to its unit for its whole life.
type UnitMeter struct {
	host    *Host
	unit    int
	mode    Mode
	caption string

	values  model.SampleSet
	percent float64
	state   DisplayState
	text    string
	history []float64
}

func NewUnitMeter(host *Host, unit int) *UnitMeter {
	return &UnitMeter{
		host:    host,
		unit:    unit,
		mode:    ModeBar,
		caption: UnitMeterName,
	}
}

// Unit is the 1-based CPU index, or 0 for the average meter.
func (u *UnitMeter) Unit() int { return u.unit }

func (u *UnitMeter) Init() {
	switch {
	case u.unit == 0:
		u.caption = "Avg"
	case u.host.ActiveUnits() > 1:
		u.caption = bounded(10, "%3d", u.host.UnitID(u.unit-1))
	}
}

// UpdateValues pulls a fresh sample and recomputes the display state and
// summary text.
func (u *UnitMeter) UpdateValues() {
	u.values.Reset()
	u.percent = 0

	if u.unit > u.host.ExistingUnits() {
		u.state = StateAbsent
		u.text = absentText
		u.pushHistory(0)
		return
	}

	percent := u.host.Provider.Fetch(u.unit, &u.values)
	if !model.Valid(percent) {
		u.values.Reset()
		u.state = StateOffline
		u.text = offlineText
		u.pushHistory(0)
		return
	}

	if !u.host.Settings.Detailed {
		u.values.Condense()
	}
	u.state = StateNormal
	u.percent = percent
	u.text = Summary(u.host.Settings, percent, &u.values)
	u.pushHistory(percent)
}

func (u *UnitMeter) pushHistory(v float64) {
	if len(u.history) >= historySize {
		u.history = append(u.history[:0], u.history[len(u.history)-historySize+1:]...)
	}
	u.history = append(u.history, v)
}

func (u *UnitMeter) State() DisplayState { return u.state }

// Text is the one-line summary from the last refresh.
func (u *UnitMeter) Text() string { return u.text }

func (u *UnitMeter) Percent() float64 { return u.percent }

func (u *UnitMeter) Values() model.SampleSet { return u.values }

// Segments is the expanded breakdown from the last refresh.
func (u *UnitMeter) Segments() []Segment {
	return Breakdown(u.host.Settings, u.state, u.percent, &u.values)
}

func (u *UnitMeter) Caption() string { return u.caption }

func (u *UnitMeter) UIName() string {
	if u.unit > 0 {
		return UnitMeterName + " " + strconv.Itoa(u.unit)
	}
	return UnitMeterName
}

func (u *UnitMeter) SetMode(m Mode) { u.mode = m }

func (u *UnitMeter) Mode() Mode { return u.mode }

func (u *UnitMeter) Height() int { return u.mode.Height() }

// Draw renders the meter into the w cells starting at (x, y).
func (u *UnitMeter) Draw(c *Canvas, x, y, w int) {
	switch u.mode {
	case ModeText:
		cw := c.Put(x, y, w, captionStyle.Render(u.caption))
		c.Put(x+cw, y, w-cw, RenderSegments(u.Segments()))
	case ModeGraph:
		u.drawGraph(c, x, y, w)
	default:
		u.drawBar(c, x, y, w)
	}
}

// Done releases the meter's buffers.
func (u *UnitMeter) Done() {
	u.history = nil
	u.text = ""
	u.values.Reset()
}

func (u *UnitMeter) barSlots() []model.Slot {
	if u.host.Settings.Detailed {
		return []model.Slot{
			model.SlotNice, model.SlotNormal, model.SlotKernel, model.SlotIRQ,
			model.SlotSoftIRQ, model.SlotSteal, model.SlotGuest, model.SlotIOWait,
		}
	}
	return []model.Slot{model.SlotNice, model.SlotNormal, model.SlotKernel, model.SlotGuest}
}

func (u *UnitMeter) drawBar(c *Canvas, x, y, w int) {
	cw := c.Put(x, y, w, captionStyle.Render(u.caption))
	x, w = x+cw, w-cw
	if w < 3 {
		return
	}

	inner := w - 2
	cells := make([]rune, inner)
	owner := make([]int, inner)
	for i := range cells {
		cells[i], owner[i] = ' ', ownerEmpty
	}

	pos := 0
	for _, slot := range u.barSlots() {
		v := u.values.Get(slot)
		if !model.Valid(v) {
			continue
		}
		n := int(math.Round(v / 100 * float64(inner)))
		for j := 0; j < n && pos < inner; j++ {
			cells[pos], owner[pos] = '|', int(slot)
			pos++
		}
	}

	txt := []rune(u.text)
	if len(txt) > inner {
		txt = txt[:inner]
	}
	start := inner - len(txt)
	for i, r := range txt {
		cells[start+i] = r
		if owner[start+i] == ownerEmpty {
			owner[start+i] = ownerText
		}
	}

	var b strings.Builder
	b.WriteString(bracketStyle.Render("["))
	for i := 0; i < inner; {
		j := i
		for j < inner && owner[j] == owner[i] {
			j++
		}
		run := string(cells[i:j])
		switch owner[i] {
		case ownerEmpty:
			b.WriteString(shadowStyle.Render(run))
		case ownerText:
			b.WriteString(textStyle.Render(run))
		default:
			b.WriteString(SlotStyle(model.Slot(owner[i])).Render(run))
		}
		i = j
	}
	b.WriteString(bracketStyle.Render("]"))

	c.Put(x, y, w, b.String())
}

func (u *UnitMeter) drawGraph(c *Canvas, x, y, w int) {
	cw := c.Put(x, y, w, captionStyle.Render(u.caption))
	x, w = x+cw, w-cw
	if w <= 0 {
		return
	}

	data := u.history
	if len(data) > w {
		data = data[len(data)-w:]
	}
	pad := strings.Repeat(" ", w-len(data))
	levels := len(graphBlocks)

	for r := 0; r < GraphHeight; r++ {
		floor := (GraphHeight - 1 - r) * levels
		var b strings.Builder
		b.WriteString(pad)
		for _, v := range data {
			v = math.Max(0, math.Min(100, v))
			level := int(math.Round(v/100*float64(GraphHeight*levels))) - floor
			switch {
			case level <= 0:
				b.WriteRune(' ')
			case level >= levels:
				b.WriteRune(graphBlocks[levels-1])
			default:
				b.WriteRune(graphBlocks[level-1])
			}
		}
		c.Put(x, y+r, w, graphStyle.Render(b.String()))
	}
}
