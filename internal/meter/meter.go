package meter

import "strings"

// Meter is one dashboard widget. The dashboard calls Init once, then on
// every tick UpdateValues followed by Draw; SetMode whenever the display
// mode changes; Done when the meter is removed.
type Meter interface {
	Init()
	UpdateValues()
	Caption() string
	UIName() string
	SetMode(Mode)
	Mode() Mode
	Height() int
	Draw(c *Canvas, x, y, w int)
	Done()
}

var (
	_ Meter = (*UnitMeter)(nil)
	_ Meter = (*Group)(nil)
)

// New constructs the meter named by name. UnitMeterName gives a
// single-CPU meter for param (0 is the average); any other name is a
// group variant, with unknown names treated as all CPUs in one column.
func New(host *Host, param int, name string) Meter {
	if strings.EqualFold(strings.TrimSpace(name), UnitMeterName) {
		return NewUnitMeter(host, param)
	}
	return NewGroup(host, ParseVariant(name))
}

// FromSpec constructs a meter from a config entry such as "CPU:2" or
// "LeftCPUs4".
func FromSpec(host *Host, spec string) Meter {
	name, param := ParseSpec(spec)
	return New(host, param, name)
}
