package model

import "math"

// Slot indexes one value inside a SampleSet. Positions are fixed.
type Slot int

const (
	SlotNice Slot = iota
	SlotNormal
	SlotKernel
	SlotIRQ
	SlotSoftIRQ
	SlotSteal
	SlotGuest
	SlotIOWait
	SlotFrequency
	SlotTemperature
	SlotCount // number of slots, not a slot
)

var slotNames = [SlotCount]string{
	"nice", "normal", "kernel", "irq", "softirq",
	"steal", "guest", "iowait", "frequency", "temperature",
}

func (s Slot) String() string {
	if s < 0 || s >= SlotCount {
		return "unknown"
	}
	return slotNames[s]
}

// SampleSet is one refresh worth of values for a single CPU unit.
// Percent slots are 0-100, frequency is MHz, temperature is Celsius.
type SampleSet struct {
	Values [SlotCount]float64
}

// Get returns the value in slot, or NaN for a slot outside the set.
func (s *SampleSet) Get(slot Slot) float64 {
	if slot < 0 || slot >= SlotCount {
		return math.NaN()
	}
	return s.Values[slot]
}

// Set stores v in slot. Out-of-range slots are ignored.
func (s *SampleSet) Set(slot Slot, v float64) {
	if slot < 0 || slot >= SlotCount {
		return
	}
	s.Values[slot] = v
}

// Reset zeroes every slot.
func (s *SampleSet) Reset() { *s = SampleSet{} }

// Condense folds the detailed breakdown into the short form: irq and
// softirq are charged to kernel time, steal and guest are summed into the
// guest slot as virtualization time. Steal becomes NaN.
func (s *SampleSet) Condense() {
	v := &s.Values
	v[SlotKernel] += nonNegative(v[SlotIRQ]) + nonNegative(v[SlotSoftIRQ])
	v[SlotIRQ], v[SlotSoftIRQ] = 0, 0

	switch steal, guest := v[SlotSteal], v[SlotGuest]; {
	case Valid(steal) && Valid(guest):
		v[SlotGuest] = steal + guest
	case Valid(steal):
		v[SlotGuest] = steal
	case Valid(guest):
		v[SlotGuest] = guest
	default:
		v[SlotGuest] = math.NaN()
	}
	v[SlotSteal] = math.NaN()
}

// Valid reports whether v is a usable, finite, non-negative number.
func Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func nonNegative(v float64) float64 {
	if Valid(v) {
		return v
	}
	return 0
}
