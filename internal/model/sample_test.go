package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleSet_GetOutOfRange(t *testing.T) {
	var s SampleSet
	assert.True(t, math.IsNaN(s.Get(SlotCount)))
	assert.True(t, math.IsNaN(s.Get(Slot(-1))))

	s.Set(SlotCount, 5)
	s.Set(SlotFrequency, 2400)
	assert.Equal(t, 2400.0, s.Get(SlotFrequency))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want bool
	}{
		{"zero", 0, true},
		{"positive", 57.3, true},
		{"negative", -1, false},
		{"nan", math.NaN(), false},
		{"inf", math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.v))
		})
	}
}

func TestSampleSet_Condense(t *testing.T) {
	var s SampleSet
	s.Set(SlotKernel, 10)
	s.Set(SlotIRQ, 2)
	s.Set(SlotSoftIRQ, 3)
	s.Set(SlotSteal, 1)
	s.Set(SlotGuest, 4)

	s.Condense()

	assert.Equal(t, 15.0, s.Get(SlotKernel))
	assert.Equal(t, 0.0, s.Get(SlotIRQ))
	assert.Equal(t, 0.0, s.Get(SlotSoftIRQ))
	assert.Equal(t, 5.0, s.Get(SlotGuest))
	assert.True(t, math.IsNaN(s.Get(SlotSteal)))
}

func TestSampleSet_CondenseUnsupportedVirtualization(t *testing.T) {
	var s SampleSet
	s.Set(SlotSteal, math.NaN())
	s.Set(SlotGuest, math.NaN())

	s.Condense()

	assert.False(t, Valid(s.Get(SlotGuest)))
}

func TestSlot_String(t *testing.T) {
	assert.Equal(t, "nice", SlotNice.String())
	assert.Equal(t, "iowait", SlotIOWait.String())
	assert.Equal(t, "temperature", SlotTemperature.String())
	assert.Equal(t, "unknown", SlotCount.String())
}
