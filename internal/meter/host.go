package meter

import (
	"github.com/Dicklesworthstone/coremeter/internal/config"
	"github.com/Dicklesworthstone/coremeter/internal/logger"
	"github.com/Dicklesworthstone/coremeter/internal/model"
	"github.com/rs/zerolog"
)

// Provider supplies per-CPU samples. Unit 0 is the average over all CPUs;
// units 1..ExistingUnits are individual CPUs. Fetch fills set and returns
// the overall usage percent, which is NaN or negative when the unit is
// offline. Calls must be fast and non-blocking.
type Provider interface {
	ExistingUnits() int
	ActiveUnits() int
	Fetch(unit int, set *model.SampleSet) float64
}

// Host is the context shared by every meter: the sample provider and the
// display settings.
type Host struct {
	Provider Provider
	Settings config.Meter
	log      zerolog.Logger
}

func NewHost(p Provider, settings config.Meter) *Host {
	return &Host{
		Provider: p,
		Settings: settings,
		log:      logger.With("meter"),
	}
}

func (h *Host) ExistingUnits() int { return h.Provider.ExistingUnits() }

func (h *Host) ActiveUnits() int { return h.Provider.ActiveUnits() }

// UnitID is the number shown for the CPU at 0-based index i.
func (h *Host) UnitID(i int) int {
	if h.Settings.CountFromOne {
		return i + 1
	}
	return i
}
