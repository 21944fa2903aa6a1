package cli

import (
	"encoding/json"
	"io"

	"github.com/Dicklesworthstone/coremeter/internal/config"
	"github.com/Dicklesworthstone/coremeter/internal/meter"
	"github.com/Dicklesworthstone/coremeter/internal/model"
)

// JSONEnvelope wraps --json output.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// Reading is one CPU's state in --json output. Slots that are missing or
// not sampled on this platform are omitted.
type Reading struct {
	Unit    int                `json:"unit"`
	Caption string             `json:"caption"`
	State   string             `json:"state"`
	Percent float64            `json:"percent"`
	Text    string             `json:"text"`
	Values  map[string]float64 `json:"values,omitempty"`
}

// Readings samples the average and every existing CPU once.
func Readings(p meter.Provider, settings config.Meter) []Reading {
	host := meter.NewHost(p, settings)
	n := p.ExistingUnits()
	out := make([]Reading, 0, n+1)

	for unit := 0; unit <= n; unit++ {
		m := meter.NewUnitMeter(host, unit)
		m.Init()
		m.UpdateValues()

		r := Reading{
			Unit:    unit,
			Caption: m.Caption(),
			State:   m.State().String(),
			Percent: m.Percent(),
			Text:    m.Text(),
		}
		if m.State() == meter.StateNormal {
			vals := m.Values()
			r.Values = make(map[string]float64)
			for slot := model.Slot(0); slot < model.SlotCount; slot++ {
				if v := vals.Get(slot); model.Valid(v) {
					r.Values[slot.String()] = v
				}
			}
		}
		m.Done()
		out = append(out, r)
	}
	return out
}

func writeReadings(w io.Writer, p meter.Provider, settings config.Meter) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(JSONEnvelope{Success: true, Data: Readings(p, settings)})
}
