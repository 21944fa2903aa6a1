package meter

// Pool owns the per-CPU meters of a group. Its size is fixed the first
// time it is initialized; slot i always holds the meter for unit
// offset+i+1.
type Pool struct {
	meters    []*UnitMeter
	allocated bool
}

// EnsureInitialized allocates count slots on first use, constructs any
// slot that is still empty and initializes every meter. Later calls keep
// the original size and never replace an existing meter.
func (p *Pool) EnsureInitialized(host *Host, offset, count int) {
	if !p.allocated {
		p.meters = make([]*UnitMeter, max(count, 0))
		p.allocated = true
		host.log.Debug().Int("offset", offset).Int("count", count).Msg("cpu meter pool allocated")
	}

	for i, m := range p.meters {
		if m == nil {
			m = NewUnitMeter(host, offset+i+1)
			p.meters[i] = m
		}
		m.Init()
	}
}

// Len is the number of slots.
func (p *Pool) Len() int { return len(p.meters) }

// At returns the meter in slot i, nil if the slot is empty.
func (p *Pool) At(i int) *UnitMeter { return p.meters[i] }

// Units lists the bound unit of every constructed slot in slot order.
func (p *Pool) Units() []int {
	units := make([]int, 0, len(p.meters))
	for _, m := range p.meters {
		if m != nil {
			units = append(units, m.Unit())
		}
	}
	return units
}

// RefreshAll updates every meter in slot order.
func (p *Pool) RefreshAll() {
	for _, m := range p.meters {
		if m != nil {
			m.UpdateValues()
		}
	}
}

// SetMode applies the same mode to every meter.
func (p *Pool) SetMode(mode Mode) {
	for _, m := range p.meters {
		if m != nil {
			m.SetMode(mode)
		}
	}
}

// Destroy releases every meter, then the slot storage.
func (p *Pool) Destroy() {
	for i, m := range p.meters {
		if m != nil {
			m.Done()
		}
		p.meters[i] = nil
	}
	p.meters = nil
	p.allocated = false
}
