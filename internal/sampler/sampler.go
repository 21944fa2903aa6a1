package sampler

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	cmerrors "github.com/Dicklesworthstone/coremeter/internal/errors"
	"github.com/Dicklesworthstone/coremeter/internal/logger"
	"github.com/Dicklesworthstone/coremeter/internal/model"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/tklauser/numcpus"
)

const defaultSysRoot = "/sys"

type unitSample struct {
	set     model.SampleSet
	percent float64
}

// Sampler turns CPU time counters into per-unit samples. Update takes a
// new reading; Fetch serves the last one. It is not safe for concurrent
// use.
type Sampler struct {
	// SysRoot is where cpufreq and topology files are read from.
	SysRoot string

	times   func(percpu bool) ([]cpu.TimesStat, error)
	info    func() ([]cpu.InfoStat, error)
	sensors func() ([]host.TemperatureStat, error)
	present func() (int, error)
	online  func() (int, error)
	goos    string

	prevAvg  cpu.TimesStat
	prevUnit map[string]cpu.TimesStat
	infoMHz  map[int]float64

	units    []unitSample
	existing int
	active   int

	log zerolog.Logger
}

func New() *Sampler {
	return &Sampler{
		SysRoot:  defaultSysRoot,
		times:    cpu.Times,
		info:     cpu.Info,
		sensors:  host.SensorsTemperatures,
		present:  numcpus.GetPresent,
		online:   numcpus.GetOnline,
		goos:     runtime.GOOS,
		prevUnit: make(map[string]cpu.TimesStat),
		log:      logger.With("sampler"),
	}
}

// Probe checks that CPU counters can be read and takes the first reading.
func (s *Sampler) Probe() error {
	times, err := s.times(false)
	if err == nil && len(times) == 0 {
		err = os.ErrNotExist
	}
	if err != nil {
		return cmerrors.WrapWithCode(err, cmerrors.ErrSampler,
			"Cannot read CPU time counters",
			"coremeter needs /proc/stat on Linux or the platform CPU counters elsewhere")
	}

	s.infoMHz = make(map[int]float64)
	if infos, err := s.info(); err == nil {
		for i, in := range infos {
			if in.Mhz > 0 {
				s.infoMHz[i] = in.Mhz
			}
		}
	} else {
		s.log.Debug().Err(err).Msg("cpu info unavailable")
	}

	s.Update()
	s.log.Info().Int("existing", s.existing).Int("active", s.active).Msg("sampler ready")
	return nil
}

// Update reads the counters once and recomputes every unit.
func (s *Sampler) Update() {
	per, err := s.times(true)
	if err != nil {
		s.log.Debug().Err(err).Msg("per-cpu times unavailable")
	}
	s.existing, s.active = s.countUnits(per)

	units := make([]unitSample, s.existing+1)
	for i := range units {
		units[i].percent = math.NaN()
	}

	if total, err := s.times(false); err == nil && len(total) > 0 {
		units[0] = s.fill(total[0], s.prevAvg)
		s.prevAvg = total[0]
	} else if err != nil {
		s.log.Debug().Err(err).Msg("total cpu times unavailable")
	}

	for _, t := range per {
		idx, ok := cpuIndex(t.CPU)
		if !ok || idx+1 >= len(units) {
			continue
		}
		units[idx+1] = s.fill(t, s.prevUnit[t.CPU])
		s.prevUnit[t.CPU] = t
	}

	s.readFrequencies(units)
	s.readTemperatures(units)
	s.units = units
}

// countUnits prefers the kernel's present/online counts and falls back to
// the CPUs listed in the counters.
func (s *Sampler) countUnits(per []cpu.TimesStat) (existing, active int) {
	listed := 0
	for _, t := range per {
		if idx, ok := cpuIndex(t.CPU); ok && idx+1 > listed {
			listed = idx + 1
		}
	}

	existing, err := s.present()
	if err != nil || existing <= 0 {
		existing = listed
	}
	existing = max(existing, listed)

	active, err = s.online()
	if err != nil || active <= 0 {
		active = len(per)
	}
	return existing, min(active, existing)
}

// fill computes slot percentages from the counter delta between prev and
// cur. A zero prev yields the averages since boot.
func (s *Sampler) fill(cur, prev cpu.TimesStat) unitSample {
	d := func(a, b float64) float64 { return math.Max(a-b, 0) }

	user := d(cur.User-cur.Guest, prev.User-prev.Guest)
	nice := d(cur.Nice-cur.GuestNice, prev.Nice-prev.GuestNice)
	system := d(cur.System, prev.System)
	irq := d(cur.Irq, prev.Irq)
	softirq := d(cur.Softirq, prev.Softirq)
	idle := d(cur.Idle, prev.Idle)
	iowait := d(cur.Iowait, prev.Iowait)
	steal := d(cur.Steal, prev.Steal)
	guest := d(cur.Guest+cur.GuestNice, prev.Guest+prev.GuestNice)

	total := user + nice + system + irq + softirq + idle + iowait + steal + guest
	if total <= 0 {
		return unitSample{percent: math.NaN()}
	}
	pct := func(v float64) float64 { return v / total * 100 }

	var u unitSample
	u.set.Set(model.SlotNice, pct(nice))
	u.set.Set(model.SlotNormal, pct(user))
	u.set.Set(model.SlotKernel, pct(system))
	u.set.Set(model.SlotIRQ, pct(irq))
	u.set.Set(model.SlotSoftIRQ, pct(softirq))
	u.set.Set(model.SlotSteal, pct(steal))
	u.set.Set(model.SlotGuest, pct(guest))
	u.set.Set(model.SlotIOWait, pct(iowait))
	if s.goos != "linux" {
		u.set.Set(model.SlotSteal, math.NaN())
		u.set.Set(model.SlotGuest, math.NaN())
	}
	u.set.Set(model.SlotFrequency, math.NaN())
	u.set.Set(model.SlotTemperature, math.NaN())

	u.percent = math.Min(math.Max(100-pct(idle)-pct(iowait), 0), 100)
	return u
}

func (s *Sampler) readFrequencies(units []unitSample) {
	var sum float64
	var n int
	for unit := 1; unit < len(units); unit++ {
		if !model.Valid(units[unit].percent) {
			continue
		}
		mhz := s.frequency(unit - 1)
		units[unit].set.Set(model.SlotFrequency, mhz)
		if model.Valid(mhz) {
			sum += mhz
			n++
		}
	}
	if n > 0 && model.Valid(units[0].percent) {
		units[0].set.Set(model.SlotFrequency, sum/float64(n))
	}
}

// frequency reads the current clock of CPU idx in MHz, falling back to the
// nominal clock reported by cpu.Info.
func (s *Sampler) frequency(idx int) float64 {
	path := filepath.Join(s.SysRoot, "devices", "system", "cpu", "cpu"+strconv.Itoa(idx), "cpufreq", "scaling_cur_freq")
	if b, err := os.ReadFile(path); err == nil {
		if khz, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64); err == nil && khz > 0 {
			return khz / 1000
		}
	}
	if mhz, ok := s.infoMHz[idx]; ok {
		return mhz
	}
	return math.NaN()
}

// cpuIndex parses "cpu3" into 3.
func cpuIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "cpu")
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func (s *Sampler) ExistingUnits() int { return s.existing }

func (s *Sampler) ActiveUnits() int { return s.active }

// Fetch copies the last sample of unit into set and returns its usage
// percent, NaN when the unit is offline or unknown.
func (s *Sampler) Fetch(unit int, set *model.SampleSet) float64 {
	if unit < 0 || unit >= len(s.units) {
		set.Reset()
		return math.NaN()
	}
	u := s.units[unit]
	*set = u.set
	return u.percent
}
