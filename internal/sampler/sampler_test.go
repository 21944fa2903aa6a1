package sampler

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	cmerrors "github.com/Dicklesworthstone/coremeter/internal/errors"
	"github.com/Dicklesworthstone/coremeter/internal/model"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCounters serves one reading per Update; the last one repeats. A
// per-cpu read advances the tick, the total read that follows shares it.
type fakeCounters struct {
	total [][]cpu.TimesStat
	per   [][]cpu.TimesStat
	tick  int
}

func (f *fakeCounters) times(percpu bool) ([]cpu.TimesStat, error) {
	src := f.total
	if percpu {
		src = f.per
		f.tick++
	}
	if len(src) == 0 {
		return nil, errors.New("no counters")
	}
	i := max(min(f.tick, len(src))-1, 0)
	return src[i], nil
}

func newTestSampler(t *testing.T, f *fakeCounters) *Sampler {
	t.Helper()
	s := New()
	s.SysRoot = t.TempDir()
	s.times = f.times
	s.info = func() ([]cpu.InfoStat, error) { return nil, errors.New("no info") }
	s.sensors = func() ([]host.TemperatureStat, error) { return nil, nil }
	s.present = func() (int, error) { return 0, errors.New("unsupported") }
	s.online = func() (int, error) { return 0, errors.New("unsupported") }
	s.goos = "linux"
	return s
}

func writeSys(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func twoTicks() *fakeCounters {
	return &fakeCounters{
		total: [][]cpu.TimesStat{
			{{CPU: "cpu-total", User: 200, System: 100, Idle: 1700}},
			{{CPU: "cpu-total", User: 400, System: 200, Idle: 3400}},
		},
		per: [][]cpu.TimesStat{
			{
				{CPU: "cpu0", User: 100, System: 50, Idle: 850},
				{CPU: "cpu1", User: 100, System: 50, Idle: 850},
			},
			{
				{CPU: "cpu0", User: 200, Nice: 50, System: 100, Irq: 10, Softirq: 20, Iowait: 20, Idle: 1600},
				{CPU: "cpu1", User: 100, System: 50, Idle: 1850},
			},
		},
	}
}

func TestProbe_NoCounters(t *testing.T) {
	s := newTestSampler(t, &fakeCounters{})
	err := s.Probe()
	require.Error(t, err)
	assert.True(t, cmerrors.IsCode(err, cmerrors.ErrSampler))
}

func TestUpdate_Deltas(t *testing.T) {
	f := twoTicks()
	s := newTestSampler(t, f)
	require.NoError(t, s.Probe())
	assert.Equal(t, 2, s.ExistingUnits())
	assert.Equal(t, 2, s.ActiveUnits())

	s.Update()

	var set model.SampleSet
	pct := s.Fetch(1, &set)
	// cpu0 delta: user 100 nice 50 system 50 irq 10 softirq 20 iowait 20 idle 750
	assert.InDelta(t, 23.0, pct, 1e-9)
	assert.InDelta(t, 10.0, set.Get(model.SlotNormal), 1e-9)
	assert.InDelta(t, 5.0, set.Get(model.SlotNice), 1e-9)
	assert.InDelta(t, 5.0, set.Get(model.SlotKernel), 1e-9)
	assert.InDelta(t, 1.0, set.Get(model.SlotIRQ), 1e-9)
	assert.InDelta(t, 2.0, set.Get(model.SlotSoftIRQ), 1e-9)
	assert.InDelta(t, 2.0, set.Get(model.SlotIOWait), 1e-9)
	assert.Equal(t, 0.0, set.Get(model.SlotSteal))

	pct = s.Fetch(2, &set)
	assert.InDelta(t, 0.0, pct, 1e-9)

	pct = s.Fetch(0, &set)
	assert.InDelta(t, 15.0, pct, 1e-9)
}

func TestUpdate_GuestIsSplitFromUser(t *testing.T) {
	f := &fakeCounters{
		total: [][]cpu.TimesStat{{{CPU: "cpu-total", Idle: 1}}},
		per: [][]cpu.TimesStat{
			{{CPU: "cpu0", User: 300, Guest: 100, Nice: 50, GuestNice: 50, Steal: 100, Idle: 500}},
		},
	}
	s := newTestSampler(t, f)
	require.NoError(t, s.Probe())

	var set model.SampleSet
	s.Fetch(1, &set)
	// total = user 200 + nice 0 + steal 100 + guest 150 + idle 500 = 950
	assert.InDelta(t, 200.0/950*100, set.Get(model.SlotNormal), 1e-9)
	assert.InDelta(t, 0.0, set.Get(model.SlotNice), 1e-9)
	assert.InDelta(t, 150.0/950*100, set.Get(model.SlotGuest), 1e-9)
	assert.InDelta(t, 100.0/950*100, set.Get(model.SlotSteal), 1e-9)
}

func TestUpdate_NonLinuxHasNoStealOrGuest(t *testing.T) {
	s := newTestSampler(t, twoTicks())
	s.goos = "darwin"
	require.NoError(t, s.Probe())

	var set model.SampleSet
	s.Fetch(1, &set)
	assert.True(t, math.IsNaN(set.Get(model.SlotSteal)))
	assert.True(t, math.IsNaN(set.Get(model.SlotGuest)))
}

func TestUpdate_MissingCPUIsOffline(t *testing.T) {
	f := &fakeCounters{
		total: [][]cpu.TimesStat{{{CPU: "cpu-total", User: 10, Idle: 90}}},
		per: [][]cpu.TimesStat{{
			{CPU: "cpu0", User: 10, Idle: 90},
			{CPU: "cpu2", User: 10, Idle: 90},
		}},
	}
	s := newTestSampler(t, f)
	s.present = func() (int, error) { return 4, nil }
	s.online = func() (int, error) { return 2, nil }
	require.NoError(t, s.Probe())

	assert.Equal(t, 4, s.ExistingUnits())
	assert.Equal(t, 2, s.ActiveUnits())

	var set model.SampleSet
	assert.False(t, model.Valid(s.Fetch(2, &set)), "cpu1 is not listed")
	assert.True(t, model.Valid(s.Fetch(3, &set)))
	assert.False(t, model.Valid(s.Fetch(4, &set)))
	assert.False(t, model.Valid(s.Fetch(9, &set)))
	assert.False(t, model.Valid(s.Fetch(-1, &set)))
}

func TestUpdate_Frequency(t *testing.T) {
	s := newTestSampler(t, twoTicks())
	writeSys(t, s.SysRoot, "devices/system/cpu/cpu0/cpufreq/scaling_cur_freq", "2400000\n")
	s.info = func() ([]cpu.InfoStat, error) {
		return []cpu.InfoStat{{Mhz: 1800}, {Mhz: 1800}}, nil
	}
	require.NoError(t, s.Probe())

	var set model.SampleSet
	s.Fetch(1, &set)
	assert.Equal(t, 2400.0, set.Get(model.SlotFrequency))
	s.Fetch(2, &set)
	assert.Equal(t, 1800.0, set.Get(model.SlotFrequency), "falls back to cpu info")
	s.Fetch(0, &set)
	assert.Equal(t, 2100.0, set.Get(model.SlotFrequency))
}

func TestUpdate_FrequencyUnavailable(t *testing.T) {
	s := newTestSampler(t, twoTicks())
	require.NoError(t, s.Probe())

	var set model.SampleSet
	s.Fetch(1, &set)
	assert.True(t, math.IsNaN(set.Get(model.SlotFrequency)))
	s.Fetch(0, &set)
	assert.True(t, math.IsNaN(set.Get(model.SlotFrequency)))
}

func TestUpdate_Temperature(t *testing.T) {
	s := newTestSampler(t, twoTicks())
	writeSys(t, s.SysRoot, "devices/system/cpu/cpu1/topology/core_id", "0\n")
	s.sensors = func() ([]host.TemperatureStat, error) {
		return []host.TemperatureStat{
			{SensorKey: "coretemp_package_id_0", Temperature: 50},
			{SensorKey: "coretemp_core_0", Temperature: 44},
			{SensorKey: "nvme_composite", Temperature: 38},
		}, nil
	}
	require.NoError(t, s.Probe())

	var set model.SampleSet
	s.Fetch(1, &set)
	assert.Equal(t, 44.0, set.Get(model.SlotTemperature))
	s.Fetch(2, &set)
	assert.Equal(t, 44.0, set.Get(model.SlotTemperature), "cpu1 shares core 0")
	s.Fetch(0, &set)
	assert.Equal(t, 50.0, set.Get(model.SlotTemperature))
}

func TestUpdate_TemperatureFallsBackToPackage(t *testing.T) {
	s := newTestSampler(t, twoTicks())
	s.sensors = func() ([]host.TemperatureStat, error) {
		return []host.TemperatureStat{{SensorKey: "k10temp_tctl", Temperature: 61.5}}, nil
	}
	require.NoError(t, s.Probe())

	var set model.SampleSet
	s.Fetch(2, &set)
	assert.Equal(t, 61.5, set.Get(model.SlotTemperature))
}

func TestUpdate_NoSensors(t *testing.T) {
	s := newTestSampler(t, twoTicks())
	s.sensors = func() ([]host.TemperatureStat, error) { return nil, errors.New("not implemented") }
	require.NoError(t, s.Probe())

	var set model.SampleSet
	s.Fetch(1, &set)
	assert.True(t, math.IsNaN(set.Get(model.SlotTemperature)))
}

func TestCPUIndex(t *testing.T) {
	idx, ok := cpuIndex("cpu12")
	assert.True(t, ok)
	assert.Equal(t, 12, idx)

	_, ok = cpuIndex("cpu-total")
	assert.False(t, ok)
	_, ok = cpuIndex("gpu0")
	assert.False(t, ok)
}
