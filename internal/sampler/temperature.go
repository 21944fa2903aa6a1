package sampler

import (
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/coremeter/internal/model"
)

var coreKey = regexp.MustCompile(`core_?(\d+)`)

// package-level sensors, in order of preference
var packageKeys = []string{"package_id", "tctl", "tdie", "cpu_thermal", "k10temp", "zenpower"}

// readTemperatures assigns each online CPU the reading of its physical
// core, or the package reading when there is no per-core sensor. The
// average meter gets the package reading, or the mean of the cores.
func (s *Sampler) readTemperatures(units []unitSample) {
	readings, err := s.sensors()
	if err != nil && len(readings) == 0 {
		s.log.Debug().Err(err).Msg("temperature sensors unavailable")
		return
	}

	cores := make(map[int]float64)
	pkg := math.NaN()
	for _, r := range readings {
		if r.Temperature <= 0 {
			continue
		}
		key := strings.ToLower(r.SensorKey)
		if m := coreKey.FindStringSubmatch(key); m != nil {
			id, _ := strconv.Atoi(m[1])
			if _, seen := cores[id]; !seen {
				cores[id] = r.Temperature
			}
			continue
		}
		if math.IsNaN(pkg) && isPackageKey(key) {
			pkg = r.Temperature
		}
	}

	for unit := 1; unit < len(units); unit++ {
		if !model.Valid(units[unit].percent) {
			continue
		}
		temp := pkg
		if v, ok := cores[s.coreID(unit-1)]; ok {
			temp = v
		}
		units[unit].set.Set(model.SlotTemperature, temp)
	}

	if model.Valid(units[0].percent) {
		avg := pkg
		if math.IsNaN(avg) && len(cores) > 0 {
			avg = 0
			for _, v := range cores {
				avg += v
			}
			avg /= float64(len(cores))
		}
		units[0].set.Set(model.SlotTemperature, avg)
	}
}

// coreID maps logical CPU idx to its physical core using the topology
// files, or to idx itself when they are missing.
func (s *Sampler) coreID(idx int) int {
	path := filepath.Join(s.SysRoot, "devices", "system", "cpu", "cpu"+strconv.Itoa(idx), "topology", "core_id")
	if b, err := os.ReadFile(path); err == nil {
		if id, err := strconv.Atoi(strings.TrimSpace(string(b))); err == nil {
			return id
		}
	}
	return idx
}

func isPackageKey(key string) bool {
	for _, k := range packageKeys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}
