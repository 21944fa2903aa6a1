package meter

import (
	"strconv"
	"strings"
)

// UnitMeterName selects a single-CPU meter instead of a group.
const UnitMeterName = "CPU"

// Variant describes one group meter kind: which CPUs it covers and how
// many columns it lays them out in.
type Variant struct {
	Name        string
	UIName      string
	Description string
	Subset      Subset
	Columns     int
}

var variants = []Variant{
	{"AllCPUs", "CPUs (1/1)", "CPUs (1/1): all CPUs", SubsetAll, 1},
	{"AllCPUs2", "CPUs (1&2/2)", "CPUs (1&2/2): all CPUs in 2 shorter columns", SubsetAll, 2},
	{"LeftCPUs", "CPUs (1/2)", "CPUs (1/2): first half of list", SubsetFirstHalf, 1},
	{"RightCPUs", "CPUs (2/2)", "CPUs (2/2): second half of list", SubsetSecondHalf, 1},
	{"LeftCPUs2", "CPUs (1&2/4)", "CPUs (1&2/4): first half in 2 shorter columns", SubsetFirstHalf, 2},
	{"RightCPUs2", "CPUs (3&4/4)", "CPUs (3&4/4): second half in 2 shorter columns", SubsetSecondHalf, 2},
	{"AllCPUs4", "CPUs (1&2&3&4/4)", "CPUs (1&2&3&4/4): all CPUs in 4 shorter columns", SubsetAll, 4},
	{"LeftCPUs4", "CPUs (1-4/8)", "CPUs (1-4/8): first half in 4 shorter columns", SubsetFirstHalf, 4},
	{"RightCPUs4", "CPUs (5-8/8)", "CPUs (5-8/8): second half in 4 shorter columns", SubsetSecondHalf, 4},
	{"AllCPUs8", "CPUs (1-8/8)", "CPUs (1-8/8): all CPUs in 8 shorter columns", SubsetAll, 8},
	{"LeftCPUs8", "CPUs (1-8/16)", "CPUs (1-8/16): first half in 8 shorter columns", SubsetFirstHalf, 8},
	{"RightCPUs8", "CPUs (9-16/16)", "CPUs (9-16/16): second half in 8 shorter columns", SubsetSecondHalf, 8},
}

// Variants returns every group variant in display order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// LookupVariant finds a variant by name, ignoring case.
func LookupVariant(name string) (Variant, bool) {
	for _, v := range variants {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variant{}, false
}

// ParseVariant is LookupVariant with unknown names falling back to
// all CPUs in one column.
func ParseVariant(name string) Variant {
	if v, ok := LookupVariant(name); ok {
		return v
	}
	return variants[0]
}

// ParseSpec splits a meter entry from config into a name and a parameter.
// "CPU:3" selects CPU 3, plain "CPU" is the average meter, and group
// names carry no parameter. The CPU name matches in any case.
func ParseSpec(spec string) (name string, param int) {
	name, arg, found := strings.Cut(strings.TrimSpace(spec), ":")
	name = strings.TrimSpace(name)
	if !strings.EqualFold(name, UnitMeterName) {
		return name, 0
	}
	if !found {
		return UnitMeterName, 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 0 {
		return UnitMeterName, 0
	}
	return UnitMeterName, n
}
