package meter

// Subset selects which CPUs a group meter covers.
type Subset int

const (
	SubsetAll Subset = iota
	SubsetFirstHalf
	SubsetSecondHalf
)

func (s Subset) String() string {
	switch s {
	case SubsetFirstHalf:
		return "first half"
	case SubsetSecondHalf:
		return "second half"
	default:
		return "all"
	}
}

// Range maps n units and a subset to a 0-based (offset, count) window.
// The first half gets the extra unit when n is odd. Unknown subsets
// behave like SubsetAll.
func Range(n int, s Subset) (offset, count int) {
	if n < 0 {
		n = 0
	}
	half := ceilDiv(n, 2)
	switch s {
	case SubsetFirstHalf:
		return 0, half
	case SubsetSecondHalf:
		return half, n - half
	default:
		return 0, n
	}
}
