package meter

import "strings"

// Mode is how a meter draws itself.
type Mode int

const (
	ModeBar Mode = iota
	ModeText
	ModeGraph
	modeCount
)

// GraphHeight is the number of rows a graph-mode meter occupies.
const GraphHeight = 4

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeGraph:
		return "graph"
	default:
		return "bar"
	}
}

// Height is the number of rows one meter in this mode occupies.
func (m Mode) Height() int {
	if m == ModeGraph {
		return GraphHeight
	}
	return 1
}

// Next cycles to the following mode.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % int(modeCount))
}

// ParseMode maps a mode name to a Mode; unknown names are bar mode.
func ParseMode(name string) Mode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text":
		return ModeText
	case "graph":
		return ModeGraph
	default:
		return ModeBar
	}
}
