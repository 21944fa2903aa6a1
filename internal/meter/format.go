package meter

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Dicklesworthstone/coremeter/internal/config"
	"github.com/Dicklesworthstone/coremeter/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Field buffer sizes in bytes. Like fixed C buffers, a field keeps at most
// size-1 bytes of its formatted text.
const (
	usageBufSize       = 8
	frequencyBufSize   = 16
	temperatureBufSize = 16
	textBufSize        = 256
	segmentBufSize     = 50
	breakdownFieldSize = 10
)

const (
	absentText  = "absent"
	offlineText = "offline"
	naText      = "N/A"
	degreeSign  = "°"
)

// DisplayState is the per-refresh state of a CPU meter.
type DisplayState int

const (
	StateNormal DisplayState = iota
	StateOffline
	StateAbsent
)

func (s DisplayState) String() string {
	switch s {
	case StateOffline:
		return offlineText
	case StateAbsent:
		return absentText
	default:
		return "normal"
	}
}

// bounded formats like fmt.Sprintf and truncates the result to size-1
// bytes without splitting a rune.
func bounded(size int, format string, args ...any) string {
	if size <= 1 {
		return ""
	}
	s := fmt.Sprintf(format, args...)
	if len(s) < size {
		return s
	}
	s = s[:size-1]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// Summary is the one-line text of a CPU meter in the normal state: usage,
// frequency and temperature, each only when enabled, separated by single
// spaces.
func Summary(settings config.Meter, percent float64, set *model.SampleSet) string {
	var usage, freq, temp string

	if settings.ShowUsage {
		usage = bounded(usageBufSize, "%.1f%%", percent)
	}

	if settings.ShowFrequency {
		if f := set.Get(model.SlotFrequency); model.Valid(f) {
			freq = bounded(frequencyBufSize, "%4dMHz", uint(f))
		} else {
			freq = naText
		}
	}

	if settings.ShowTemperature {
		temp = formatTemperature(temperatureBufSize, "%.1f", set.Get(model.SlotTemperature), settings.Fahrenheit)
	}

	present := make([]string, 0, 3)
	for _, part := range []string{usage, freq, temp} {
		if part != "" {
			present = append(present, part)
		}
	}
	return bounded(textBufSize, "%s", strings.Join(present, " "))
}

// formatTemperature renders celsius with a unit suffix, or N/A when the
// sensor reading is missing.
func formatTemperature(size int, numFormat string, celsius float64, fahrenheit bool) string {
	if math.IsNaN(celsius) || math.IsInf(celsius, 0) {
		return naText
	}
	if fahrenheit {
		return bounded(size, numFormat+"%sF", celsius*9/5+32, degreeSign)
	}
	return bounded(size, numFormat+"%sC", celsius, degreeSign)
}

// Segment is one labelled, styled field of the expanded CPU breakdown.
type Segment struct {
	Label string
	Value string
	Style lipgloss.Style
}

// Breakdown builds the expanded text of a CPU meter. Detailed mode lists
// every time component, condensed mode only system, low priority and
// virtualization. Steal, guest and virtualization are left out unless
// their sample is a valid non-negative number.
func Breakdown(settings config.Meter, state DisplayState, percent float64, set *model.SampleSet) []Segment {
	switch state {
	case StateAbsent:
		return []Segment{{Value: " " + absentText, Style: shadowStyle}}
	case StateOffline:
		return []Segment{{Value: " " + offlineText, Style: shadowStyle}}
	}

	segs := []Segment{{Label: ":", Value: percentField(percent), Style: SlotStyle(model.SlotNormal)}}
	add := func(label string, slot model.Slot) {
		segs = append(segs, Segment{Label: label, Value: percentField(set.Get(slot)), Style: SlotStyle(slot)})
	}
	addValid := func(label string, slot model.Slot) {
		if model.Valid(set.Get(slot)) {
			add(label, slot)
		}
	}

	if settings.Detailed {
		add("sy:", model.SlotKernel)
		add("ni:", model.SlotNice)
		add("hi:", model.SlotIRQ)
		add("si:", model.SlotSoftIRQ)
		addValid("st:", model.SlotSteal)
		addValid("gu:", model.SlotGuest)
		add("wa:", model.SlotIOWait)
	} else {
		add("sys:", model.SlotKernel)
		add("low:", model.SlotNice)
		addValid("vir:", model.SlotGuest)
	}

	if settings.ShowFrequency {
		value := "N/A     "
		if f := set.Get(model.SlotFrequency); model.Valid(f) {
			value = bounded(breakdownFieldSize, "%4dMHz ", uint(f))
		}
		segs = append(segs, Segment{Label: "freq: ", Value: value, Style: valueStyle})
	}

	if settings.ShowTemperature {
		value := formatTemperature(breakdownFieldSize, "%5.1f", set.Get(model.SlotTemperature), settings.Fahrenheit)
		segs = append(segs, Segment{Label: "temp:", Value: value, Style: valueStyle})
	}

	return segs
}

func percentField(v float64) string {
	return bounded(segmentBufSize, "%5.1f%% ", v)
}

// PlainText joins segments without styling.
func PlainText(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Label)
		b.WriteString(s.Value)
	}
	return b.String()
}

// RenderSegments joins segments with labels in the text color and values
// in their own color.
func RenderSegments(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Label != "" {
			b.WriteString(textStyle.Render(s.Label))
		}
		b.WriteString(s.Style.Render(s.Value))
	}
	return b.String()
}
