package meter

import (
	"github.com/Dicklesworthstone/coremeter/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Color tokens for meter text and bar segments.
var (
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	bracketStyle = lipgloss.NewStyle().Bold(true)
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	shadowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	slotStyles = [model.SlotCount]lipgloss.Style{
		model.SlotNice:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		model.SlotNormal:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		model.SlotKernel:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		model.SlotIRQ:         lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.SlotSoftIRQ:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		model.SlotSteal:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		model.SlotGuest:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		model.SlotIOWait:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true),
		model.SlotFrequency:   valueStyle,
		model.SlotTemperature: valueStyle,
	}
)

// SlotStyle is the color token for a sample slot.
func SlotStyle(slot model.Slot) lipgloss.Style {
	if slot < 0 || slot >= model.SlotCount {
		return textStyle
	}
	return slotStyles[slot]
}
