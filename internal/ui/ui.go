package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/coremeter/internal/config"
	cmerrors "github.com/Dicklesworthstone/coremeter/internal/errors"
	"github.com/Dicklesworthstone/coremeter/internal/logger"
	"github.com/Dicklesworthstone/coremeter/internal/meter"
)

const defaultWidth = 80

// Source is a meter provider that can take a fresh reading.
type Source interface {
	meter.Provider
	Update()
}

// Model drives the configured meters from a single tick loop.
type Model struct {
	cfg     config.Config
	source  Source
	host    *meter.Host
	meters  []meter.Meter
	mode    meter.Mode
	help    help.Model
	updated time.Time
	width   int
	height  int
	log     zerolog.Logger
}

func New(cfg config.Config, src Source) *Model {
	m := &Model{
		cfg:    cfg,
		source: src,
		host:   meter.NewHost(src, cfg.Meter),
		mode:   meter.ParseMode(cfg.Mode),
		help:   help.New(),
		width:  defaultWidth,
		log:    logger.With("ui"),
	}
	for _, spec := range cfg.Meters {
		mt := meter.FromSpec(m.host, spec)
		mt.Init()
		mt.SetMode(m.mode)
		m.meters = append(m.meters, mt)
		m.log.Debug().Str("meter", spec).Str("ui_name", mt.UIName()).Msg("meter added")
	}
	return m
}

// Messages
type tickMsg time.Time

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tickMsg:
		m.refresh(time.Time(msg))
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		m.close()
		return tea.Quit
	case key.Matches(msg, keys.Mode):
		m.setMode(m.mode.Next())
	case key.Matches(msg, keys.Detailed):
		m.host.Settings.Detailed = !m.host.Settings.Detailed
		m.refresh(time.Now())
	case key.Matches(msg, keys.Fahrenheit):
		m.host.Settings.Fahrenheit = !m.host.Settings.Fahrenheit
		m.refresh(time.Now())
	case key.Matches(msg, keys.Refresh):
		m.refresh(time.Now())
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) setMode(mode meter.Mode) {
	m.mode = mode
	for _, mt := range m.meters {
		mt.SetMode(mode)
	}
	m.log.Debug().Stringer("mode", mode).Msg("mode changed")
}

// refresh takes one reading and updates every meter.
func (m *Model) refresh(now time.Time) {
	m.source.Update()
	for _, mt := range m.meters {
		mt.UpdateValues()
	}
	m.updated = now
}

func (m *Model) close() {
	for _, mt := range m.meters {
		mt.Done()
	}
	m.meters = nil
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)
)

func (m *Model) View() string {
	header, footer := m.header(), m.help.View(keys)
	rows := 0
	if m.height > 0 {
		rows = max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-cardStyle.GetVerticalFrameSize(), 1)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.body(rows), footer)
}

func (m *Model) header() string {
	status := m.mode.String() + " mode"
	if m.host.Settings.Detailed {
		status += ", detailed"
	}
	if !m.updated.IsZero() {
		status += "  " + m.updated.Format("15:04:05")
	}
	return titleStyle.Render("coremeter") + "  " + subtleStyle.Render(status)
}

// body draws every meter stacked in a bordered card, keeping at most
// maxRows meter rows when maxRows is positive.
func (m *Model) body(maxRows int) string {
	inner := max(m.width-cardStyle.GetHorizontalFrameSize(), 1)
	c := meter.NewCanvas(inner)
	y := 0
	for _, mt := range m.meters {
		mt.Draw(c, 0, y, inner)
		y += mt.Height()
	}
	lines := c.Lines()
	for len(lines) < y {
		lines = append(lines, "")
	}
	if maxRows > 0 && len(lines) > maxRows {
		lines = lines[:maxRows]
	}
	return cardStyle.Width(inner + cardStyle.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// Snapshot refreshes once and renders the meters without the key help,
// for non-interactive output.
func Snapshot(cfg config.Config, src Source, width int) string {
	m := New(cfg, src)
	defer m.close()
	if width > 0 {
		m.width = width
	}
	m.refresh(time.Now())
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.body(0))
}

// RunTUI starts the Bubble Tea program.
func RunTUI(cfg config.Config, src Source) error {
	prog := tea.NewProgram(New(cfg, src), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return cmerrors.WrapWithCode(err, cmerrors.ErrTerminal,
			"Terminal UI stopped unexpectedly",
			"Run with --once to print a single frame instead")
	}
	return nil
}
