package sim

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"swarmsim/internal/config"
	"swarmsim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a telemetry log line for the viewport.
type logMsg struct{ line string }

// eventMsg carries an event log line.
type eventMsg struct{ line string }

// stateMsg carries a simulation state update.
type stateMsg struct{ telemetry.SimulationStateRow }

// swarmPosMsg updates the map layer.
type swarmPosMsg struct{ telemetry.SwarmRow }

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"

	maxLogLines         = 1000
	maxSectionHeightPct = 0.25
)

// stateColors maps macro states to ANSI colors for log lines and the map.
var stateColors = map[string]string{
	"dormant":     colorGray,
	"gathering":   colorBlue,
	"searching":   colorCyan,
	"pursuing":    colorYellow,
	"attacking":   colorRed,
	"reforming":   colorGreen,
	"fleeing":     colorMagenta,
	"dissipating": colorGray,
}

// TUIWriter renders swarm telemetry using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.SimulationConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements SwarmWriter.
func (w *TUIWriter) Write(row telemetry.SwarmRow) error {
	sc := stateColors[row.State]
	if sc == "" {
		sc = colorGray
	}
	line := fmt.Sprintf("%s[%s]%s %scluster=%s%s %sswarm=%s%s %spos=(%.1f,%.1f,%.1f)%s %sstate=%s%s %sform=%s%s %sblend=%.2f%s %shp=%.1f%s %sunits=%d%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, row.ClusterID, colorReset,
		colorCyan, shortID(row.SwarmID), colorReset,
		colorGreen, row.X, row.Y, row.Z, colorReset,
		sc, row.State, colorReset,
		colorMagenta, row.Formation, colorReset,
		colorYellow, row.Blend, colorReset,
		colorGreen, row.Health, colorReset,
		colorBlue, row.Units, colorReset)
	if row.Ambushing {
		line += fmt.Sprintf(" %sambush%s", colorRed, colorReset)
	}
	w.program.Send(logMsg{line: line})
	w.program.Send(swarmPosMsg{row})
	return nil
}

// WriteBatch outputs multiple swarm rows.
func (w *TUIWriter) WriteBatch(rows []telemetry.SwarmRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteEvent implements EventWriter.
func (w *TUIWriter) WriteEvent(e telemetry.EventRow) error {
	line := fmt.Sprintf("%s[%s]%s %sEVENT%s %skind=%s%s %sswarm=%s%s %sstate=%s%s %sform=%s%s",
		colorGray, e.Timestamp.Format(time.RFC3339), colorReset,
		colorRed, colorReset,
		colorYellow, e.Kind, colorReset,
		colorCyan, shortID(e.SwarmID), colorReset,
		colorBlue, e.State, colorReset,
		colorMagenta, e.Formation, colorReset)
	if len(e.PeerIDs) > 0 {
		line += fmt.Sprintf(" %speers=%d%s", colorGreen, len(e.PeerIDs), colorReset)
	}
	w.program.Send(eventMsg{line: line})
	return nil
}

// WriteEvents outputs multiple event rows.
func (w *TUIWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, e := range rows {
		_ = w.WriteEvent(e)
	}
	return nil
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(row telemetry.SimulationStateRow) error {
	w.program.Send(stateMsg{SimulationStateRow: row})
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

// shortID trims the uuid tail off registry ids for display.
func shortID(id string) string {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) < 3 {
		return id
	}
	return parts[0] + "-" + parts[1]
}

type swarmMapEntry struct {
	x, z  float64
	state string
}

type tuiModel struct {
	cfg          *config.SimulationConfig
	table        table.Model
	vp           viewport.Model
	eventVP      viewport.Model
	logs         []string
	eventLogs    []string
	state        telemetry.SimulationStateRow
	positions    map[string]swarmMapEntry
	wrap         bool
	autoscroll   bool
	showMap      bool
	help         bool
	header       string
	headerHeight int
	height       int
}

func newTUIModel(cfg *config.SimulationConfig) tuiModel {
	cols := []table.Column{
		{Title: "Config", Width: 22},
		{Title: "Value", Width: 10},
		{Title: "Config", Width: 22},
		{Title: "Value", Width: 10},
	}
	rows := []table.Row{
		{"Unit Count", fmt.Sprintf("%d", cfg.Swarm.UnitCount), "Max Speed", fmt.Sprintf("%.1f", cfg.Swarm.MaxSpeed)},
		{"Detection Range", fmt.Sprintf("%.0f", cfg.Swarm.DetectionRange), "Attack Range", fmt.Sprintf("%.0f", cfg.Swarm.AttackRange)},
		{"Coordination Radius", fmt.Sprintf("%.0f", cfg.Swarm.CoordinationRadius), "Intelligence", fmt.Sprintf("%.2f", cfg.Swarm.Intelligence)},
		{"World Extent", fmt.Sprintf("%.0f", cfg.World.Extent), "Seed", fmt.Sprintf("%d", cfg.Seed)},
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         viewport.New(0, 0),
		eventVP:    viewport.New(0, 0),
		positions:  make(map[string]swarmMapEntry),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.eventVP.Width = msg.Width
		m.height = msg.Height
		m.header = m.table.View()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		m.refreshViewport()
		m.refreshEvents()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
				m.eventVP.GotoBottom()
			}
		case "m":
			m.showMap = !m.showMap
		case "h", "?":
			m.help = !m.help
		case "j", "down":
			if !m.autoscroll {
				m.vp.LineDown(1)
				m.eventVP.LineDown(1)
			}
		case "k", "up":
			if !m.autoscroll {
				m.vp.LineUp(1)
				m.eventVP.LineUp(1)
			}
		}
		return m, nil
	case logMsg:
		m.logs = appendCapped(m.logs, msg.line)
		m.refreshViewport()
	case eventMsg:
		m.eventLogs = appendCapped(m.eventLogs, msg.line)
		m.refreshEvents()
	case swarmPosMsg:
		if msg.State == "dissipating" && msg.Health <= 0 {
			delete(m.positions, msg.SwarmID)
		} else {
			m.positions[msg.SwarmID] = swarmMapEntry{x: msg.X, z: msg.Z, state: msg.State}
		}
	case stateMsg:
		m.state = msg.SimulationStateRow
	}
	return m, nil
}

func appendCapped(lines []string, line string) []string {
	lines = append(lines, line)
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}
	return lines
}

func (m *tuiModel) updateViewportHeight() {
	maxEvents := int(float64(m.height) * maxSectionHeightPct)
	if maxEvents < 1 {
		maxEvents = 1
	}
	ev := len(m.eventLogs)
	if ev == 0 {
		ev = 1
	}
	if ev > maxEvents {
		ev = maxEvents
	}
	m.eventVP.Height = ev
	h := m.height - m.headerHeight - m.eventVP.Height - 6
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshEvents() {
	content := "none"
	if len(m.eventLogs) > 0 {
		content = strings.Join(m.eventLogs, "\n")
	}
	m.eventVP.SetContent(content)
	if m.autoscroll {
		m.eventVP.GotoBottom()
	}
	m.updateViewportHeight()
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	if m.showMap {
		return strings.Join([]string{m.header, divider, m.renderMap(), divider, m.renderBottom()}, "\n")
	}
	sections := []string{
		m.header,
		divider,
		m.vp.View(),
		divider,
		"Events:",
		m.eventVP.View(),
		divider,
		m.renderBottom(),
	}
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderBottom() string {
	wrapColor := lipgloss.Color("9")
	if m.wrap {
		wrapColor = lipgloss.Color("10")
	}
	scrollColor := lipgloss.Color("10")
	if !m.autoscroll {
		scrollColor = lipgloss.Color("9")
	}
	wrapDot := lipgloss.NewStyle().Foreground(wrapColor).Render("●")
	scrollDot := lipgloss.NewStyle().Foreground(scrollColor).Render("●")
	state := fmt.Sprintf("%sSTATE%s %sswarms=%d%s %sunits=%d%s %starget=%t%s %stick=%.3fs%s",
		colorBlue, colorReset,
		colorGreen, m.state.Swarms, colorReset,
		colorCyan, m.state.LiveUnits, colorReset,
		colorYellow, m.state.TargetTracked, colorReset,
		colorMagenta, m.state.TickSeconds, colorReset)
	return fmt.Sprintf("%s | Wrap %s | Scroll %s | m map | h help | q quit", state, wrapDot, scrollDot)
}

// renderMap draws a top-down X/Z view of swarm positions scaled to the
// world extent, colored by state.
func (m tuiModel) renderMap() string {
	width := m.vp.Width
	height := m.height - m.headerHeight - 5
	if height < 1 {
		height = 1
	}
	if width < 2 {
		width = 2
	}
	ext := m.cfg.World.Extent
	if ext <= 0 {
		ext = 1
	}
	grid := make([][]string, height)
	for i := range grid {
		row := make([]string, width)
		for j := range row {
			row[j] = "."
		}
		grid[i] = row
	}
	for _, e := range m.positions {
		x := int((e.x + ext) / (2 * ext) * float64(width-1))
		y := int((e.z + ext) / (2 * ext) * float64(height-1))
		if y < 0 || y >= height || x < 0 || x >= width {
			continue
		}
		c := stateColors[e.state]
		if c == "" {
			c = colorGray
		}
		grid[y][x] = fmt.Sprintf("%s@%s", c, colorReset)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("world ±%.0f top-down\n", ext))
	for _, row := range grid {
		b.WriteString(strings.Join(row, ""))
		b.WriteByte('\n')
	}
	var legend []string
	for _, st := range []string{"dormant", "searching", "pursuing", "attacking", "fleeing"} {
		legend = append(legend, fmt.Sprintf("%s@%s=%s", stateColors[st], colorReset, st))
	}
	b.WriteString(strings.Join(legend, " "))
	return b.String()
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" w  toggle wrap for telemetry log",
		" s  toggle auto-scroll",
		" m  toggle map view",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
	}
	return strings.Join(lines, "\n")
}
