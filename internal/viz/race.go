package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortlab/internal/race"
	"github.com/san-kum/sortlab/internal/trace"
)

// raceTickMsg drives one synchronous coordinator tick. Ticks from a race
// that has since been restarted carry an old generation and are dropped.
type raceTickMsg struct {
	gen int
}

// RaceView shows every lane of a race side by side.
type RaceView struct {
	coord      *race.Coordinator
	algorithms []string
	input      trace.Values
	lanes      []race.Progress
	gen        int
	theme      Theme
	help       help.Model
	err        error

	width, height int
}

// NewRaceView prepares a race over algorithms; it starts on Init.
func NewRaceView(c *race.Coordinator, algorithms []string, input trace.Values, theme Theme) RaceView {
	return RaceView{
		coord:      c,
		algorithms: algorithms,
		input:      input.Clone(),
		theme:      theme,
		help:       help.New(),
		width:      defaultWidth,
		height:     defaultHeight,
	}
}

func (m RaceView) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.coord.TickRate(), func(time.Time) tea.Msg { return raceTickMsg{gen: gen} })
}

func (m *RaceView) start() tea.Cmd {
	if err := m.coord.Start(m.algorithms, m.input); err != nil {
		m.err = err
		return nil
	}
	m.gen++
	m.lanes = m.coord.Lanes()
	return m.tick()
}

func (m RaceView) Init() tea.Cmd {
	return func() tea.Msg { return raceTickMsg{gen: -1} }
}

func (m RaceView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case raceTickMsg:
		if msg.gen == -1 {
			cmd := m.start()
			return m, cmd
		}
		if msg.gen != m.gen || m.coord.Cancelled() {
			return m, nil
		}
		m.lanes = m.coord.Tick()
		if m.coord.Done() {
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, raceKeys.Quit):
			m.coord.Cancel()
			return m, tea.Quit
		case key.Matches(msg, raceKeys.Restart):
			cmd := m.start()
			return m, cmd
		case key.Matches(msg, raceKeys.Theme):
			m.theme = NextTheme(m.theme)
		}
	}
	return m, nil
}

func (m RaceView) View() string {
	if m.err != nil {
		return SparkLow.Render("race error: "+m.err.Error()) + "\n" + m.help.View(raceKeys)
	}
	if len(m.lanes) == 0 {
		return Subtle.Render("starting race...")
	}

	n := len(m.lanes)
	cols := min(n, 3)
	laneW := max((m.width-2*cols)/cols, 20)
	rows := (n + cols - 1) / cols
	barH := max((m.height-6)/rows-6, 3)

	results := m.coord.Results()
	cells := make([]string, n)
	for i, p := range m.lanes {
		cells[i] = m.laneView(p, results[i], laneW, barH)
	}

	var grid []string
	for r := 0; r < rows; r++ {
		end := min((r+1)*cols, n)
		grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, cells[r*cols:end]...))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("ALGORITHM RACE"))
	b.WriteString(fmt.Sprintf("  %d elements\n\n", len(m.input)))
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, grid...))
	b.WriteString("\n")

	if w, ok := m.coord.Winner(); ok && m.coord.Done() {
		b.WriteString(WinnerStyle.Render(fmt.Sprintf("🏆 %s wins in %s", w.Name, w.FinishTime.Round(time.Millisecond))))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(raceKeys))
	return b.String()
}

func (m RaceView) laneView(p race.Progress, r race.Result, w, barH int) string {
	th := m.theme
	border := th.Muted
	if r.Rank == 1 {
		border = th.Sorted
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(w - 2)

	title := lipgloss.NewStyle().Bold(true).Foreground(th.Primary).Render(r.Name)
	if r.Rank > 0 {
		title += Subtle.Render(fmt.Sprintf("  #%d  %s", r.Rank, r.FinishTime.Round(time.Millisecond)))
	}

	f := p.Frame
	stats := fmt.Sprintf("step %d/%d  cmp %d  swp %d",
		f.Index, f.Total, f.Stats.Comparisons, f.Stats.Swaps)

	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		RenderBars(f.Array, f.Highlight, w-4, barH, th),
		ProgressBar(p.Fraction(), w-4),
		Subtle.Render(stats),
	))
}
