package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortlab/internal/algo"
	"github.com/san-kum/sortlab/internal/config"
	"github.com/san-kum/sortlab/internal/playback"
	"github.com/san-kum/sortlab/internal/trace"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	panelWidth    = 38
	speedFactor   = 1.5
)

// tickMsg carries the token that allows the next auto-advance. A token
// issued before a pause or reset is stale and the message is dropped.
type tickMsg struct {
	tick playback.Tick
}

func scheduleTick(s *playback.Session, t playback.Tick) tea.Cmd {
	if !t.Valid() {
		return nil
	}
	return tea.Tick(s.Interval(), func(time.Time) tea.Msg { return tickMsg{tick: t} })
}

type plotStyle int

const (
	styleBars plotStyle = iota
	styleDots
	styleLine
)

func (p plotStyle) next() plotStyle { return (p + 1) % 3 }

// Player is the single-trace playback view.
type Player struct {
	session  *playback.Session
	registry *algo.Registry
	input    config.InputConfig
	theme    Theme
	style    plotStyle
	canvas   *Canvas
	help     help.Model
	err      error

	width, height int
}

// NewPlayer wraps s. Input is used to draw fresh arrays on "new array".
func NewPlayer(s *playback.Session, registry *algo.Registry, input config.InputConfig, theme Theme) Player {
	if registry == nil {
		registry = algo.Default()
	}
	return Player{
		session:  s,
		registry: registry,
		input:    input,
		theme:    theme,
		canvas:   NewCanvas(defaultWidth-panelWidth, defaultHeight-8),
		help:     help.New(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Session returns the wrapped session.
func (m Player) Session() *playback.Session { return m.session }

func (m Player) Init() tea.Cmd {
	if err := m.session.EnsureTrace(); err != nil {
		return func() tea.Msg { return err }
	}
	return nil
}

func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.canvas = NewCanvas(max(m.width-panelWidth-4, 10), max(m.height-10, 4))
		return m, nil
	case error:
		m.err = msg
		return m, nil
	case tickMsg:
		next, ok := m.session.Advance(msg.tick)
		if !ok {
			return m, nil
		}
		return m, scheduleTick(m.session, next)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Player) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	m.err = nil

	switch {
	case key.Matches(msg, keys.Quit):
		s.Pause()
		return m, tea.Quit
	case key.Matches(msg, keys.Play):
		if s.State() == playback.Playing {
			s.Pause()
			return m, nil
		}
		t, err := s.Play()
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, scheduleTick(s, t)
	case key.Matches(msg, keys.Forward):
		m.err = s.StepForward()
	case key.Matches(msg, keys.Back):
		s.StepBackward()
	case key.Matches(msg, keys.Start):
		m.err = s.Seek(0)
	case key.Matches(msg, keys.End):
		if m.err = s.EnsureTrace(); m.err == nil {
			m.err = s.Seek(s.Len() - 1)
		}
	case key.Matches(msg, keys.Faster):
		s.SetSpeed(s.Speed() * speedFactor)
	case key.Matches(msg, keys.Slower):
		s.SetSpeed(s.Speed() / speedFactor)
	case key.Matches(msg, keys.Algorithm):
		m.err = s.SetAlgorithm(m.nextAlgorithm())
	case key.Matches(msg, keys.Shuffle):
		if m.input.Size == 0 {
			m.input.Size = len(s.Input())
		}
		m.input.Values = nil
		m.input.Seed++
		s.SetInput(m.input.Generate())
	case key.Matches(msg, keys.Reset):
		s.Reset()
	case key.Matches(msg, keys.Style):
		m.style = m.style.next()
	case key.Matches(msg, keys.Theme):
		m.theme = NextTheme(m.theme)
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Player) nextAlgorithm() string {
	names := m.registry.Names()
	for i, name := range names {
		if name == m.session.Algorithm() {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func statusLabel(st playback.State) string {
	switch st {
	case playback.Playing:
		return StatusPlaying.Render("▶ PLAYING")
	case playback.Complete:
		return StatusComplete.Render("✔ COMPLETE")
	case playback.Paused:
		return StatusPaused.Render("⏸ PAUSED")
	default:
		return StatusPaused.Render("■ " + strings.ToUpper(st.String()))
	}
}

func metric(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}

func (m Player) View() string {
	s := m.session
	f := s.Frame()
	th := m.theme
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Primary)

	plotW := max(m.width-panelWidth-4, 10)
	plotH := max(m.height-10, 4)

	var main string
	if m.style != styleBars {
		m.canvas.PlotValues(f.Array, m.style == styleLine)
		main = lipgloss.NewStyle().Foreground(th.Normal).Render(m.canvas.String())
	} else {
		main = RenderBars(f.Array, f.Highlight, plotW, plotH, th)
	}

	var tl strings.Builder
	if timeline := s.Timeline(plotW); len(timeline) > 0 {
		cursor := -1
		if f.Total > 0 && f.Index > 0 {
			cursor = (f.Index - 1) * len(timeline) / f.Total
		}
		tl.WriteString(SparklineChart(timeline, cursor))
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		title.Render(m.algorithmName())+"  "+statusLabel(f.State),
		"",
		main,
		"",
		tl.String(),
	)

	right := GlassPanel.Width(panelWidth).Render(m.panel(f))

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	footer := m.help.View(keys)
	if m.err != nil {
		footer = SparkLow.Render("error: "+m.err.Error()) + "\n" + footer
	}
	return view + "\n" + footer
}

func (m Player) algorithmName() string {
	info, err := m.registry.Info(m.session.Algorithm())
	if err != nil {
		return m.session.Algorithm()
	}
	return info.Name
}

func (m Player) panel(f playback.Frame) string {
	s := m.session
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("STATS") + "\n")
	b.WriteString(metric("Step", fmt.Sprintf("%d / %d", f.Index, f.Total)))
	b.WriteString(metric("Comparisons", fmt.Sprint(f.Stats.Comparisons)))
	b.WriteString(metric("Swaps", fmt.Sprint(f.Stats.Swaps)))
	b.WriteString(metric("Elapsed", f.Stats.Elapsed.Round(10*time.Millisecond).String()))
	b.WriteString(metric("Speed", fmt.Sprintf("%.1f steps/s", s.Speed())))
	b.WriteString(metric("Sortedness", fmt.Sprintf("%.0f%%", 100*trace.Sortedness(f.Array))))
	if f.Kind != "" {
		op := string(f.Kind)
		if f.Kind == trace.KindGap {
			op = fmt.Sprintf("gap %d", f.Gap)
		}
		b.WriteString(metric("Operation", op))
	}

	p := s.Progress()
	b.WriteString("\n" + ProgressBar(p.Fraction, panelWidth-4) + "\n")
	if f.State == playback.Playing {
		b.WriteString(Subtle.Render("eta "+p.ETA.Round(time.Second).String()) + "\n")
	}

	if info, err := m.registry.Info(s.Algorithm()); err == nil {
		b.WriteString("\n" + HeaderStyle.Render("COMPLEXITY") + "\n")
		b.WriteString(metric("Best", info.Time.Best))
		b.WriteString(metric("Average", info.Time.Average))
		b.WriteString(metric("Worst", info.Time.Worst))
		b.WriteString(metric("Space", info.Space))
		stable := "no"
		if info.Stable {
			stable = "yes"
		}
		b.WriteString(metric("Stable", stable))
	}

	if tr := s.Trace(); tr.Len() > 1 {
		swaps := tr.Series(func(st trace.Step) float64 { return float64(st.Swaps) })
		if f.Index > 1 {
			swaps = swaps[:f.Index]
			chart := asciigraph.Plot(swaps,
				asciigraph.Height(4),
				asciigraph.Width(panelWidth-12),
				asciigraph.Caption("swaps"))
			b.WriteString("\n" + chart + "\n")
		}
	}

	b.WriteString("\n" + legend(m.theme))
	return b.String()
}

func legend(th Theme) string {
	items := []struct {
		role, label string
	}{
		{"comparing", "compare"},
		{"swapping", "swap"},
		{"pivot", "pivot"},
		{"sorted", "sorted"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = lipgloss.NewStyle().Foreground(th.RoleColor(it.role)).Render("█") + " " + it.label
	}
	return strings.Join(parts, "  ")
}
