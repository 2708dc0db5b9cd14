package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sortlab/internal/config"
	"github.com/san-kum/sortlab/internal/playback"
	"github.com/san-kum/sortlab/internal/race"
	"github.com/san-kum/sortlab/internal/trace"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newPlayer(t *testing.T, input trace.Values) Player {
	t.Helper()
	s, err := playback.New(nil, "bubbleSort", input, playback.WithSpeed(playback.MaxSpeed))
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(s, nil, config.InputConfig{Size: len(input), Min: 1, Max: 50}, ThemeClassic)
	if cmd := p.Init(); cmd != nil {
		t.Fatalf("unexpected init command")
	}
	return p
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (Player, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Player), cmd
}

func TestPlayer_StepKeys(t *testing.T) {
	p := newPlayer(t, trace.Values{5, 3, 8, 1})

	p, _ = update(t, p, runes("l"))
	p, _ = update(t, p, runes("l"))
	if got := p.Session().Index(); got != 2 {
		t.Fatalf("expected position 2, got %d", got)
	}

	p, _ = update(t, p, runes("h"))
	if got := p.Session().Index(); got != 1 {
		t.Errorf("expected position 1 after step back, got %d", got)
	}

	p, _ = update(t, p, runes("G"))
	if got := p.Session().Index(); got != p.Session().Len() {
		t.Errorf("expected end of trace, got %d", got)
	}

	p, _ = update(t, p, runes("r"))
	if p.Session().State() != playback.Empty {
		t.Errorf("expected empty after reset, got %s", p.Session().State())
	}
}

func TestPlayer_PlayAndStaleTick(t *testing.T) {
	p := newPlayer(t, trace.Values{3, 2, 1})

	p, cmd := update(t, p, runes(" "))
	if p.Session().State() != playback.Playing || cmd == nil {
		t.Fatalf("expected playing with a scheduled tick")
	}
	msg := cmd()

	p, cmd = update(t, p, msg)
	if p.Session().Index() != 1 || cmd == nil {
		t.Fatalf("expected one step and another tick, index %d", p.Session().Index())
	}
	stale := cmd()

	p, _ = update(t, p, runes(" "))
	if p.Session().State() != playback.Paused {
		t.Fatalf("expected paused, got %s", p.Session().State())
	}
	p, cmd = update(t, p, stale)
	if p.Session().Index() != 1 || cmd != nil {
		t.Errorf("stale tick must not advance")
	}
}

func TestPlayer_AlgorithmShuffleSpeed(t *testing.T) {
	p := newPlayer(t, trace.Values{4, 3, 2, 1})

	p, _ = update(t, p, tea.KeyMsg{Type: tea.KeyTab})
	if p.Session().Algorithm() != "countingSort" {
		t.Errorf("expected next algorithm after bubbleSort, got %s", p.Session().Algorithm())
	}

	p, _ = update(t, p, runes("n"))
	in := p.Session().Input()
	if len(in) != 4 {
		t.Fatalf("expected 4 new values, got %v", in)
	}
	for _, v := range in {
		if v < 1 || v >= 50 {
			t.Errorf("value %v outside [1, 50)", v)
		}
	}

	p, _ = update(t, p, runes("-"))
	if p.Session().Speed() >= playback.MaxSpeed {
		t.Errorf("expected speed to drop, got %v", p.Session().Speed())
	}
}

func TestPlayer_View(t *testing.T) {
	p := newPlayer(t, trace.Values{5, 3, 8, 1})
	p, _ = update(t, p, tea.WindowSizeMsg{Width: 120, Height: 40})
	p, _ = update(t, p, runes("l"))

	view := p.View()
	for _, want := range []string{"Bubble Sort", "Comparisons", "O(n²)", "1 / 14"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	p, _ = update(t, p, runes("s"))
	if !strings.ContainsRune(p.View(), 0x2800) {
		t.Error("dots style should render braille cells")
	}
	dots := countDots(p.canvas)

	p, _ = update(t, p, runes("s"))
	if !strings.ContainsRune(p.View(), 0x2800) {
		t.Error("line style should render braille cells")
	}
	if lined := countDots(p.canvas); lined <= dots {
		t.Errorf("line style should join points: %d dots vs %d", lined, dots)
	}

	p, _ = update(t, p, runes("s"))
	if p.style != styleBars {
		t.Errorf("expected style to cycle back to bars, got %d", p.style)
	}
}

func TestPlayer_EndBeforeBuild(t *testing.T) {
	p := newPlayer(t, trace.Values{5, 3, 8, 1})
	p, _ = update(t, p, runes("r"))
	if p.Session().State() != playback.Empty {
		t.Fatalf("expected empty after reset, got %s", p.Session().State())
	}

	p, _ = update(t, p, runes("G"))
	s := p.Session()
	if p.err != nil {
		t.Fatal(p.err)
	}
	if s.Index() != s.Len() || s.Len() != 14 {
		t.Errorf("expected end of trace, got %d/%d", s.Index(), s.Len())
	}
	if s.State() != playback.Complete {
		t.Errorf("expected complete at the end, got %s", s.State())
	}
	if !strings.Contains(p.View(), "COMPLETE") {
		t.Error("view should show the complete status")
	}
}

func TestRenderBars(t *testing.T) {
	out := RenderBars(trace.Values{1, 2, 4}, playback.Highlight{Pivot: -1}, 10, 4, ThemeClassic)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	if strings.Count(out, "█") < 4 {
		t.Errorf("tallest bar should fill every row:\n%s", out)
	}

	if RenderBars(nil, playback.Highlight{Pivot: -1}, 10, 3, ThemeClassic) != "\n\n" {
		t.Error("expected blank rows for an empty array")
	}
}

func TestColumns_Downsample(t *testing.T) {
	arr := trace.Values{1, 9, 2, 3, 7, 4}
	hl := playback.Highlight{Swapping: []int{3}, Sorted: []int{0}, Pivot: -1}

	cols := columns(arr, hl, 3)
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	want := []column{{9, "sorted"}, {3, "swapping"}, {7, ""}}
	for i, c := range cols {
		if c != want[i] {
			t.Errorf("column %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func countDots(c *Canvas) int {
	dots := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - 0x2800; bits != 0; bits &= bits - 1 {
				dots++
			}
		}
	}
	return dots
}

func TestCanvasPlotValues(t *testing.T) {
	c := NewCanvas(4, 2)
	c.PlotValues(trace.Values{0, 1, 2, 3}, false)
	if dots := countDots(c); dots != 4 {
		t.Errorf("expected 4 dots, got %d", dots)
	}

	// Points land on (0,7) (2,5) (4,3) (7,0); the joining diagonals fill
	// every pixel between them.
	c.PlotValues(trace.Values{0, 1, 2, 3}, true)
	if dots := countDots(c); dots != 8 {
		t.Errorf("expected 8 connected dots, got %d", dots)
	}
}

func TestNextTheme(t *testing.T) {
	th := ThemeClassic
	for range Themes {
		th = NextTheme(th)
	}
	if th.Name != ThemeClassic.Name {
		t.Errorf("cycling through all themes should wrap, got %s", th.Name)
	}
	if GetTheme("nope").Name != "classic" {
		t.Error("unknown theme should fall back to classic")
	}
	if ThemeClassic.RoleColor("swapping") != ThemeClassic.Swapping {
		t.Error("role colour mismatch")
	}
}

func TestRaceView(t *testing.T) {
	c := race.New(nil)
	v := NewRaceView(c, []string{"bubbleSort", "quickSort"}, trace.Values{3, 1, 2}, ThemeClassic)

	m, cmd := v.Update(v.Init()())
	v = m.(RaceView)
	if cmd == nil || len(v.lanes) != 2 {
		t.Fatalf("expected race to start with two lanes")
	}

	for i := 0; i < 1000 && !c.Done(); i++ {
		m, _ = v.Update(raceTickMsg{gen: v.gen})
		v = m.(RaceView)
	}
	if !c.Done() {
		t.Fatal("race did not finish")
	}
	if !strings.Contains(v.View(), "wins in") {
		t.Error("expected winner banner")
	}

	_, _ = v.Update(runes("q"))
	if !c.Cancelled() && !c.Done() {
		t.Error("quit should cancel the race")
	}
}

func TestRaceView_StartError(t *testing.T) {
	v := NewRaceView(race.New(nil), []string{"bubbleSort"}, trace.Values{1}, ThemeClassic)
	m, _ := v.Update(v.Init()())
	if !strings.Contains(m.View(), "race error") {
		t.Error("expected error view for a single lane")
	}
}
