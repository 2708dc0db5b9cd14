package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play      key.Binding
	Forward   key.Binding
	Back      key.Binding
	Start     key.Binding
	End       key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Algorithm key.Binding
	Shuffle   key.Binding
	Reset     key.Binding
	Style     key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Play: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "play/pause"),
	),
	Forward: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "step"),
	),
	Back: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "step back"),
	),
	Start: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first step"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last step"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	Algorithm: key.NewBinding(
		key.WithKeys("tab", "a"),
		key.WithHelp("tab", "next algorithm"),
	),
	Shuffle: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new array"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Style: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "bars/dots/line"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Forward, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Forward, k.Back, k.Start, k.End},
		{k.Faster, k.Slower, k.Algorithm, k.Shuffle, k.Reset},
		{k.Style, k.Theme, k.Help, k.Quit},
	}
}

// raceKeyMap is the smaller set the race view responds to.
type raceKeyMap struct {
	Restart key.Binding
	Theme   key.Binding
	Quit    key.Binding
}

var raceKeys = raceKeyMap{
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Theme: keys.Theme,
	Quit:  keys.Quit,
}

func (k raceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Theme, k.Quit}
}

func (k raceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
