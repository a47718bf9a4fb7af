package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevFilter key.Binding
	NextFilter key.Binding
	Tier       key.Binding
	ToggleView key.Binding
	Search     key.Binding
	Open       key.Binding
	ReadLater  key.Binding
	Favorite   key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// newKeyMap builds the bindings for a mode. The ctrl+k search shortcut
// belongs to the sector dashboard only; category mode searches with "/".
func newKeyMap(sectorMode bool) keyMap {
	search := key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	if sectorMode {
		search = key.NewBinding(key.WithKeys("/", "ctrl+k"), key.WithHelp("/, ctrl+k", "search"))
	}
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous article")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next article")),
		PrevFilter: key.NewBinding(key.WithKeys("h", "left", "["), key.WithHelp("h/←", "previous sector")),
		NextFilter: key.NewBinding(key.WithKeys("l", "right", "]"), key.WithHelp("l/→", "next sector")),
		Tier:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump to tier I–V")),
		ToggleView: key.NewBinding(key.WithKeys("tab", "v"), key.WithHelp("tab/v", "feed / headlines")),
		Search:     search,
		Open:       key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o/enter", "open in browser")),
		ReadLater:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "read later")),
		Favorite:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpGroups orders bindings for the help overlay.
func (k keyMap) helpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevFilter, k.NextFilter, k.Tier},
		{k.ToggleView, k.Search, k.Refresh},
		{k.Open, k.ReadLater, k.Favorite},
		{k.Help, k.Quit},
	}
}
