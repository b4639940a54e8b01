package wheelview

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Press     key.Binding
	Spin      key.Binding
	Add       key.Binding
	Remove    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press"),
		),
		Spin: key.NewBinding(
			key.WithKeys("s", "space"),
			key.WithHelp("s", "spin"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Remove: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "remove last"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Press, k.Spin, k.Add, k.Remove, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Press},
		{k.Spin, k.Add, k.Remove, k.Quit},
	}
}

// inputHelp is the reduced set shown while the name field has focus, where
// letters are typed rather than treated as shortcuts.
func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add name")),
		k.Next,
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
