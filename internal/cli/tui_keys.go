package cli

import "github.com/charmbracelet/bubbles/key"

type tuiKeyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Expand    key.Binding
	Add       key.Binding
	Remove    key.Binding
	Detail    key.Binding
	Panel     key.Binding
	Submit    key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	GuideNext key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultTUIKeys() tuiKeyMap {
	return tuiKeyMap{
		Prev:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		Next:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Expand:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Detail:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
		Panel:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "selection")),
		Submit:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report")),
		NextTab:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tier")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tier")),
		GuideNext: key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next tip")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// tabIndex maps the digit keys 1-9 onto tier tabs.
func tabIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
