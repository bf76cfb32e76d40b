package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
	auth    key.Binding
	prev    key.Binding
	next    key.Binding
	jump    key.Binding
	left    key.Binding
	right   key.Binding
	browser key.Binding
	buy     key.Binding
	edit    key.Binding
	remove  key.Binding
	ticket  key.Binding
	merch   key.Binding
	upload  key.Binding
	drop    key.Binding
	follow  key.Binding
	log     key.Binding
	signup  key.Binding
	submit  key.Binding
	field   key.Binding
	unfield key.Binding
	refresh key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		auth:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "login/logout")),
		prev:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "back")),
		next:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "forward")),
		jump:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to")),
		left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		browser: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		buy:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy")),
		edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		ticket:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add ticket")),
		merch:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "add merch")),
		upload:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload media")),
		drop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete item")),
		follow:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "follow/unfollow")),
		log:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "log activity")),
		signup:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/signup")),
		submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		field:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		unfield: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.jump, k.prev, k.next, k.auth, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.jump, k.prev, k.next, k.refresh},
		{k.auth, k.quit},
	}
}
