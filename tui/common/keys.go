package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit          key.Binding
	Refresh       key.Binding
	NextTab       key.Binding
	PrevTab       key.Binding
	Search        key.Binding // / — focus the search input
	Like          key.Binding // l — like/unlike
	Comment       key.Binding // c — comment via $EDITOR
	CommentInline key.Binding // C — comment via inline textarea
	Upload        key.Binding // u — upload a meme
	Category      key.Binding // x — pick explore category
	Theme         key.Binding // t — toggle light/dark
	EditProfile   key.Binding // e — edit profile
	Auth          key.Binding // a — toggle login
	Up            key.Binding
	Down          key.Binding
	Open          key.Binding // enter — open detail
	Back          key.Binding // esc — leave detail/overlay
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment ($EDITOR)"),
		),
		CommentInline: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "comment (inline)"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Category: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "category"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		EditProfile: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		Auth: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log in/out"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}
