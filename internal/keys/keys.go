package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// View switching
	ViewGenerate key.Binding
	ViewLibrary  key.Binding
	ViewProfile  key.Binding
	ViewReviews  key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Generation
	Submit     key.Binding
	PickAvatar key.Binding
	Template   key.Binding
	SaveDraft  key.Binding

	// Library actions
	Download key.Binding
	Delete   key.Binding

	// Search
	Search key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ViewGenerate: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "generate"),
		),
		ViewLibrary: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "library"),
		),
		ViewProfile: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "profile"),
		),
		ViewReviews: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "reviews"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "generate video"),
		),
		PickAvatar: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "pick avatar"),
		),
		Template: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "templates"),
		),
		SaveDraft: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "save draft"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.ViewGenerate, k.ViewLibrary, k.ViewProfile, k.ViewReviews},
		{k.Submit, k.Template, k.PickAvatar, k.SaveDraft},
		{k.Refresh, k.Download, k.Delete, k.Search, k.Help},
	}
}
