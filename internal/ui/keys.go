package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Reload     key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	JumpTab    key.Binding
	SubTab     key.Binding
	Dismiss    key.Binding

	// Shared pane controls
	Up             key.Binding
	Down           key.Binding
	NextCollection key.Binding
	PrevCollection key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Confirm        key.Binding
	Clear          key.Binding

	// Upload
	Ingest           key.Binding
	DeleteCollection key.Binding

	// Chat
	ToggleChunks  key.Binding
	PrevTurn      key.Binding
	NextTurn      key.Binding
	ToggleSession key.Binding

	// Explore
	Load     key.Binding
	Search   key.Binding
	SortSource key.Binding
	SortText   key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	FirstPage  key.Binding
	LastPage   key.Binding

	// Editor
	Save        key.Binding
	DeleteChunk key.Binding
	FocusNext   key.Binding
	Cancel      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "Cycle theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "Reload client"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		JumpTab: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5"),
			key.WithHelp("alt+1..5", "Jump to tab"),
		),
		SubTab: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "File/Collections"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "Dismiss"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "Previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "Next field"),
		),
		NextCollection: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Next collection"),
		),
		PrevCollection: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "Previous collection"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Scroll down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Reset"),
		),

		Ingest: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "Ingest"),
		),
		DeleteCollection: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Delete collection"),
		),

		ToggleChunks: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "Show/hide chunks"),
		),
		PrevTurn: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+up", "Previous turn"),
		),
		NextTurn: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+down", "Next turn"),
		),
		ToggleSession: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "Show/hide session"),
		),

		Load: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Load collection"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		SortSource: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort by source"),
		),
		SortText: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Sort by text"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "First page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "Last page"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save chunk"),
		),
		DeleteChunk: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Delete chunk"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next control"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab, k.SubTab},
		{k.Up, k.Down, k.NextCollection, k.PrevCollection, k.PageUp, k.PageDown},
		{k.Confirm, k.Clear, k.Ingest, k.DeleteCollection},
		{k.ToggleChunks, k.PrevTurn, k.NextTurn, k.ToggleSession},
		{k.Load, k.Search, k.SortSource, k.SortText, k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.Save, k.DeleteChunk, k.FocusNext, k.Cancel},
		{k.CycleTheme, k.Reload, k.Help, k.Quit},
	}
}
