package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
)

// KeyMap holds the global key bindings.
type KeyMap struct {
	Quit          key.Binding
	Send          key.Binding
	Record        key.Binding
	ToggleSidebar key.Binding
	FocusNext     key.Binding
	ModelPicker   key.Binding
	CopyReply     key.Binding
	Settings      key.Binding
	History       key.Binding
	Help          key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
}

// DefaultKeyMap returns the bindings shown in the greeting banner.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Record: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "record"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "sidebar"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		ModelPicker: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "model"),
		),
		CopyReply: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy reply"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "settings"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "prompt history"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "scroll down"),
		),
	}
}

// Bindings lists every binding in display order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{
		k.Send, k.Record, k.History, k.CopyReply, k.ToggleSidebar, k.FocusNext,
		k.ModelPicker, k.Settings, k.PageUp, k.PageDown, k.Help, k.Quit,
	}
}

// HelpText renders the bindings as aligned "key  description" lines.
func (k KeyMap) HelpText() string {
	var b strings.Builder
	for _, binding := range k.Bindings() {
		h := binding.Help()
		fmt.Fprintf(&b, "%-8s  %s\n", h.Key, h.Desc)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
