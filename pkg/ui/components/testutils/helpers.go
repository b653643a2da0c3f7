package testutils

import (
	tea "charm.land/bubbletea/v2"
)

// Test helpers for creating v2 KeyPressMsg values

// NewKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func NewKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// NewTextKeyPressMsg creates a KeyPressMsg for text input
func NewTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// TextKeys splits text into one KeyPressMsg per rune, as a user would type it.
func TextKeys(text string) []tea.KeyPressMsg {
	keys := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		keys = append(keys, NewTextKeyPressMsg(string(r)))
	}
	return keys
}

// Common special keys using the new API
var (
	TestKeyUp        = NewKeyPressMsg(tea.KeyUp)
	TestKeyDown      = NewKeyPressMsg(tea.KeyDown)
	TestKeyEnter     = NewKeyPressMsg(tea.KeyEnter)
	TestKeyTab       = NewKeyPressMsg(tea.KeyTab)
	TestKeyEsc       = NewKeyPressMsg(tea.KeyEscape)
	TestKeyBackspace = NewKeyPressMsg(tea.KeyBackspace)
	TestKeyPgUp      = NewKeyPressMsg(tea.KeyPgUp)
	TestKeyPgDown    = NewKeyPressMsg(tea.KeyPgDown)
	TestKeyHome      = NewKeyPressMsg(tea.KeyHome)
	TestKeyEnd       = NewKeyPressMsg(tea.KeyEnd)
)

// Ctrl+X keys using modifier
func NewCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

// Common ctrl combinations
var (
	TestKeyCtrlB = NewCtrlKeyPressMsg('b')
	TestKeyCtrlC = NewCtrlKeyPressMsg('c')
	TestKeyCtrlO = NewCtrlKeyPressMsg('o')
	TestKeyCtrlP = NewCtrlKeyPressMsg('p')
	TestKeyCtrlR = NewCtrlKeyPressMsg('r')
	TestKeyCtrlS = NewCtrlKeyPressMsg('s')
	TestKeyCtrlY = NewCtrlKeyPressMsg('y')
)
