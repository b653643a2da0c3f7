package chatpanel

import (
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

func tickMsg(t *testing.T, cmd tea.Cmd) spinner.TickMsg {
	t.Helper()
	msg, ok := cmd().(spinner.TickMsg)
	if !ok {
		t.Fatalf("Expected spinner.TickMsg, got %T", msg)
	}
	return msg
}
