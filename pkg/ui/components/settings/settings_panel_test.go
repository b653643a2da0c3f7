package settings

import (
	"testing"

	"chatshell/pkg/config"
	"chatshell/pkg/ui/components/testutils"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const testConfigPath = "/tmp/chatshell_test_config.json"

func fieldIndex(t *testing.T, sp *SettingsPanel, key string) int {
	t.Helper()
	for i, f := range sp.fields {
		if f.Key == key {
			return i
		}
	}
	t.Fatalf("field %q not found", key)
	return -1
}

func selectField(t *testing.T, sp *SettingsPanel, key string) {
	t.Helper()
	target := fieldIndex(t, sp, key)
	for sp.selected < target {
		sp.Update(testutils.TestKeyDown)
	}
	for sp.selected > target {
		sp.Update(testutils.TestKeyUp)
	}
}

func typeText(sp *SettingsPanel, text string) {
	for _, k := range testutils.TextKeys(text) {
		sp.Update(k)
	}
}

func TestNewSettingsPanel(t *testing.T) {
	sp := NewSettingsPanel()

	if sp == nil {
		t.Fatal("NewSettingsPanel() returned nil")
	}

	if sp.visible {
		t.Error("Panel should not be visible initially")
	}
	if sp.View() != "" {
		t.Error("Hidden panel should render nothing")
	}
}

func TestSettingsPanel_Show(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)

	if !sp.visible {
		t.Error("Panel should be visible after Show()")
	}
	if sp.selected != 0 {
		t.Error("Selection should be reset to 0")
	}
	if sp.editing {
		t.Error("Should not be in editing mode")
	}
	if len(sp.fields) == 0 {
		t.Error("Fields should be populated")
	}
	if sp.HasChanges() {
		t.Error("Fresh panel should have no changes")
	}
}

func TestSettingsPanel_Hide(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)

	sp.Hide()

	if sp.visible {
		t.Error("Panel should not be visible after Hide()")
	}
}

func TestSettingsPanel_ClampsToSmallWidth(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	sp.SetSize(30, 8)

	view := sp.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	if got := lipgloss.Width(view); got > 30 {
		t.Fatalf("expected width <= 30, got %d", got)
	}
}

func TestSettingsPanel_Navigation(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)

	sp.Update(testutils.TestKeyDown)
	if sp.selected != 1 {
		t.Errorf("Expected selected=1, got %d", sp.selected)
	}

	sp.Update(testutils.TestKeyDown)
	if sp.selected != 2 {
		t.Errorf("Expected selected=2, got %d", sp.selected)
	}

	sp.Update(testutils.TestKeyUp)
	if sp.selected != 1 {
		t.Errorf("Expected selected=1, got %d", sp.selected)
	}

	// Can't go above 0
	sp.Update(testutils.TestKeyUp)
	sp.Update(testutils.TestKeyUp)
	if sp.selected != 0 {
		t.Errorf("Expected selected=0, got %d", sp.selected)
	}

	// Can't go past the last field
	for range len(sp.fields) + 2 {
		sp.Update(testutils.TestKeyDown)
	}
	if sp.selected != len(sp.fields)-1 {
		t.Errorf("Expected selected=%d, got %d", len(sp.fields)-1, sp.selected)
	}
}

func TestSettingsPanel_EditReplyText(t *testing.T) {
	sp := NewSettingsPanel()
	cfg := config.Default()
	cfg.Reply.Text = "hi"
	sp.Show(cfg, testConfigPath)
	selectField(t, sp, "reply_text")

	sp.Update(testutils.TestKeyEnter)
	if !sp.editing {
		t.Fatal("Enter should start editing a string field")
	}

	typeText(sp, " there")
	sp.Update(testutils.TestKeyEnter)

	if sp.editing {
		t.Error("Enter should confirm the edit")
	}
	if got := sp.GetConfig().Reply.Text; got != "hi there" {
		t.Errorf("Reply.Text = %q, want %q", got, "hi there")
	}
	if !sp.HasChanges() {
		t.Error("Expected changes after edit")
	}
}

func TestSettingsPanel_EditBackspaceAndCursor(t *testing.T) {
	sp := NewSettingsPanel()
	cfg := config.Default()
	cfg.Reply.Text = "abc"
	sp.Show(cfg, testConfigPath)
	selectField(t, sp, "reply_text")

	sp.Update(testutils.TestKeyEnter)
	sp.Update(testutils.TestKeyBackspace)
	sp.Update(testutils.NewKeyPressMsg(tea.KeyHome))
	typeText(sp, "x")
	sp.Update(testutils.TestKeyEnter)

	if got := sp.GetConfig().Reply.Text; got != "xab" {
		t.Errorf("Reply.Text = %q, want %q", got, "xab")
	}
}

func TestSettingsPanel_EditCancel(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	selectField(t, sp, "reply_text")

	sp.Update(testutils.TestKeyEnter)
	typeText(sp, "zzz")
	sp.Update(testutils.TestKeyEsc)

	if sp.editing {
		t.Error("Esc should leave edit mode")
	}
	if !sp.visible {
		t.Error("Esc in edit mode should not close the panel")
	}
	if got := sp.GetConfig().Reply.Text; got != config.DefaultReplyText {
		t.Errorf("cancelled edit changed Reply.Text to %q", got)
	}
	if sp.HasChanges() {
		t.Error("cancelled edit should not count as a change")
	}
}

func TestSettingsPanel_InvalidInt(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	selectField(t, sp, "reply_delay")

	sp.Update(testutils.TestKeyEnter)
	typeText(sp, "x")
	sp.Update(testutils.TestKeyEnter)

	if sp.errorMsg == "" {
		t.Error("Expected an error for a non-numeric delay")
	}
	if got := sp.GetConfig().Reply.DelayMillis; got != 500 {
		t.Errorf("DelayMillis = %d, want 500", got)
	}
}

func TestSettingsPanel_EditInt(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	selectField(t, sp, "reply_delay")

	sp.Update(testutils.TestKeyEnter)
	for range 3 {
		sp.Update(testutils.TestKeyBackspace)
	}
	typeText(sp, "1200")
	sp.Update(testutils.TestKeyEnter)

	if got := sp.GetConfig().Reply.DelayMillis; got != 1200 {
		t.Errorf("DelayMillis = %d, want 1200", got)
	}
}

func TestSettingsPanel_CycleChoice(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	selectField(t, sp, "submit_policy")

	sp.Update(testutils.TestKeyEnter)
	if got := sp.GetConfig().SubmitPolicy; got != config.SubmitPolicyQueue {
		t.Errorf("SubmitPolicy = %q, want %q", got, config.SubmitPolicyQueue)
	}
	if sp.editing {
		t.Error("Choice fields should not enter edit mode")
	}

	sp.Update(testutils.TestKeyEnter)
	if got := sp.GetConfig().SubmitPolicy; got != config.SubmitPolicyBlock {
		t.Errorf("SubmitPolicy = %q, want %q", got, config.SubmitPolicyBlock)
	}
}

func TestSettingsPanel_ToggleBool(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	selectField(t, sp, "sidebar_visible")

	sp.Update(testutils.TestKeyEnter)

	if sp.GetConfig().Sidebar.Visible {
		t.Error("Expected sidebar visibility to toggle off")
	}
}

func TestSettingsPanel_EscWithoutChangesCloses(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)

	cmd := sp.Update(testutils.TestKeyEsc)
	if sp.visible {
		t.Error("Esc should close the panel")
	}
	if cmd == nil {
		t.Fatal("Expected a close command")
	}
	if _, ok := cmd().(SettingsCloseMsg); !ok {
		t.Error("Expected SettingsCloseMsg")
	}
}

func TestSettingsPanel_SaveEmitsConfig(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	selectField(t, sp, "status_bar_theme")
	sp.Update(testutils.TestKeyEnter)

	cmd := sp.Update(testutils.NewTextKeyPressMsg("s"))
	if cmd == nil {
		t.Fatal("Expected a save command")
	}
	msg, ok := cmd().(SettingsSaveMsg)
	if !ok {
		t.Fatal("Expected SettingsSaveMsg")
	}
	if msg.ConfigPath != testConfigPath {
		t.Errorf("ConfigPath = %q", msg.ConfigPath)
	}
	if msg.Config.StatusBar.Theme != "cyan" {
		t.Errorf("Theme = %q, want cyan", msg.Config.StatusBar.Theme)
	}
	if sp.visible {
		t.Error("Panel should close after save")
	}
}

func TestSettingsPanel_SaveRejectsInvalidConfig(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	selectField(t, sp, "sidebar_width")

	sp.Update(testutils.TestKeyEnter)
	sp.Update(testutils.TestKeyBackspace)
	sp.Update(testutils.TestKeyBackspace)
	typeText(sp, "4")
	sp.Update(testutils.TestKeyEnter)

	cmd := sp.Update(testutils.TestKeyEsc)
	if cmd != nil {
		t.Error("Invalid config should not be saved")
	}
	if !sp.visible {
		t.Error("Panel should stay open on validation error")
	}
	if sp.errorMsg == "" {
		t.Error("Expected a validation error")
	}
}

func TestSettingsPanel_ViewShowsFields(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	sp.SetSize(80, 24)

	view := sp.View()
	for _, want := range []string{"Settings", "Reply Delay", "Submit Policy", "Speech Provider"} {
		if !containsText(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSettingsPanel_ViewListsEnvironmentOverrides(t *testing.T) {
	sp := NewSettingsPanel()
	sp.Show(config.Default(), testConfigPath)
	sp.SetSize(80, 24)

	if containsText(sp.View(), "Overridden by environment") {
		t.Fatal("expected no override note without overrides")
	}

	sp.SetOverrides([]string{config.EnvReplyText})
	if !containsText(sp.View(), "Overridden by environment: CHATSHELL_REPLY_TEXT") {
		t.Errorf("expected override note, got:\n%s", sp.View())
	}

	sp.Show(config.Default(), testConfigPath)
	if containsText(sp.View(), "Overridden by environment") {
		t.Error("expected Show to clear the override note")
	}
}
