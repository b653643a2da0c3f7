package statusbar

import (
	"strings"
	"testing"

	"chatshell/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

func TestNewStatusBarView(t *testing.T) {
	sb := NewStatusBarView()

	if sb == nil {
		t.Fatal("NewStatusBarView() returned nil")
	}

	if sb.width != 80 {
		t.Errorf("Expected default width 80, got %d", sb.width)
	}
}

func TestStatusBarView_Render(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetSection("Main Chat")
	sb.SetModel("ChatGPT 3.5")

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "[chatshell] Main Chat") {
		t.Errorf("Expected section in rendered output, got %q", rendered)
	}
	if !strings.Contains(rendered, "model: ChatGPT 3.5") {
		t.Errorf("Expected model in rendered output, got %q", rendered)
	}
	if !strings.Contains(rendered, "Ctrl+B") {
		t.Error("Expected key hint when no message is set")
	}
}

func TestStatusBarView_UnknownLabels(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "no section") || !strings.Contains(rendered, "unknown") {
		t.Errorf("Expected fallback labels, got %q", rendered)
	}
}

func TestStatusBarView_SetMessage(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)

	sb.SetMessage("speech unavailable")

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "speech unavailable") {
		t.Error("Expected message in rendered output")
	}
	if strings.Contains(rendered, "Ctrl+B") {
		t.Error("Expected message to replace the key hint")
	}
	if sb.Message() != "speech unavailable" {
		t.Errorf("Expected message to be readable, got %q", sb.Message())
	}
}

func TestStatusBarView_Markers(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(120)
	sb.SetRecording(true)
	sb.SetPending(true)

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "● recording") {
		t.Error("Expected recording marker")
	}
	if !strings.Contains(rendered, "waiting for reply") {
		t.Error("Expected pending marker")
	}
}

func TestStatusBarView_FillsWidth(t *testing.T) {
	for _, width := range []int{40, 80, 120} {
		sb := NewStatusBarView()
		sb.SetWidth(width)
		sb.SetSection("Calibration Workspace")
		sb.SetModel("ChatGPT 4.5")

		if got := ansi.StringWidth(sb.Render()); got != width {
			t.Errorf("width %d: expected rendered width %d, got %d", width, width, got)
		}
	}
}

func TestStatusBarView_Truncates(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(30)
	sb.SetMessage(strings.Repeat("x", 100))

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "...") {
		t.Error("Expected truncated output to end with ellipsis")
	}
}

func TestStatusBarView_SetTheme(t *testing.T) {
	sb := NewStatusBarView()

	sb.SetTheme("dark")
	if sb.style.GetBackground() != styles.StatusBarStyleDark.GetBackground() {
		t.Error("Expected dark theme background")
	}
	sb.SetTheme("cyan")
	if sb.style.GetBackground() != styles.StatusBarStyleCyan.GetBackground() {
		t.Error("Expected cyan theme background")
	}
	sb.SetTheme("bogus")
	if sb.style.GetBackground() != styles.StatusBarStyle.GetBackground() {
		t.Error("Expected default theme for unknown names")
	}
}
