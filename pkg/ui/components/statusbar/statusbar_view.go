package statusbar

import (
	"fmt"
	"strings"

	"chatshell/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const defaultHint = "Tab focus | Ctrl+B sidebar | Ctrl+O model | Ctrl+S settings"

// StatusBarView handles the status bar rendering with Lipgloss
type StatusBarView struct {
	section   string
	message   string
	gen       int
	model     string
	recording bool
	pending   bool
	width     int
	style     lipgloss.Style
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{
		width: 80,
		style: styles.StatusBarStyle,
	}
}

// SetSection updates the section title displayed
func (s *StatusBarView) SetSection(title string) {
	s.section = title
}

// SetMessage sets a temporary message
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
	s.gen++
}

// MessageGen counts SetMessage calls so a delayed clear can tell whether the
// message it targets is still shown.
func (s *StatusBarView) MessageGen() int {
	return s.gen
}

// Message returns the temporary message, if any.
func (s *StatusBarView) Message() string {
	return s.message
}

// SetModel updates the active model displayed.
func (s *StatusBarView) SetModel(model string) {
	s.model = strings.TrimSpace(model)
}

// SetRecording toggles the recording marker.
func (s *StatusBarView) SetRecording(recording bool) {
	s.recording = recording
}

// SetPending toggles the waiting-for-reply marker.
func (s *StatusBarView) SetPending(pending bool) {
	s.pending = pending
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the styled status bar string
func (s *StatusBarView) Render() string {
	sectionLabel := s.section
	if sectionLabel == "" {
		sectionLabel = "no section"
	}
	modelLabel := s.model
	if modelLabel == "" {
		modelLabel = "unknown"
	}

	parts := []string{fmt.Sprintf("[chatshell] %s", sectionLabel), fmt.Sprintf("model: %s", modelLabel)}
	if s.recording {
		parts = append(parts, "● recording")
	}
	if s.pending {
		parts = append(parts, "waiting for reply")
	}
	if s.message != "" {
		parts = append(parts, s.message)
	} else {
		parts = append(parts, defaultHint)
	}
	content := strings.Join(parts, " | ")

	// Truncate if too long (ANSI-aware width).
	maxWidth := s.width - 2
	if maxWidth < 10 {
		maxWidth = 10
	}

	if ansi.StringWidth(content) > maxWidth {
		content = ansi.Truncate(content, maxWidth, "...")
	}

	// Pad inside the style so the background spans the full width
	if pad := maxWidth - ansi.StringWidth(content); pad > 0 {
		content += strings.Repeat(" ", pad)
	}

	return s.style.Render(content)
}

// SetTheme allows changing the status bar theme
func (s *StatusBarView) SetTheme(theme string) {
	switch theme {
	case "cyan":
		s.style = styles.StatusBarStyleCyan
	case "dark":
		s.style = styles.StatusBarStyleDark
	default:
		s.style = styles.StatusBarStyle
	}
}
