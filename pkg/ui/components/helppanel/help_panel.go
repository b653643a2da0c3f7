package helppanel

import (
	"strings"

	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
)

// HelpPanelCloseMsg is sent when the help panel is closed
type HelpPanelCloseMsg struct{}

// HelpPanel shows scrollable reference text: key bindings and build info.
type HelpPanel struct {
	title   string
	lines   []string
	visible bool
	width   int
	height  int
	scrollY int
}

// NewHelpPanel creates a hidden help panel.
func NewHelpPanel() *HelpPanel {
	return &HelpPanel{}
}

// Show displays the panel with content
func (hp *HelpPanel) Show(title, content string) {
	hp.title = title
	hp.visible = true
	hp.scrollY = 0
	hp.lines = strings.Split(content, "\n")
}

// Hide hides the panel
func (hp *HelpPanel) Hide() {
	hp.visible = false
}

// IsVisible returns whether the panel is visible
func (hp *HelpPanel) IsVisible() bool {
	return hp.visible
}

// SetSize sets the panel dimensions
func (hp *HelpPanel) SetSize(width, height int) {
	hp.width = width
	hp.height = height
}

// ScrollY returns the first visible content line.
func (hp *HelpPanel) ScrollY() int {
	return hp.scrollY
}

// Update handles keyboard input for the panel
func (hp *HelpPanel) Update(msg tea.KeyPressMsg) tea.Cmd {
	maxScroll := max(len(hp.lines)-hp.visibleLines(), 0)

	switch msg.String() {
	case "esc", "enter", "q", "f1":
		hp.Hide()
		return func() tea.Msg {
			return HelpPanelCloseMsg{}
		}

	case "up":
		if hp.scrollY > 0 {
			hp.scrollY--
		}

	case "down":
		if hp.scrollY < maxScroll {
			hp.scrollY++
		}

	case "pgup":
		hp.scrollY = max(hp.scrollY-10, 0)

	case "pgdown":
		hp.scrollY = min(hp.scrollY+10, maxScroll)
	}

	return nil
}

// visibleLines is the number of content rows that fit: border (2), title,
// blank and footer take five.
func (hp *HelpPanel) visibleLines() int {
	height := hp.height
	if height <= 0 {
		height = 24
	}
	return max(height-5, 1)
}

// View renders the panel
func (hp *HelpPanel) View() string {
	if !hp.visible {
		return ""
	}

	width := hp.width
	if width <= 0 {
		width = 80
	}
	// Border and padding take six columns.
	contentWidth := max(min(width, 80)-6, 1)
	visible := hp.visibleLines()

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(utils.TruncateToWidth(hp.title, contentWidth)), "")

	end := min(hp.scrollY+visible, len(hp.lines))
	for i := hp.scrollY; i < end; i++ {
		lines = append(lines, styles.TextStyle.Render(utils.TruncateToWidth(hp.lines[i], contentWidth)))
	}

	footer := "Esc/q Close"
	if len(hp.lines) > visible {
		footer = "↑↓ Scroll • " + footer
	}
	lines = append(lines, styles.FooterStyle.Render(utils.TruncateToWidth(footer, contentWidth)))

	body := utils.FitLines(strings.Join(lines, "\n"), contentWidth, len(lines))
	return styles.BoxStyle.Padding(0, 2).Render(body)
}
