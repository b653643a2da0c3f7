// Package historypicker lets the user recall a prompt they already sent.
package historypicker

import (
	"strings"

	"chatshell/pkg/conversation"
	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
)

// HistoryPickerSelectMsg is sent when a prompt is selected
type HistoryPickerSelectMsg struct {
	Prompt string
}

// HistoryPickerCancelMsg is sent when picker is cancelled
type HistoryPickerCancelMsg struct{}

// HistoryPicker is a searchable list of earlier prompts, newest first.
type HistoryPicker struct {
	prompts  []string
	filtered []string
	filter   string
	selected int
	scroll   int
	visible  bool
	width    int
	height   int
}

// NewHistoryPicker creates a hidden picker.
func NewHistoryPicker() *HistoryPicker {
	return &HistoryPicker{}
}

// Prompts returns the distinct user prompts in messages, newest first.
func Prompts(messages []conversation.Message) []string {
	seen := make(map[string]bool)
	var out []string
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if !msg.IsUser() || strings.TrimSpace(msg.Text) == "" || seen[msg.Text] {
			continue
		}
		seen[msg.Text] = true
		out = append(out, msg.Text)
	}
	return out
}

// Show displays the picker with prompts and optional initial filter
func (hp *HistoryPicker) Show(initialFilter string, prompts []string) {
	hp.visible = true
	hp.prompts = append([]string(nil), prompts...)
	hp.filter = initialFilter
	hp.selected = 0
	hp.scroll = 0
	hp.updateFiltered()
	hp.ensureVisible()
}

// Hide hides the picker
func (hp *HistoryPicker) Hide() {
	hp.visible = false
}

// IsVisible returns whether the picker is visible
func (hp *HistoryPicker) IsVisible() bool {
	return hp.visible
}

// SetSize updates the picker dimensions
func (hp *HistoryPicker) SetSize(width, height int) {
	hp.width = width
	hp.height = height
}

// Filtered returns the prompts matching the current filter.
func (hp *HistoryPicker) Filtered() []string {
	return hp.filtered
}

func (hp *HistoryPicker) updateFiltered() {
	if hp.filter == "" {
		hp.filtered = hp.prompts
		return
	}

	filterLower := strings.ToLower(hp.filter)
	hp.filtered = make([]string, 0)
	for _, p := range hp.prompts {
		if strings.Contains(strings.ToLower(p), filterLower) {
			hp.filtered = append(hp.filtered, p)
		}
	}
}

func (hp *HistoryPicker) setFilter(filter string) {
	hp.filter = filter
	hp.updateFiltered()
	hp.selected = 0
	hp.ensureVisible()
}

// Update handles keyboard input for the picker
func (hp *HistoryPicker) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !hp.visible {
		return nil
	}

	listHeight := hp.listHeight()

	switch msg.String() {
	case "up":
		if hp.selected > 0 {
			hp.selected--
		}

	case "down":
		if hp.selected < len(hp.filtered)-1 {
			hp.selected++
		}

	case "pgup":
		hp.selected = max(hp.selected-listHeight, 0)

	case "pgdown":
		hp.selected = min(hp.selected+listHeight, len(hp.filtered)-1)

	case "home":
		hp.selected = 0

	case "end":
		hp.selected = len(hp.filtered) - 1

	case "enter", "tab":
		if hp.selected >= 0 && hp.selected < len(hp.filtered) {
			prompt := hp.filtered[hp.selected]
			hp.Hide()
			return func() tea.Msg {
				return HistoryPickerSelectMsg{Prompt: prompt}
			}
		}
		return nil

	case "esc":
		hp.Hide()
		return func() tea.Msg {
			return HistoryPickerCancelMsg{}
		}

	case "backspace":
		if runes := []rune(hp.filter); len(runes) > 0 {
			hp.setFilter(string(runes[:len(runes)-1]))
		}
		return nil

	case "ctrl+u":
		if hp.filter != "" {
			hp.setFilter("")
		}
		return nil

	default:
		if text := msg.Key().Text; text != "" {
			hp.setFilter(hp.filter + text)
		}
		return nil
	}

	hp.ensureVisible()
	return nil
}

// View renders the picker
func (hp *HistoryPicker) View() string {
	if !hp.visible {
		return ""
	}

	contentWidth, listHeight := hp.dimensions()

	var lines []string
	lines = append(lines, styles.TitleStyle.Render("Prompt History"))
	if hp.filter != "" {
		lines = append(lines, styles.TextBoldStyle.Render("Filter: "+hp.filter))
	} else {
		lines = append(lines, styles.TextMutedStyle.Render("Type to search..."))
	}
	lines = append(lines, "")

	if len(hp.filtered) == 0 {
		empty := "No prompts yet"
		if hp.filter != "" {
			empty = "No matching prompts"
		}
		lines = append(lines, styles.TextMutedStyle.Render(empty))
		for i := 1; i < listHeight; i++ {
			lines = append(lines, "")
		}
	} else {
		for i := 0; i < listHeight; i++ {
			index := hp.scroll + i
			if index >= len(hp.filtered) {
				lines = append(lines, "")
				continue
			}
			line := "  " + utils.TruncateToWidth(singleLine(hp.filtered[index]), contentWidth-2)
			if index == hp.selected {
				lines = append(lines, styles.SelectedStyle.Render(utils.PadStyled(line, contentWidth)))
			} else {
				lines = append(lines, styles.TextStyle.Render(line))
			}
		}
	}

	lines = append(lines, "")
	footer := "↑↓ Navigate | Enter Select | Esc Cancel | Ctrl+U Clear"
	if len(hp.filtered) > listHeight {
		footer = "↑↓ Navigate | PgUp/PgDn Scroll | Enter Select | Esc Cancel"
	}
	lines = append(lines, styles.FooterStyle.Render(utils.TruncateToWidth(footer, contentWidth)))

	body := utils.FitLines(strings.Join(lines, "\n"), contentWidth, len(lines))
	return styles.BoxStyleCompact.Render(body)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ensureVisible adjusts scroll to keep selected item visible
func (hp *HistoryPicker) ensureVisible() {
	listHeight := hp.listHeight()

	if len(hp.filtered) == 0 {
		hp.selected = 0
		hp.scroll = 0
		return
	}

	hp.selected = min(max(hp.selected, 0), len(hp.filtered)-1)

	maxScroll := max(len(hp.filtered)-listHeight, 0)
	hp.scroll = min(hp.scroll, maxScroll)
	if hp.selected < hp.scroll {
		hp.scroll = hp.selected
	}
	if hp.selected >= hp.scroll+listHeight {
		hp.scroll = hp.selected - listHeight + 1
	}
	hp.scroll = max(hp.scroll, 0)
}

// dimensions returns the content width and the number of list rows.
func (hp *HistoryPicker) dimensions() (int, int) {
	width := hp.width
	height := hp.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	// Compact box: border plus one column of padding per side.
	contentWidth := max(min(width, 100)-4, 1)

	// Fixed rows: border (2), title, filter, blank, blank, footer
	const fixedLines = 7
	const maxListHeight = 12
	listHeight := min(max(height-fixedLines, 1), maxListHeight)

	return contentWidth, listHeight
}

func (hp *HistoryPicker) listHeight() int {
	_, listHeight := hp.dimensions()
	return listHeight
}
