package picker

import (
	"strings"

	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
)

const pickerFooterLabel = "Enter Select | Esc Cancel"

// ModelSelectMsg reports the model chosen in the dropdown.
type ModelSelectMsg struct {
	Model string
}

// ModelPicker is the dropdown under the chat header listing the available models.
type ModelPicker struct {
	options  []string
	selected int
	scroll   int
	visible  bool
	width    int
	height   int
}

// NewModelPicker creates a new model picker.
func NewModelPicker() *ModelPicker {
	return &ModelPicker{}
}

// Show opens the dropdown with current preselected.
func (p *ModelPicker) Show(options []string, current string) {
	p.visible = true
	p.options = append([]string(nil), options...)
	p.selected = 0
	p.scroll = 0

	for i, option := range p.options {
		if option == current {
			p.selected = i
			break
		}
	}

	p.ensureVisible(p.listHeight())
}

// Hide hides the picker.
func (p *ModelPicker) Hide() {
	p.visible = false
}

// IsVisible reports whether the picker is visible.
func (p *ModelPicker) IsVisible() bool {
	return p.visible
}

// SetSize updates the space the dropdown may take.
func (p *ModelPicker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Selected returns the highlighted option.
func (p *ModelPicker) Selected() (string, bool) {
	if p.selected < 0 || p.selected >= len(p.options) {
		return "", false
	}
	return p.options[p.selected], true
}

// Update handles keyboard input for the picker.
func (p *ModelPicker) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !p.visible {
		return nil
	}

	listHeight := p.listHeight()

	switch msg.String() {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
		p.ensureVisible(listHeight)

	case "down", "j":
		if p.selected < len(p.options)-1 {
			p.selected++
		}
		p.ensureVisible(listHeight)

	case "home":
		p.selected = 0
		p.ensureVisible(listHeight)

	case "end":
		p.selected = len(p.options) - 1
		p.ensureVisible(listHeight)

	case "enter":
		value, ok := p.Selected()
		if !ok {
			return nil
		}
		p.Hide()
		return func() tea.Msg {
			return ModelSelectMsg{Model: value}
		}

	case "esc":
		p.Hide()
	}

	return nil
}

// View renders the dropdown.
func (p *ModelPicker) View() string {
	if !p.visible {
		return ""
	}

	contentWidth, listHeight := p.dimensions()

	var lines []string
	if len(p.options) == 0 {
		lines = append(lines, styles.TextMutedStyle.Render("No models available"))
	}
	for i := 0; i < listHeight && p.scroll+i < len(p.options); i++ {
		index := p.scroll + i
		line := utils.PadStyled("  "+utils.TruncateToWidth(p.options[index], contentWidth-2), contentWidth)
		if index == p.selected {
			lines = append(lines, styles.SelectedStyle.Render(line))
		} else {
			lines = append(lines, styles.TextStyle.Render(line))
		}
	}
	lines = append(lines, styles.FooterStyle.Render(utils.TruncateToWidth(pickerFooterLabel, contentWidth)))

	return styles.BoxStyleCompact.Render(strings.Join(lines, "\n"))
}

func (p *ModelPicker) ensureVisible(listHeight int) {
	if len(p.options) == 0 {
		p.selected = 0
		p.scroll = 0
		return
	}

	p.selected = min(max(p.selected, 0), len(p.options)-1)

	if p.selected < p.scroll {
		p.scroll = p.selected
	}
	if p.selected >= p.scroll+listHeight {
		p.scroll = p.selected - listHeight + 1
	}
	p.scroll = min(max(p.scroll, 0), max(len(p.options)-listHeight, 0))
}

// dimensions returns the inner width and the number of visible options.
func (p *ModelPicker) dimensions() (int, int) {
	width := p.width
	height := p.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	// Border and padding take four columns; border and footer take three rows.
	contentWidth := min(max(width-4, 10), 36)
	listHeight := max(height-3, 1)
	return contentWidth, listHeight
}

func (p *ModelPicker) listHeight() int {
	_, listHeight := p.dimensions()
	return listHeight
}
