// Package chatpanel renders the chat surface every section shares: greeting
// banner, suggestion cards, message list and composer. Sections differ only
// in the variant they pass in.
package chatpanel

import (
	"strings"

	"chatshell/pkg/conversation"
	"chatshell/pkg/section"
	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/components/viewport"
	"chatshell/pkg/ui/components/welcome"
	"chatshell/pkg/ui/styles"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	inputPlaceholder   = "Message ChatGPT..."
	lockedPlaceholder  = "Waiting for reply..."
	pendingLabel       = "Thinking..."
	noSectionText      = "No section selected"
	formHeight         = 4 // bordered input (3) + hint line
	inputFrameWidth    = 4 // border + padding
	minTranscriptLines = 3
)

// Props is everything a section contributes to a render.
type Props struct {
	Variant   section.Variant
	Known     bool // false renders the no-section placeholder
	Banner    *welcome.Banner
	Locked    bool // input disabled while a reply is pending
	Recording bool // send disabled while dictating
}

// Panel holds the widget state shared by all sections.
type Panel struct {
	input    textinput.Model
	messages viewport.MessageViewport
	spinner  spinner.Model
	pending  bool
	width    int
	height   int
}

// New creates a chat panel with a focused composer.
func New() *Panel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = inputPlaceholder
	ti.Focus()

	return &Panel{
		input:    ti,
		messages: viewport.NewMessageViewport(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.PendingStyle)),
	}
}

// SetSize updates the panel dimensions.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.SetWidth(max(width-inputFrameWidth-lipgloss.Width(p.input.Prompt)-1, 1))
}

// Focus gives the composer keyboard focus.
func (p *Panel) Focus() tea.Cmd {
	return p.input.Focus()
}

// Blur removes keyboard focus from the composer.
func (p *Panel) Blur() {
	p.input.Blur()
}

// Focused reports whether the composer has focus.
func (p *Panel) Focused() bool {
	return p.input.Focused()
}

// Value returns the composer text.
func (p *Panel) Value() string {
	return p.input.Value()
}

// UpdateInput routes a key or paste to the composer and reports whether the text changed.
func (p *Panel) UpdateInput(msg tea.Msg) (bool, tea.Cmd) {
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p.input.Value() != before, cmd
}

// Sync brings the panel in line with a store snapshot.
func (p *Panel) Sync(snap conversation.Snapshot) {
	p.messages.SetMessages(snap.Messages)
	p.pending = snap.Pending
	p.refreshPending()
	if p.input.Value() != snap.Draft {
		p.input.SetValue(snap.Draft)
		p.input.CursorEnd()
	}
}

// Pending reports whether the last synced snapshot awaited a reply.
func (p *Panel) Pending() bool {
	return p.pending
}

// SpinnerTick starts the pending indicator animation.
func (p *Panel) SpinnerTick() tea.Cmd {
	return p.spinner.Tick
}

// UpdateSpinner advances the pending indicator. The animation stops once nothing is pending.
func (p *Panel) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !p.pending {
		return nil
	}
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	p.refreshPending()
	return cmd
}

func (p *Panel) refreshPending() {
	if p.pending {
		p.messages.SetPending(p.spinner.View() + " " + pendingLabel)
	} else {
		p.messages.SetPending("")
	}
}

// UpdateScroll routes mouse wheel events to the message list.
func (p *Panel) UpdateScroll(msg tea.MouseWheelMsg) tea.Cmd {
	return p.messages.Update(msg)
}

// AtBottom reports whether the newest message is in view.
func (p *Panel) AtBottom() bool {
	return p.messages.IsAtBottom()
}

// PageUp scrolls the message list up one page.
func (p *Panel) PageUp() {
	p.messages.PageUp()
}

// PageDown scrolls the message list down one page.
func (p *Panel) PageDown() {
	p.messages.PageDown()
}

// View renders the panel for a section.
func (p *Panel) View(props Props) string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}
	if !props.Known {
		return Placeholder(p.width, p.height)
	}

	contentHeight := p.height - formHeight
	content := p.contentView(props, contentHeight)
	form := p.formView(props)
	return lipgloss.JoinVertical(lipgloss.Left, content, form)
}

// Placeholder renders the empty state shown when no section matches.
func Placeholder(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		styles.PlaceholderStyle.Render(noSectionText))
}

func (p *Panel) contentView(props Props, height int) string {
	if height <= 0 {
		return ""
	}

	banner := props.Banner
	if banner == nil || !banner.Visible() {
		p.messages.SetSize(p.width, height)
		return utils.FitLines(p.messages.View(), p.width, height)
	}

	top := banner.View(props.Variant.Banner, p.width)
	bottom := banner.CardsView(p.width)
	used := lipgloss.Height(top) + lipgloss.Height(bottom)

	// Cards go first when space runs out; the headline stays.
	if used > height {
		bottom = ""
		used = lipgloss.Height(top)
	}

	middle := ""
	if rest := height - used; rest > 0 {
		if banner.Fading() && rest >= minTranscriptLines {
			p.messages.SetSize(p.width, rest)
			middle = p.messages.View()
		}
		middle = utils.FitLines(middle, p.width, rest)
	}

	parts := []string{top}
	if middle != "" {
		parts = append(parts, middle)
	}
	if bottom != "" {
		parts = append(parts, bottom)
	}
	return utils.FitLines(strings.Join(parts, "\n"), p.width, height)
}

func (p *Panel) formView(props Props) string {
	innerWidth := max(p.width-inputFrameWidth, 1)

	box := styles.InputBoxStyle
	if props.Locked {
		box = styles.InputBoxDisabledStyle
		p.input.Placeholder = lockedPlaceholder
	} else {
		p.input.Placeholder = inputPlaceholder
	}
	field := utils.PadStyled(utils.FitLines(p.input.View(), innerWidth, 1), innerWidth)

	send := "enter send"
	if props.Locked || props.Recording {
		send = styles.TextFadedStyle.Render(send)
	} else {
		send = styles.TextMutedStyle.Render(send)
	}
	mic := styles.TextMutedStyle.Render("ctrl+r record")
	if props.Recording {
		mic = styles.RecordingStyle.Render("● REC") + styles.TextMutedStyle.Render("  ctrl+r stop")
	}
	gap := max(p.width-lipgloss.Width(send)-lipgloss.Width(mic)-2, 1)
	hint := " " + send + strings.Repeat(" ", gap) + mic

	return box.Render(field) + "\n" + utils.FitLines(hint, p.width, 1)
}
