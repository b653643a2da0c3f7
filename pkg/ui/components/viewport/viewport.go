package viewport

import (
	"strings"

	"chatshell/pkg/conversation"
	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/styles"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const chatbotLabel = "◆ ChatGPT"

// MessageViewport wraps Bubble Tea's viewport for displaying the conversation
type MessageViewport struct {
	Viewport viewport.Model
	messages []conversation.Message
	body     string // rendered messages, rebuilt when messages or width change
	pending  string
	markdown markdownRenderer
	ready    bool
	dirty    bool // True if content changed since last View()
}

// NewMessageViewport creates a new message viewport
func NewMessageViewport() MessageViewport {
	return MessageViewport{
		Viewport: viewport.New(),
	}
}

// SetSize updates the viewport dimensions
func (v *MessageViewport) SetSize(width, height int) {
	if width == v.Viewport.Width() && height == v.Viewport.Height() && v.ready {
		return
	}
	v.Viewport.SetWidth(width)
	v.Viewport.SetHeight(height)
	v.ready = true
	v.body = v.renderMessages()
	v.refresh()
}

// SetMessages replaces the rendered conversation.
// The view follows the newest message when the list grows.
func (v *MessageViewport) SetMessages(messages []conversation.Message) {
	if sameMessages(v.messages, messages) {
		return
	}
	grew := len(messages) > len(v.messages)
	v.messages = messages
	v.body = v.renderMessages()
	v.refresh()
	if grew {
		v.Viewport.GotoBottom()
	}
}

// Messages are append-only, so length and the last ID identify a list.
func sameMessages(a, b []conversation.Message) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || a[len(a)-1].ID == b[len(b)-1].ID
}

// SetPending shows indicator under the last message. An empty indicator removes it.
func (v *MessageViewport) SetPending(indicator string) {
	if indicator == v.pending {
		return
	}
	appeared := v.pending == "" && indicator != ""
	v.pending = indicator
	v.refresh()
	if appeared {
		v.Viewport.GotoBottom()
	}
}

// Messages returns the messages currently rendered.
func (v *MessageViewport) Messages() []conversation.Message {
	return v.messages
}

// Dirty reports whether content changed since the last View.
func (v *MessageViewport) Dirty() bool {
	return v.dirty
}

func (v *MessageViewport) refresh() {
	v.Viewport.SetContent(v.render())
	v.dirty = true
}

func (v *MessageViewport) render() string {
	if v.pending == "" {
		return v.body
	}
	indicator := styles.SenderStyle.Render(chatbotLabel) + "\n" + styles.PendingStyle.Render(v.pending)
	if v.body == "" {
		return indicator
	}
	return v.body + "\n\n" + indicator
}

func (v *MessageViewport) renderMessages() string {
	width := v.Viewport.Width()
	if width <= 0 {
		width = 80
	}

	blocks := make([]string, 0, len(v.messages))
	for _, msg := range v.messages {
		blocks = append(blocks, v.renderMessage(msg, width))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *MessageViewport) renderMessage(msg conversation.Message, width int) string {
	if msg.IsUser() {
		// User messages sit on the right in a bubble at most two thirds of the width.
		bubbleWidth := max(width*2/3, 10)
		text := utils.Wrap(msg.Text, bubbleWidth-2)
		bubble := styles.UserBubbleStyle.Render(text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}
	body := v.markdown.Render(msg.Text, width)
	return styles.SenderStyle.Render(chatbotLabel) + "\n" + body
}

// Update handles viewport updates (scrolling, etc)
func (v *MessageViewport) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.Viewport, cmd = v.Viewport.Update(msg)
	return cmd
}

// View renders the viewport
func (v *MessageViewport) View() string {
	v.dirty = false // Clear dirty flag on render

	if !v.ready {
		return "Loading..."
	}

	return v.Viewport.View()
}

// Scrolling helpers

// PageUp scrolls up one page
func (v *MessageViewport) PageUp() {
	v.Viewport.PageUp()
}

// PageDown scrolls down one page
func (v *MessageViewport) PageDown() {
	v.Viewport.PageDown()
}

// IsAtBottom returns true if scrolled to bottom
func (v *MessageViewport) IsAtBottom() bool {
	return v.Viewport.AtBottom()
}
