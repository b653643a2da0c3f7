package welcome

import (
	"fmt"
	"strings"
	"time"

	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/styles"
	"chatshell/pkg/version"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Phase is the greeting banner's visibility phase.
type Phase int

const (
	PhaseVisible Phase = iota
	PhaseFading
	PhaseHidden
)

func (p Phase) String() string {
	switch p {
	case PhaseVisible:
		return "visible"
	case PhaseFading:
		return "fading"
	case PhaseHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// HideMsg finishes a fade started by Sync. Stale generations are ignored.
type HideMsg struct {
	Gen int
}

// Banner tracks the greeting shown while the conversation is empty.
type Banner struct {
	phase Phase
	gen   int
	fade  time.Duration
}

// NewBanner returns a visible banner that takes fade to hand off to the transcript.
func NewBanner(fade time.Duration) *Banner {
	return &Banner{fade: fade}
}

// SetFade changes the hand-off interval for future fades.
func (b *Banner) SetFade(fade time.Duration) {
	b.fade = fade
}

// Phase returns the current phase.
func (b *Banner) Phase() Phase {
	return b.phase
}

// Visible reports whether the banner and suggestion cards are still laid out.
func (b *Banner) Visible() bool {
	return b.phase != PhaseHidden
}

// Fading reports whether the banner is rendered dimmed before it disappears.
func (b *Banner) Fading() bool {
	return b.phase == PhaseFading
}

// Sync reacts to the conversation gaining or losing messages.
// The returned command, if any, delivers the HideMsg that completes the fade.
func (b *Banner) Sync(hasMessages bool) tea.Cmd {
	if !hasMessages {
		if b.phase != PhaseVisible {
			b.phase = PhaseVisible
			b.gen++
		}
		return nil
	}
	if b.phase != PhaseVisible {
		return nil
	}
	b.phase = PhaseFading
	b.gen++
	gen := b.gen
	return tea.Tick(b.fade, func(time.Time) tea.Msg {
		return HideMsg{Gen: gen}
	})
}

// Update applies a HideMsg. It reports whether the phase changed.
func (b *Banner) Update(msg HideMsg) bool {
	if msg.Gen != b.gen || b.phase != PhaseFading {
		return false
	}
	b.phase = PhaseHidden
	return true
}

// View renders the greeting box with headline centered in it.
func (b *Banner) View(headline string, width int) string {
	if !b.Visible() {
		return ""
	}
	out := Box(headline, width)
	if b.Fading() {
		return fadeBlock(out)
	}
	return out
}

// Box returns the greeting box string for the given width.
func Box(headline string, width int) string {
	boxWidth := min(53, width-2) // Total inner width
	if boxWidth < 10 {
		return utils.TruncateToWidth(headline, width)
	}

	// Helper: create a line with content padded to boxWidth
	makeLine := func(content string, visualWidth int) string {
		pad := boxWidth - visualWidth
		if pad < 0 {
			pad = 0
		}
		return styles.BannerBorderStyle.Render("│") + content + strings.Repeat(" ", pad) + styles.BannerBorderStyle.Render("│")
	}
	centered := func(text string, render func(...string) string) string {
		text = utils.TruncateToWidth(text, boxWidth-2)
		w := runewidth.StringWidth(text)
		left := (boxWidth - w) / 2
		return makeLine(strings.Repeat(" ", left)+render(text), left+w)
	}

	top := styles.BannerBorderStyle.Render("╭" + strings.Repeat("─", boxWidth) + "╮")
	bottom := styles.BannerBorderStyle.Render("╰" + strings.Repeat("─", boxWidth) + "╯")
	empty := makeLine("", 0)

	var lines []string
	lines = append(lines, top)
	lines = append(lines, centered(headline, styles.BannerTitleStyle.Render))
	lines = append(lines, empty)

	shortcuts := []struct{ key, desc string }{
		{"Enter", "Send message"},
		{"Ctrl+R", "Start or stop recording"},
		{"Ctrl+B", "Toggle section sidebar"},
		{"Ctrl+O", "Choose model"},
		{"Ctrl+S", "Settings"},
		{"Ctrl+C", "Quit"},
	}
	for _, s := range shortcuts {
		keyFormatted := fmt.Sprintf("  %-8s", s.key)
		desc := utils.TruncateToWidth(s.desc, boxWidth-runewidth.StringWidth(keyFormatted))
		line := styles.TitleStyle.Render(keyFormatted) + styles.TextStyle.Render(desc)
		lines = append(lines, makeLine(line, runewidth.StringWidth(keyFormatted)+runewidth.StringWidth(desc)))
	}

	lines = append(lines, empty)
	lines = append(lines, centered(version.Summary(), styles.BannerVersionStyle.Render))
	lines = append(lines, bottom)

	block := strings.Join(lines, "\n")
	return centerBlock(block, width)
}

func centerBlock(block string, width int) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = utils.CenterStyled(line, width)
	}
	return strings.Join(lines, "\n")
}

func fadeBlock(block string) string {
	lines := strings.Split(ansi.Strip(block), "\n")
	for i, line := range lines {
		lines[i] = styles.TextFadedStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}
