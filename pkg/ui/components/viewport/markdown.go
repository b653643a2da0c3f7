package viewport

import (
	"log/slog"
	"strings"

	"chatshell/pkg/logging"
	"chatshell/pkg/ui/components/utils"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// markdownRenderer renders chatbot text, rebuilding glamour only when the wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

func (m *markdownRenderer) Render(text string, width int) string {
	if width <= 0 {
		return text
	}
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(styles.DarkStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logging.Component("viewport").Warn("markdown renderer unavailable", slog.Any("error", err))
			return utils.Wrap(text, width)
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(text)
	if err != nil {
		return utils.Wrap(text, width)
	}
	return strings.Trim(out, "\n")
}
