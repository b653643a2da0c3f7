package settings

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func containsText(view, want string) bool {
	return strings.Contains(ansi.Strip(view), want)
}
