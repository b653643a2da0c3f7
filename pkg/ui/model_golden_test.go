package ui

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"chatshell/pkg/config"
	"chatshell/pkg/ui/components/testutils"
	"chatshell/pkg/ui/components/welcome"
	"chatshell/pkg/version"

	"github.com/charmbracelet/x/exp/golden"
)

var bannerShortcutPattern = regexp.MustCompile(`│  (Enter|Ctrl\+)`)

// normalizeOutput drops the banner shortcut rows and the build version so
// golden files survive new key bindings and releases.
func normalizeOutput(output string) string {
	output = strings.ReplaceAll(output, "\r", "")
	versionPattern := regexp.MustCompile(`│\s+` + regexp.QuoteMeta(version.Summary()) + `\s+│`)

	lines := strings.Split(output, "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if bannerShortcutPattern.MatchString(line) {
			continue
		}
		normalized = append(normalized, versionPattern.ReplaceAllString(line, "│ <version> │"))
	}
	return strings.Join(normalized, "\n")
}

// requireGolden compares out with testdata/<test>.golden, recording the file
// on first run. Pass -update to rewrite existing files.
func requireGolden(t *testing.T, out string) {
	t.Helper()
	path := filepath.Join("testdata", t.Name()+".golden")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create testdata: %v", err)
		}
		if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
			t.Fatalf("record golden file: %v", err)
		}
		t.Logf("recorded %s", path)
	}
	golden.RequireEqual(t, []byte(out))
}

func TestModelViewGolden(t *testing.T) {
	tm := newTestModel(t, nil)

	requireGolden(t, normalizeOutput(screen(tm.Model)))
}

func TestModelViewGolden_AfterReply(t *testing.T) {
	tm := newTestModel(t, nil)
	m := typeText(t, tm.Model, "hello")
	m = step(t, m, testutils.TestKeyEnter)
	m = step(t, m, replyDueMsg{ticket: 1})
	m = step(t, m, welcome.HideMsg{Gen: 1})

	requireGolden(t, normalizeOutput(screen(m)))
}

func TestModelViewGolden_NoSection(t *testing.T) {
	tm := newTestModel(t, func(cfg *config.Config, _ *Options) {
		cfg.InitialSection = "not-a-section"
	})

	requireGolden(t, normalizeOutput(screen(tm.Model)))
}

func TestNormalizeOutput(t *testing.T) {
	in := strings.Join([]string{
		"nav   │ Welcome │",
		"nav   │  Enter     Send message │",
		"nav   │  Ctrl+R    Start or stop recording │",
		"nav   │      " + version.Summary() + "      │",
		"Tab focus | Ctrl+B sidebar\r",
	}, "\n")

	want := strings.Join([]string{
		"nav   │ Welcome │",
		"nav   │ <version> │",
		"Tab focus | Ctrl+B sidebar",
	}, "\n")
	if got := normalizeOutput(in); got != want {
		t.Errorf("normalizeOutput() = %q, want %q", got, want)
	}
}
