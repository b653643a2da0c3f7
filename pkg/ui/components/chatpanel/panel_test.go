package chatpanel

import (
	"strings"
	"testing"
	"time"

	"chatshell/pkg/conversation"
	"chatshell/pkg/section"
	"chatshell/pkg/ui/components/testutils"
	"chatshell/pkg/ui/components/welcome"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func newPanel(width, height int) *Panel {
	p := New()
	p.SetSize(width, height)
	return p
}

func mainChat() Props {
	v, _ := section.Lookup(section.MainChat)
	return Props{Variant: v, Known: true, Banner: welcome.NewBanner(200 * time.Millisecond)}
}

func TestPanel_EmptyConversationShowsBannerAndCards(t *testing.T) {
	p := newPanel(100, 40)

	view := ansi.Strip(p.View(mainChat()))
	if !strings.Contains(view, "How can I help you today?") {
		t.Error("Expected banner headline in view")
	}
	if !strings.Contains(view, "Customer Loyalty Program") {
		t.Error("Expected suggestion cards in view")
	}
	if !strings.Contains(view, inputPlaceholder) {
		t.Error("Expected composer placeholder in view")
	}
}

func TestPanel_VariantsShareTemplate(t *testing.T) {
	for _, v := range section.Catalog() {
		p := newPanel(100, 40)
		props := mainChat()
		props.Variant = v

		view := ansi.Strip(p.View(props))
		if !strings.Contains(view, v.Banner) {
			t.Errorf("%s: expected banner %q in view", v.Tag, v.Banner)
		}
		if !strings.Contains(view, "Explaining Superconductors") {
			t.Errorf("%s: expected the shared suggestion cards", v.Tag)
		}
	}
}

func TestPanel_ViewFitsSize(t *testing.T) {
	p := newPanel(70, 20)
	view := p.View(mainChat())

	if h := lipgloss.Height(view); h != 20 {
		t.Errorf("Expected height 20, got %d", h)
	}
	for _, line := range strings.Split(view, "\n") {
		if w := ansi.StringWidth(line); w > 70 {
			t.Errorf("Line exceeds width 70: %d", w)
		}
	}
}

func TestPanel_UnknownSectionShowsPlaceholder(t *testing.T) {
	p := newPanel(60, 10)

	view := ansi.Strip(p.View(Props{Known: false}))
	if !strings.Contains(view, noSectionText) {
		t.Errorf("Expected placeholder, got %q", view)
	}
	if strings.Contains(view, inputPlaceholder) {
		t.Error("Expected no composer without a section")
	}
}

func TestPanel_HiddenBannerShowsMessages(t *testing.T) {
	p := newPanel(80, 20)
	props := mainChat()
	props.Banner = welcome.NewBanner(0)
	props.Banner.Update(props.Banner.Sync(true)().(welcome.HideMsg))

	p.Sync(conversation.Snapshot{
		Messages: []conversation.Message{
			{ID: "1", Sender: conversation.SenderUser, Text: "hello bot"},
		},
		Pending: true,
	})

	view := ansi.Strip(p.View(props))
	if strings.Contains(view, "How can I help you today?") {
		t.Error("Expected banner to be gone")
	}
	if !strings.Contains(view, "hello bot") {
		t.Error("Expected user message in view")
	}
	if !strings.Contains(view, pendingLabel) {
		t.Error("Expected pending indicator in view")
	}
}

func TestPanel_SyncUpdatesComposer(t *testing.T) {
	p := newPanel(80, 20)

	p.Sync(conversation.Snapshot{Draft: "dictated text"})
	if p.Value() != "dictated text" {
		t.Errorf("Expected composer to show draft, got %q", p.Value())
	}

	p.Sync(conversation.Snapshot{})
	if p.Value() != "" {
		t.Errorf("Expected composer cleared, got %q", p.Value())
	}
}

func TestPanel_UpdateInputReportsChange(t *testing.T) {
	p := newPanel(80, 20)

	changed, _ := p.UpdateInput(testutils.NewTextKeyPressMsg("h"))
	if !changed {
		t.Error("Expected typing to change the composer")
	}
	if p.Value() != "h" {
		t.Errorf("Expected 'h', got %q", p.Value())
	}

	changed, _ = p.UpdateInput(testutils.TestKeyUp)
	if changed {
		t.Error("Expected arrow key to leave text unchanged")
	}
}

func TestPanel_LockedComposer(t *testing.T) {
	p := newPanel(80, 20)
	props := mainChat()
	props.Locked = true

	view := ansi.Strip(p.View(props))
	if !strings.Contains(view, lockedPlaceholder) {
		t.Error("Expected locked placeholder while a reply is pending")
	}
}

func TestPanel_RecordingIndicator(t *testing.T) {
	p := newPanel(80, 20)
	props := mainChat()

	if strings.Contains(ansi.Strip(p.View(props)), "REC") {
		t.Error("Expected no recording indicator while idle")
	}
	props.Recording = true
	if !strings.Contains(ansi.Strip(p.View(props)), "● REC") {
		t.Error("Expected recording indicator")
	}
}

func TestPanel_SpinnerStopsWhenIdle(t *testing.T) {
	p := newPanel(80, 20)
	p.Sync(conversation.Snapshot{})

	tick := p.SpinnerTick()
	if tick == nil {
		t.Fatal("Expected spinner tick command")
	}
	if cmd := p.UpdateSpinner(tickMsg(t, tick)); cmd != nil {
		t.Error("Expected spinner to stop when nothing is pending")
	}
}
