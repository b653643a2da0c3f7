package ui

import (
	"fmt"
	"io"
	"time"

	"chatshell/pkg/config"
	"chatshell/pkg/conversation"
	"chatshell/pkg/speech"

	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const noticeDuration = 4 * time.Second

// replyDueMsg fires when the simulated reply latency for ticket has elapsed.
type replyDueMsg struct {
	ticket conversation.Ticket
}

// transcriptMsg carries a recognition result to the update loop.
type transcriptMsg struct {
	transcript speech.Transcript
}

// configReloadedMsg carries a configuration that changed on disk.
type configReloadedMsg struct {
	cfg config.Config
}

// configSavedMsg reports the outcome of saving settings.
type configSavedMsg struct {
	cfg config.Config
	err error
}

// clipboardMsg reports the outcome of a copy.
type clipboardMsg struct {
	err error
}

// noticeExpiredMsg clears the status bar notice set under gen.
type noticeExpiredMsg struct {
	gen int
}

func scheduleReply(ticket conversation.Ticket, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return replyDueMsg{ticket: ticket}
	})
}

// waitForTranscript blocks on the next transcript. The update loop re-arms it after each one.
func waitForTranscript(results <-chan speech.Transcript) tea.Cmd {
	if results == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-results
		if !ok {
			return nil
		}
		return transcriptMsg{transcript: t}
	}
}

// waitForConfig blocks on the next configuration reload.
func waitForConfig(updates <-chan config.Config) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

func saveConfig(path string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		return configSavedMsg{cfg: cfg, err: config.Save(path, cfg)}
	}
}

// copyToClipboard writes text as an OSC 52 sequence so it reaches the
// clipboard of the terminal, including over SSH.
func copyToClipboard(w io.Writer, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := fmt.Fprint(w, osc52.New(text))
		return clipboardMsg{err: err}
	}
}

func expireNotice(gen int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{gen: gen}
	})
}
