package speech

import (
	"context"
	"fmt"
	"sync"
)

// State is the recording state of a Capture.
type State int

const (
	StateIdle State = iota
	StateRecording
)

func (s State) String() string {
	if s == StateRecording {
		return "recording"
	}
	return "idle"
}

// Transcript is a recognition result resolved against the draft captured when
// its session started.
type Transcript struct {
	Session uint64
	Draft   string
	Result  Result
}

// Capture drives a Recognizer for push-to-record dictation.
//
// Every result rewrites the draft as the draft captured at Start plus the
// transcript, so text typed while recording is replaced by the next result.
type Capture struct {
	mu      sync.Mutex
	rec     Recognizer
	state   State
	session uint64
	cancel  context.CancelFunc
	results chan Transcript
}

// NewCapture wraps rec.
func NewCapture(rec Recognizer) *Capture {
	if rec == nil {
		rec = Unavailable{}
	}
	return &Capture{
		rec:     rec,
		results: make(chan Transcript, 16),
	}
}

// Compose joins the captured draft and a transcript.
func Compose(base, transcript string) string {
	return base + " " + transcript
}

// Start begins a recording session on top of draft. No availability check is
// made beforehand: a missing capability surfaces as the error from Start.
func (c *Capture) Start(draft string) error {
	c.mu.Lock()
	if c.state == StateRecording {
		c.mu.Unlock()
		return ErrAlreadyRecording
	}
	c.session++
	session := c.session
	ctx, cancel := context.WithCancel(context.Background())
	c.state = StateRecording
	c.cancel = cancel
	rec := c.rec
	c.mu.Unlock()

	err := rec.Start(ctx, func(r Result) {
		c.deliver(ctx, session, draft, r)
	})
	if err != nil {
		c.mu.Lock()
		if c.session == session {
			c.state = StateIdle
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("start recording: %w", err)
	}
	return nil
}

// Stop ends the current session. Stopping while idle does nothing.
func (c *Capture) Stop() error {
	c.mu.Lock()
	if c.state != StateRecording {
		c.mu.Unlock()
		return nil
	}
	c.state = StateIdle
	cancel := c.cancel
	c.cancel = nil
	rec := c.rec
	c.mu.Unlock()

	// Cancel first so a recognizer blocked on delivery can wind down.
	if cancel != nil {
		cancel()
	}
	if err := rec.Stop(); err != nil {
		return fmt.Errorf("stop recording: %w", err)
	}
	return nil
}

// Results delivers transcripts in arrival order.
func (c *Capture) Results() <-chan Transcript {
	return c.results
}

// Apply returns the draft carried by t if its session is still recording.
// Transcripts that arrive after Stop are discarded.
func (c *Capture) Apply(t Transcript) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRecording || c.session != t.Session {
		return "", false
	}
	return t.Draft, true
}

// State returns the current recording state.
func (c *Capture) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Recording reports whether a session is active.
func (c *Capture) Recording() bool {
	return c.State() == StateRecording
}

// SetRecognizer swaps the capability. It takes effect at the next Start.
func (c *Capture) SetRecognizer(rec Recognizer) {
	if rec == nil {
		rec = Unavailable{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = rec
}

func (c *Capture) deliver(ctx context.Context, session uint64, base string, r Result) {
	t := Transcript{
		Session: session,
		Draft:   Compose(base, r.Transcript),
		Result:  r,
	}
	select {
	case c.results <- t:
	case <-ctx.Done():
	}
}
