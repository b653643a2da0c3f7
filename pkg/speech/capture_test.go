package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"chatshell/pkg/conversation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRecognizer hands the result callback to the test.
type stubRecognizer struct {
	startErr error
	onResult func(Result)
	started  int
	stopped  int
}

func (s *stubRecognizer) Start(_ context.Context, onResult func(Result)) error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started++
	s.onResult = onResult
	return nil
}

func (s *stubRecognizer) Stop() error {
	s.stopped++
	return nil
}

func (s *stubRecognizer) emit(transcript string) {
	s.onResult(Result{Transcript: transcript})
}

func nextTranscript(t *testing.T, c *Capture) Transcript {
	t.Helper()
	select {
	case tr := <-c.Results():
		return tr
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for transcript")
		return Transcript{}
	}
}

func TestCapture_StartStopWithoutResultsLeavesDraft(t *testing.T) {
	rec := &stubRecognizer{}
	c := NewCapture(rec)
	draft := "existing draft"

	require.NoError(t, c.Start(draft))
	assert.True(t, c.Recording())
	require.NoError(t, c.Stop())

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 1, rec.started)
	assert.Equal(t, 1, rec.stopped)
	assert.Equal(t, "existing draft", draft)
	select {
	case tr := <-c.Results():
		t.Fatalf("unexpected transcript %+v", tr)
	default:
	}
}

func TestCapture_ResultsConcatenateOntoStartDraft(t *testing.T) {
	rec := &stubRecognizer{}
	c := NewCapture(rec)
	store := conversation.NewStore()
	store.SetDraftInput("note:")

	require.NoError(t, c.Start(store.Draft()))

	// Typing while dictating is overwritten by the next result.
	store.SetDraftInput("note: typed by hand")

	rec.emit("hello")
	draft, ok := c.Apply(nextTranscript(t, c))
	require.True(t, ok)
	store.SetDraftInput(draft)
	assert.Equal(t, "note: hello", store.Draft())

	rec.emit("hello world")
	draft, ok = c.Apply(nextTranscript(t, c))
	require.True(t, ok)
	store.SetDraftInput(draft)
	assert.Equal(t, "note: hello world", store.Draft())
}

func TestCapture_LateResultAfterStopIsDiscarded(t *testing.T) {
	rec := &stubRecognizer{}
	c := NewCapture(rec)
	require.NoError(t, c.Start(""))

	rec.emit("late")
	tr := nextTranscript(t, c)
	require.NoError(t, c.Stop())

	_, ok := c.Apply(tr)
	assert.False(t, ok)
}

func TestCapture_ResultFromOldSessionIsDiscarded(t *testing.T) {
	rec := &stubRecognizer{}
	c := NewCapture(rec)

	require.NoError(t, c.Start("a"))
	rec.emit("old")
	old := nextTranscript(t, c)
	require.NoError(t, c.Stop())

	require.NoError(t, c.Start("b"))
	_, ok := c.Apply(old)
	assert.False(t, ok)
}

func TestCapture_UnavailableCapability(t *testing.T) {
	c := NewCapture(Unavailable{})

	err := c.Start("draft")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, StateIdle, c.State())
	assert.NoError(t, c.Stop())
}

func TestCapture_StartTwice(t *testing.T) {
	c := NewCapture(&stubRecognizer{})
	require.NoError(t, c.Start(""))

	assert.ErrorIs(t, c.Start(""), ErrAlreadyRecording)
}

func TestCapture_StartErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	c := NewCapture(&stubRecognizer{startErr: boom})

	err := c.Start("")
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Recording())
}

func TestCapture_SetRecognizer(t *testing.T) {
	c := NewCapture(nil)
	assert.ErrorIs(t, c.Start(""), ErrUnavailable)

	rec := &stubRecognizer{}
	c.SetRecognizer(rec)
	require.NoError(t, c.Start(""))
	assert.Equal(t, 1, rec.started)
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "draft words", Compose("draft", "words"))
	assert.Equal(t, " words", Compose("", "words"))
}
