package speech

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Scripted replays a fixed list of phrases as if they were being dictated.
// Each tick adds one phrase to the running transcript.
type Scripted struct {
	phrases  []string
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScripted creates a scripted recognizer.
func NewScripted(phrases []string, interval time.Duration) *Scripted {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Scripted{
		phrases:  append([]string(nil), phrases...),
		interval: interval,
	}
}

func (s *Scripted) Start(ctx context.Context, onResult func(Result)) error {
	if len(s.phrases) == 0 {
		return errors.Join(ErrUnavailable, errors.New("no scripted phrases"))
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return ErrAlreadyRecording
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := range s.phrases {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			onResult(Result{
				Transcript: strings.Join(s.phrases[:i+1], " "),
				Final:      i == len(s.phrases)-1,
			})
		}
	}()
	return nil
}

func (s *Scripted) Stop() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}
