// Package speech adapts speech-recognition capabilities to the chat draft input.
package speech

import (
	"context"
	"errors"

	"chatshell/pkg/config"
)

var (
	// ErrUnavailable is returned by Start when no recognition capability exists.
	ErrUnavailable = errors.New("speech: recognition capability unavailable")
	// ErrAlreadyRecording is returned by Capture.Start during an active session.
	ErrAlreadyRecording = errors.New("speech: already recording")
)

// Result is one incremental recognition result. Transcript holds the text
// recognized so far in the current session.
type Result struct {
	Transcript string
	Final      bool
}

// Recognizer is the narrow interface every recognition capability implements.
// onResult may be called from any goroutine until Stop returns or ctx ends.
type Recognizer interface {
	Start(ctx context.Context, onResult func(Result)) error
	Stop() error
}

// Unavailable is the recognizer used when nothing is configured.
type Unavailable struct{}

func (Unavailable) Start(context.Context, func(Result)) error { return ErrUnavailable }
func (Unavailable) Stop() error { return nil }

// FromConfig builds the recognizer selected by cfg.
func FromConfig(cfg config.SpeechConfig) Recognizer {
	switch cfg.Provider {
	case config.SpeechProviderScript:
		return NewScripted(cfg.Script, cfg.Interval())
	case config.SpeechProviderCommand:
		return NewCommand(cfg.Command...)
	default:
		return Unavailable{}
	}
}
