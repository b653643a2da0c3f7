package speech

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"chatshell/pkg/logging"
)

// Command runs an external transcriber and reads results from its stdout.
// Each non-empty line is the cumulative transcript so far; the process is
// killed on Stop.
type Command struct {
	argv []string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCommand creates a recognizer backed by argv.
func NewCommand(argv ...string) *Command {
	return &Command{argv: append([]string(nil), argv...)}
}

func (c *Command) Start(ctx context.Context, onResult func(Result)) error {
	if len(c.argv) == 0 {
		return ErrUnavailable
	}
	path, err := exec.LookPath(c.argv[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return ErrAlreadyRecording
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, path, c.argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("transcriber stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start transcriber: %w", err)
	}

	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	logger := logging.Component("speech").With("command", c.argv[0])
	logger.Debug("transcriber started", "pid", cmd.Process.Pid)

	go func() {
		defer close(done)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			onResult(Result{Transcript: line})
		}
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			logger.Warn("transcriber exited", "error", err)
		}
	}()
	return nil
}

func (c *Command) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}
