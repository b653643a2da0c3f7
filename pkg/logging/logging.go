package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"chatshell/pkg/config"
	"chatshell/pkg/version"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "chatshell.log"
const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// sink is the output the default logger currently writes to. The level is
// shared with the handler so it can change without rebuilding it.
type sink struct {
	mu     sync.Mutex
	level  slog.LevelVar
	format string
	path   string
	writer *lumberjack.Logger
	ready  bool
}

var active sink

// Init configures slog to write structured logs to a rotating file.
// The terminal belongs to the TUI, so nothing is ever logged to stdout/stderr.
// Every record carries the build version.
func Init(cfg config.Config) (*slog.Logger, error) {
	active.mu.Lock()
	defer active.mu.Unlock()
	return active.open(cfg)
}

// Reconfigure applies changed logging settings to the default logger.
// A level change is applied in place and a new format or file reopens the
// sink. Before Init only the level is recorded.
func Reconfigure(cfg config.Config) (*slog.Logger, error) {
	active.mu.Lock()
	defer active.mu.Unlock()

	if !active.ready || (active.format == normalizeFormat(cfg.LogFormat) && active.path == logPath(cfg)) {
		active.level.Set(ParseLevel(cfg.LogLevel))
		return slog.Default(), nil
	}
	return active.open(cfg)
}

func (s *sink) open(cfg config.Config) (*slog.Logger, error) {
	if s.writer != nil {
		_ = s.writer.Close()
		s.writer = nil
	}
	s.level.Set(ParseLevel(cfg.LogLevel))
	s.format = normalizeFormat(cfg.LogFormat)
	s.path = logPath(cfg)
	s.ready = true
	handlerOptions := &slog.HandlerOptions{Level: &s.level}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		logger := slog.New(newHandler(s.format, io.Discard, handlerOptions))
		slog.SetDefault(logger)
		return logger, err
	}

	s.writer = &lumberjack.Logger{
		Filename:   s.path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	logger := slog.New(newHandler(s.format, s.writer, handlerOptions)).
		With("version", version.Summary())
	slog.SetDefault(logger)
	return logger, nil
}

// Component returns the default logger tagged with a component name.
func Component(name string) *slog.Logger {
	return slog.Default().With("component", name)
}

// DefaultLogPath returns ~/.chatshell/logs/chatshell.log.
func DefaultLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return filepath.Join(".chatshell", "logs", defaultLogFile)
	}
	return filepath.Join(homeDir, ".chatshell", "logs", defaultLogFile)
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logPath(cfg config.Config) string {
	path := strings.TrimSpace(cfg.LogFile)
	if path == "" {
		return DefaultLogPath()
	}
	return path
}

func normalizeFormat(format string) string {
	if strings.ToLower(strings.TrimSpace(format)) == "text" {
		return "text"
	}
	return "json"
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch normalizeFormat(format) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}
