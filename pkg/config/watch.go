package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the burst of events a single save produces.
const debounce = 100 * time.Millisecond

// Watcher reloads the config file whenever it changes on disk.
// Only documents that parse, validate and differ from the last known
// config are delivered.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan Config
	done    chan struct{}
	last    Config
	hasLast bool
}

// Watch starts watching configPath. The parent directory is watched so that
// editors replacing the file by rename are picked up too.
func Watch(configPath string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(configPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	w := &Watcher{
		path:    filepath.Clean(configPath),
		fsw:     fsw,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	if cfg, err := w.reload(); err == nil {
		w.last, w.hasLast = cfg, true
	}
	go w.loop()
	return w, nil
}

// Updates delivers reloaded configurations.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	logger := slog.Default().With("component", "config_watch")
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			cfg, err := w.reload()
			if err != nil {
				logger.Warn("config reload skipped", "path", w.path, "error", err)
				continue
			}
			if w.hasLast && cfg.Equal(w.last) {
				logger.Debug("config unchanged", "path", w.path)
				continue
			}
			w.last, w.hasLast = cfg, true
			logger.Info("config reloaded", "path", w.path)
			select {
			case w.updates <- cfg:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() (Config, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg, err = ApplyEnv(cfg)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
