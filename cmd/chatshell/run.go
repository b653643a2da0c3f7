package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"chatshell/pkg/config"
	"chatshell/pkg/conversation"
	"chatshell/pkg/logging"
	"chatshell/pkg/section"
	"chatshell/pkg/speech"
	"chatshell/pkg/ui"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func runShell(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("chatshell needs an interactive terminal")
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return err
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Info("chatshell starting",
		slog.String("config_path", configPath),
		slog.String("section", cfg.InitialSection),
		slog.String("submit_policy", cfg.SubmitPolicy),
		slog.String("speech_provider", cfg.Speech.Provider),
	)

	var updates <-chan config.Config
	watcher, err := config.Watch(configPath)
	if err != nil {
		logger.Warn("config watch disabled", slog.Any("error", err))
	} else {
		defer watcher.Close()
		updates = watcher.Updates()
	}

	policy, err := conversation.ParsePolicy(cfg.SubmitPolicy)
	if err != nil {
		return err
	}
	store := conversation.NewStore(
		conversation.WithPolicy(policy),
		conversation.WithResponder(conversation.Canned(cfg.Reply.Text)),
	)
	unsubscribe := store.Subscribe(func(snap conversation.Snapshot) {
		logger.Debug("conversation changed", slog.Int("messages", len(snap.Messages)), slog.Bool("pending", snap.Pending))
	})
	defer unsubscribe()

	router := section.NewRouter(section.Tag(cfg.InitialSection))
	stopRouting := router.Subscribe(func(prev, next section.Tag) {
		if !section.Known(next) {
			logger.Warn("unknown section selected", slog.String("section", string(next)))
		}
	})
	defer stopRouting()

	capture := speech.NewCapture(speech.FromConfig(cfg.Speech))
	defer func() {
		if err := capture.Stop(); err != nil {
			logger.Warn("stop recording", slog.Any("error", err))
		}
	}()

	model := ui.NewModel(ui.Options{
		Config:        cfg,
		Store:         store,
		Router:        router,
		Capture:       capture,
		ConfigUpdates: updates,
		ConfigPath:    configPath,
	})

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", slog.Any("error", err))
		return fmt.Errorf("run: %w", err)
	}

	logger.Info("chatshell stopped", slog.Int("messages", store.Len()))
	return nil
}

// loadConfig resolves configuration in order: file, .env and environment, then flags.
func loadConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err = config.ApplyEnv(cfg)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("section") {
		cfg.InitialSection, _ = cmd.Flags().GetString("section")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}
