package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"time"
)

// Submit policies decide what happens when the user submits while a reply is pending.
const (
	SubmitPolicyBlock = "block"
	SubmitPolicyQueue = "queue"
)

// Speech providers.
const (
	SpeechProviderNone    = "none"
	SpeechProviderScript  = "script"
	SpeechProviderCommand = "command"
)

// DefaultReplyText is the placeholder every chatbot message carries.
const DefaultReplyText = "I'm sorry, I'm just a demo. I don't have the ability to respond to messages yet. Please try again later."

// Config represents the application configuration
type Config struct {
	InitialSection string          `json:"initial_section"`
	SubmitPolicy   string          `json:"submit_policy"`
	Reply          ReplyConfig     `json:"reply"`
	Banner         BannerConfig    `json:"banner"`
	Models         []string        `json:"models"`
	DefaultModel   string          `json:"default_model"`
	Sidebar        SidebarConfig   `json:"sidebar"`
	Speech         SpeechConfig    `json:"speech"`
	StatusBar      StatusBarConfig `json:"status_bar"`
	LogLevel       string          `json:"log_level"`
	LogFile        string          `json:"log_file"`
	LogFormat      string          `json:"log_format"`
}

// ReplyConfig controls the simulated chatbot reply.
type ReplyConfig struct {
	Text        string `json:"text"`
	DelayMillis int    `json:"delay_ms"`
}

// BannerConfig controls the greeting banner hand-off.
type BannerConfig struct {
	FadeMillis int `json:"fade_ms"`
}

// SidebarConfig holds the navigation sidebar layout.
type SidebarConfig struct {
	Visible bool `json:"visible"`
	Width   int  `json:"width"`
}

// SpeechConfig selects the speech recognizer.
type SpeechConfig struct {
	Provider       string   `json:"provider"`    // "none", "script" or "command"
	Command        []string `json:"command"`     // argv for the command provider
	Script         []string `json:"script"`      // phrases for the script provider
	IntervalMillis int      `json:"interval_ms"` // script provider pacing
}

// StatusBarConfig holds status bar UI configuration
type StatusBarConfig struct {
	Theme string `json:"theme"` // "default", "cyan" or "dark"
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		InitialSection: "main-chat",
		SubmitPolicy:   SubmitPolicyBlock,
		Reply: ReplyConfig{
			Text:        DefaultReplyText,
			DelayMillis: 500,
		},
		Banner: BannerConfig{
			FadeMillis: 200,
		},
		Models:       []string{"ChatGPT 3.5", "ChatGPT 4.0", "ChatGPT 4.5"},
		DefaultModel: "ChatGPT 3.5",
		Sidebar: SidebarConfig{
			Visible: true,
			Width:   30,
		},
		Speech: SpeechConfig{
			Provider:       SpeechProviderNone,
			IntervalMillis: 700,
		},
		StatusBar: StatusBarConfig{
			Theme: "default",
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// ReplyDelay returns the simulated reply latency.
func (c Config) ReplyDelay() time.Duration {
	return time.Duration(c.Reply.DelayMillis) * time.Millisecond
}

// BannerFade returns the banner hand-off interval.
func (c Config) BannerFade() time.Duration {
	return time.Duration(c.Banner.FadeMillis) * time.Millisecond
}

// Interval returns the pacing between scripted transcripts.
func (s SpeechConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMillis) * time.Millisecond
}

// Equal reports whether c and o hold the same settings. Nil and empty lists
// compare equal, so a config survives a save and reload unchanged.
func (c Config) Equal(o Config) bool {
	if !slices.Equal(c.Models, o.Models) ||
		!slices.Equal(c.Speech.Command, o.Speech.Command) ||
		!slices.Equal(c.Speech.Script, o.Speech.Script) {
		return false
	}
	c.Models, o.Models = nil, nil
	c.Speech.Command, o.Speech.Command = nil, nil
	c.Speech.Script, o.Speech.Script = nil, nil
	return reflect.DeepEqual(c, o)
}

// Load loads configuration from the specified path
// If the file doesn't exist, creates one with default values
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a config document. Fields missing from data keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	switch c.SubmitPolicy {
	case SubmitPolicyBlock, SubmitPolicyQueue:
	default:
		return fmt.Errorf("unsupported submit_policy: %q", c.SubmitPolicy)
	}

	if c.Reply.DelayMillis < 0 {
		return fmt.Errorf("reply.delay_ms must not be negative, got: %d", c.Reply.DelayMillis)
	}

	if c.Banner.FadeMillis < 0 {
		return fmt.Errorf("banner.fade_ms must not be negative, got: %d", c.Banner.FadeMillis)
	}

	if len(c.Models) == 0 {
		return fmt.Errorf("models must list at least one entry")
	}
	if c.DefaultModel != "" && !slices.Contains(c.Models, c.DefaultModel) {
		return fmt.Errorf("default_model %q is not in models", c.DefaultModel)
	}

	if c.Sidebar.Width < 16 {
		return fmt.Errorf("sidebar.width must be at least 16, got: %d", c.Sidebar.Width)
	}

	switch c.Speech.Provider {
	case SpeechProviderNone:
	case SpeechProviderScript:
		if len(c.Speech.Script) == 0 {
			return fmt.Errorf("speech.script is required for the script provider")
		}
		if c.Speech.IntervalMillis <= 0 {
			return fmt.Errorf("speech.interval_ms must be positive, got: %d", c.Speech.IntervalMillis)
		}
	case SpeechProviderCommand:
		if len(c.Speech.Command) == 0 {
			return fmt.Errorf("speech.command is required for the command provider")
		}
	default:
		return fmt.Errorf("unsupported speech provider: %q", c.Speech.Provider)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".chatshell/config.json"
	}
	return filepath.Join(homeDir, ".chatshell", "config.json")
}
