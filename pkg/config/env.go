package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override values from the config file.
const (
	EnvLogLevel       = "CHATSHELL_LOG_LEVEL"
	EnvLogFile        = "CHATSHELL_LOG_FILE"
	EnvLogFormat      = "CHATSHELL_LOG_FORMAT"
	EnvReplyText      = "CHATSHELL_REPLY_TEXT"
	EnvReplyDelay     = "CHATSHELL_REPLY_DELAY_MS"
	EnvSpeechProvider = "CHATSHELL_SPEECH_PROVIDER"
	EnvSection        = "CHATSHELL_SECTION"
)

var envKeys = []string{
	EnvLogLevel, EnvLogFile, EnvLogFormat, EnvReplyText,
	EnvReplyDelay, EnvSpeechProvider, EnvSection,
}

// EnvOverrides lists the override variables that are currently set.
func EnvOverrides() []string {
	var set []string
	for _, key := range envKeys {
		if _, ok := lookup(key); ok {
			set = append(set, key)
		}
	}
	return set
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error. Variables already set are left alone.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv returns cfg with environment overrides applied.
func ApplyEnv(cfg Config) (Config, error) {
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvReplyText); ok {
		cfg.Reply.Text = v
	}
	if v, ok := lookup(EnvReplyDelay); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvReplyDelay, err)
		}
		cfg.Reply.DelayMillis = ms
	}
	if v, ok := lookup(EnvSpeechProvider); ok {
		cfg.Speech.Provider = strings.ToLower(v)
	}
	if v, ok := lookup(EnvSection); ok {
		cfg.InitialSection = v
	}
	return cfg, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
