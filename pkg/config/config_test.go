package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "main-chat", cfg.InitialSection)
	assert.Equal(t, SubmitPolicyBlock, cfg.SubmitPolicy)
	assert.Equal(t, DefaultReplyText, cfg.Reply.Text)
	assert.Equal(t, 500*time.Millisecond, cfg.ReplyDelay())
	assert.Equal(t, 200*time.Millisecond, cfg.BannerFade())
	assert.Equal(t, []string{"ChatGPT 3.5", "ChatGPT 4.0", "ChatGPT 4.5"}, cfg.Models)
	assert.Equal(t, "ChatGPT 3.5", cfg.DefaultModel)
	assert.True(t, cfg.Sidebar.Visible)
	assert.Equal(t, SpeechProviderNone, cfg.Speech.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_CreateDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".chatshell", "config.json")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(configPath)
	assert.NoError(t, err, "config file should have been created")
}

func TestLoad_ExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	initial := Default()
	initial.Reply.DelayMillis = 1200
	initial.SubmitPolicy = SubmitPolicyQueue
	require.NoError(t, Save(configPath, initial))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Reply.DelayMillis)
	assert.Equal(t, SubmitPolicyQueue, cfg.SubmitPolicy)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"reply": {"delay_ms": 50}}`), 0600))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Reply.DelayMillis)
	assert.Equal(t, DefaultReplyText, cfg.Reply.Text)
	assert.Equal(t, Default().Models, cfg.Models)
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte("{not json"), 0600))

	_, err := Load(configPath)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown submit policy",
			mutate:  func(c *Config) { c.SubmitPolicy = "drop" },
			wantErr: "submit_policy",
		},
		{
			name:    "negative reply delay",
			mutate:  func(c *Config) { c.Reply.DelayMillis = -1 },
			wantErr: "reply.delay_ms",
		},
		{
			name:    "negative fade",
			mutate:  func(c *Config) { c.Banner.FadeMillis = -5 },
			wantErr: "banner.fade_ms",
		},
		{
			name:    "no models",
			mutate:  func(c *Config) { c.Models = nil },
			wantErr: "models",
		},
		{
			name:    "default model not listed",
			mutate:  func(c *Config) { c.DefaultModel = "ChatGPT 9" },
			wantErr: "default_model",
		},
		{
			name:    "narrow sidebar",
			mutate:  func(c *Config) { c.Sidebar.Width = 4 },
			wantErr: "sidebar.width",
		},
		{
			name:    "script provider without phrases",
			mutate:  func(c *Config) { c.Speech.Provider = SpeechProviderScript },
			wantErr: "speech.script",
		},
		{
			name:    "command provider without argv",
			mutate:  func(c *Config) { c.Speech.Provider = SpeechProviderCommand },
			wantErr: "speech.command",
		},
		{
			name:    "unknown speech provider",
			mutate:  func(c *Config) { c.Speech.Provider = "browser" },
			wantErr: "speech provider",
		},
		{
			name: "script provider configured",
			mutate: func(c *Config) {
				c.Speech.Provider = SpeechProviderScript
				c.Speech.Script = []string{"hello"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	assert.Equal(t, "config.json", filepath.Base(path))
	assert.Equal(t, ".chatshell", filepath.Base(filepath.Dir(path)))
}

func TestConfig_Equal(t *testing.T) {
	base := Default()
	same := Default()
	assert.True(t, base.Equal(same))

	empty := Default()
	empty.Speech.Script = []string{}
	nilScript := Default()
	nilScript.Speech.Script = nil
	assert.True(t, empty.Equal(nilScript))

	changed := Default()
	changed.Reply.Text = "other"
	assert.False(t, base.Equal(changed))

	models := Default()
	models.Models = append(slices.Clone(models.Models), "extra")
	assert.False(t, base.Equal(models))
}
