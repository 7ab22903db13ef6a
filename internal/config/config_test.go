package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	for _, key := range []string{"CHAT_SERVER_URL", "CHAT_USERNAME", "CHAT_MODE", "LOG_LEVEL", "CHAT_LOG_FILE"} {
		t.Setenv(key, "") // restores the original value after the test
		os.Unsetenv(key)
	}

	cfg, err := Load()

	req.NoError(err)
	req.Equal(DefaultServerURL, cfg.ServerURL)
	req.Equal(ModeTUI, cfg.Mode)
	req.Equal("INFO", cfg.LogLevel)
	req.Equal("chat-client.log", cfg.LogFile)
	req.Empty(cfg.Username)
	req.NoError(cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	req := require.New(t)
	t.Setenv("CHAT_SERVER_URL", "wss://chat.example.com/websocket")
	t.Setenv("CHAT_USERNAME", "alice")
	t.Setenv("CHAT_MODE", "plain")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	req.NoError(err)
	req.Equal("wss://chat.example.com/websocket", cfg.ServerURL)
	req.Equal("alice", cfg.Username)
	req.Equal(ModePlain, cfg.Mode)
	req.NoError(cfg.Validate())

	level, err := cfg.Level()
	req.NoError(err)
	req.Equal(slog.LevelDebug, level)
}

func TestConfig_Validate_Rejects(t *testing.T) {
	valid := Config{ServerURL: DefaultServerURL, Mode: ModeTUI, LogLevel: "INFO"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		edit func(c *Config)
	}{
		{name: "unknown mode", edit: func(c *Config) { c.Mode = "gui" }},
		{name: "http scheme", edit: func(c *Config) { c.ServerURL = "http://localhost:8888/websocket" }},
		{name: "not a url", edit: func(c *Config) { c.ServerURL = "localhost" }},
		{name: "bad level", edit: func(c *Config) { c.LogLevel = "LOUD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.edit(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_DialURL(t *testing.T) {
	req := require.New(t)

	cfg := Config{ServerURL: DefaultServerURL}
	got, err := cfg.DialURL()
	req.NoError(err)
	req.Equal("ws://localhost:8888/websocket", got)

	cfg.Username = "bob smith"
	got, err = cfg.DialURL()
	req.NoError(err)
	req.Equal("ws://localhost:8888/websocket?username=bob+smith", got)
}
