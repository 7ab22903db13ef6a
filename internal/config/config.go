package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Renderer modes
const (
	ModeTUI      = "tui"
	ModeTermloop = "termloop"
	ModePlain    = "plain"
)

const DefaultServerURL = "ws://localhost:8888/websocket"

// Config defines the client-side environment variables.
type Config struct {
	ServerURL string `env:"CHAT_SERVER_URL,default=ws://localhost:8888/websocket" validate:"required,url,startswith=ws"`
	Username  string `env:"CHAT_USERNAME"`
	Mode      string `env:"CHAT_MODE,default=tui" validate:"oneof=tui termloop plain"`
	LogLevel  string `env:"LOG_LEVEL,default=INFO" validate:"required"`
	LogFile   string `env:"CHAT_LOG_FILE,default=chat-client.log"`
}

var validate = validator.New()

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

// Validate checks the mode, the URL scheme and the log level
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Level parses LogLevel, case-insensitive
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// DialURL is ServerURL with the username query the server reads on connect.
// Without a username the server picks one.
func (c Config) DialURL() (string, error) {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	if c.Username != "" {
		q := u.Query()
		q.Set("username", c.Username)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
