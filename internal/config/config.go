// Package config loads relay settings: built-in defaults, then an optional
// YAML file, then the environment (a .env file is read into it first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/DoyleJ11/lol-livedata/internal/liveclient"
	"github.com/DoyleJ11/lol-livedata/internal/notify"
)

const DefaultPath = "relay.yaml"

type Config struct {
	HTTP       HTTPConfig       `yaml:"http" envPrefix:"HTTP_"`
	LiveClient LiveClientConfig `yaml:"live_client" envPrefix:"LIVE_CLIENT_"`
	Log        LogConfig        `yaml:"log" envPrefix:"LOG_"`
	Database   DatabaseConfig   `yaml:"database"`
	Discord    DiscordConfig    `yaml:"discord" envPrefix:"DISCORD_"`
	LCU        LCUConfig        `yaml:"lcu" envPrefix:"LCU_"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
	// AllowedOrigins are websocket origin patterns besides same-host.
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
}

type LiveClientConfig struct {
	BaseURL      string        `yaml:"base_url" env:"BASE_URL"`
	PollInterval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL"`
	Timeout      time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

type LogConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

type DatabaseConfig struct {
	// Empty disables event history.
	DSN string `yaml:"-" env:"DATABASE_URL"`
}

type DiscordConfig struct {
	BotToken  string   `yaml:"-" env:"BOT_TOKEN"`
	ChannelID string   `yaml:"-" env:"CHANNEL_ID"`
	Events    []string `yaml:"events" env:"EVENTS"` // event names, or ["all"]
}

type LCUConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		LiveClient: LiveClientConfig{
			BaseURL:      liveclient.DefaultBaseURL,
			PollInterval: time.Second,
			Timeout:      3 * time.Second,
		},
		Log:     LogConfig{Level: "info"},
		Discord: DiscordConfig{Events: []string{notify.AllEvents}},
	}
}

// Load reads the file named by CONFIG_PATH (DefaultPath when unset) and a
// .env file from the working directory. Both are optional.
func Load() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFrom(path, ".env")
}

func LoadFrom(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	// godotenv never overrides variables that are already set.
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.LiveClient.PollInterval <= 0 {
		return fmt.Errorf("live_client.poll_interval must be positive, got %s", c.LiveClient.PollInterval)
	}
	if c.LiveClient.Timeout <= 0 {
		return fmt.Errorf("live_client.timeout must be positive, got %s", c.LiveClient.Timeout)
	}
	if c.Discord.BotToken != "" && c.Discord.ChannelID == "" {
		return errors.New("DISCORD_CHANNEL_ID is required when DISCORD_BOT_TOKEN is set")
	}
	return nil
}

func (c Config) DiscordEnabled() bool { return c.Discord.BotToken != "" }

func (c Config) StoreEnabled() bool { return c.Database.DSN != "" }
