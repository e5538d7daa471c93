package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type PanelConfig struct {
	Width    int `json:"width" yaml:"width"`
	Height   int `json:"height" yaml:"height"`
	TileSize int `json:"tile_size" yaml:"tile_size"`
}

type SessionConfig struct {
	TTL           Duration `json:"ttl" yaml:"ttl"`
	SweepInterval Duration `json:"sweep_interval" yaml:"sweep_interval"`
}

type LogConfig struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file" yaml:"file"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days"`
}

type Config struct {
	Mode      string        `json:"mode" yaml:"mode"`
	Addr      string        `json:"addr" yaml:"addr"`
	Panel     PanelConfig   `json:"panel" yaml:"panel"`
	Session   SessionConfig `json:"session" yaml:"session"`
	Log       LogConfig     `json:"log" yaml:"log"`
	WebSocket WebSocket     `json:"websocket" yaml:"websocket"`

	// CorsOrigins lists the origins allowed to call the API; empty allows any.
	CorsOrigins []string `json:"cors_origins" yaml:"cors_origins"`
}

func Default() *Config {
	return &Config{
		Mode: "production",
		Addr: ":8080",
		Panel: PanelConfig{
			Width:    400,
			Height:   400,
			TileSize: 40,
		},
		Session: SessionConfig{
			TTL:           Duration{time.Hour},
			SweepInterval: Duration{time.Minute},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		WebSocket: WebSocket{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Read loads the file at path on top of the defaults. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON. An empty path
// only applies the environment overrides.
func Read(path string) (*Config, error) {
	config := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(b, config)
		default:
			err = json.Unmarshal(b, config)
		}
		if err != nil {
			return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}
	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = addr
	}
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok {
		if development != "0" {
			c.Mode = "development"
		} else {
			c.Mode = "production"
		}
	}
	if level, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.Log.Level = level
	}
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must be set")
	}
	if c.Panel.TileSize <= 0 {
		return fmt.Errorf("panel.tile_size must be positive, got %d", c.Panel.TileSize)
	}
	if c.Panel.Width < c.Panel.TileSize || c.Panel.Height < c.Panel.TileSize {
		return fmt.Errorf(
			"panel %dx%d cannot hold a single %dpx tile",
			c.Panel.Width, c.Panel.Height, c.Panel.TileSize,
		)
	}
	if c.Session.SweepInterval.Duration <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                   c.Mode,
		"addr":                   c.Addr,
		"panel_width":            c.Panel.Width,
		"panel_height":           c.Panel.Height,
		"tile_size":              c.Panel.TileSize,
		"session_ttl":            c.Session.TTL.String(),
		"session_sweep_interval": c.Session.SweepInterval.String(),
		"log_level":              c.Log.Level,
		"log_file":               c.Log.File,
		"cors_origins":           c.CorsOrigins,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}
