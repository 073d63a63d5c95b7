// Package config loads the client and server settings from an optional YAML
// file and CHECKERS_* environment variables. Command line flags are applied
// on top by the mains.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/qnkhuat/checkersterm/pkg/gui"
)

const EnvPrefix = "CHECKERS_"

type Authority struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Log struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type SSH struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	ClientPath  string        `yaml:"client_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

type Config struct {
	Authority Authority      `yaml:"authority"`
	Log       Log            `yaml:"log"`
	Theme     string         `yaml:"theme"`
	Themes    []gui.ThemeHex `yaml:"themes"`
	SSH       SSH            `yaml:"ssh"`
}

func Default() *Config {
	return &Config{
		Authority: Authority{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Log: Log{
			Path:  "./log",
			Level: "info",
		},
		Theme: gui.ThemeBasic.Name,
		SSH: SSH{
			Addr:        ":2222",
			HostKey:     "~/.ssh/id_rsa",
			ClientPath:  "./checkersterm",
			IdleTimeout: 5 * time.Minute,
		},
	}
}

// Load reads path (skipped when empty) over the defaults, applies the
// environment and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	env := func(key string) string {
		return strings.TrimSpace(getenv(EnvPrefix + key))
	}

	if v := env("BASE_URL"); v != "" {
		c.Authority.BaseURL = v
	}
	if v := env("TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Authority.Timeout = d
	}
	if v := env("LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := env("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := env("THEME"); v != "" {
		c.Theme = v
	}
	if v := env("SSH_ADDR"); v != "" {
		c.SSH.Addr = v
	}
	if v := env("SSH_HOST_KEY"); v != "" {
		c.SSH.HostKey = v
	}
	if v := env("SSH_CLIENT_PATH"); v != "" {
		c.SSH.ClientPath = v
	}
	if v := env("SSH_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSSH_IDLE_TIMEOUT: %w", EnvPrefix, err)
		}
		c.SSH.IdleTimeout = d
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Authority.BaseURL == "" {
		return errors.New("authority.base_url is required")
	}
	u, err := url.Parse(c.Authority.BaseURL)
	if err != nil {
		return fmt.Errorf("authority.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("authority.base_url %q must be an absolute http(s) URL", c.Authority.BaseURL)
	}
	if c.Authority.Timeout <= 0 {
		return errors.New("authority.timeout must be positive")
	}
	return nil
}

// ResolveTheme looks the configured theme up among the file's themes and the
// built-in ones.
func (c *Config) ResolveTheme() (gui.Theme, error) {
	return gui.ImportThemes(c.Theme, c.Themes)
}
