// Package config loads flashiz settings from a TOML file, FLASHIZ_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/flashiz/internal/logging"
	"github.com/abhisek/flashiz/internal/session"
)

// MaxDistractors keeps multiple-choice options addressable with keys 1-9.
const MaxDistractors = 8

// Config holds resolved settings.
type Config struct {
	DBPath          string `mapstructure:"db_path"`
	DefaultMode     string `mapstructure:"default_mode"`
	DistractorCount int    `mapstructure:"distractor_count"`
	LogLevel        string `mapstructure:"log_level"`
	LogFile         string `mapstructure:"log_file"`
	DeckDir         string `mapstructure:"deck_dir"`
}

// Default returns the built-in settings. DBPath is left empty so the store
// resolves its own default.
func Default() *Config {
	return &Config{
		DefaultMode:     session.DefaultMode,
		DistractorCount: 3,
		LogLevel:        "info",
		DeckDir:         filepath.Join(xdgDataHome(), "flashiz", "decks"),
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":          "db_path",
	"mode":        "default_mode",
	"distractors": "distractor_count",
	"log-level":   "log_level",
	"log-file":    "log_file",
	"deck-dir":    "deck_dir",
}

// Load reads settings. An empty path means DefaultPath, which may be
// absent; an explicit path must exist. flags may be nil; only flags the user
// actually set override file and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("default_mode", def.DefaultMode)
	v.SetDefault("distractor_count", def.DistractorCount)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("deck_dir", def.DeckDir)

	v.SetEnvPrefix("FLASHIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("db_path", "FLASHIZ_DB_PATH", "FLASHIZ_DB"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	if !session.IsMode(c.DefaultMode) {
		errs = append(errs, fmt.Errorf("default_mode: unknown mode %q", c.DefaultMode))
	}
	if c.DistractorCount < 1 || c.DistractorCount > MaxDistractors {
		errs = append(errs, fmt.Errorf("distractor_count must be between 1 and %d, got %d", MaxDistractors, c.DistractorCount))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// ResolveDeck finds a deck by path, or by name inside DeckDir with or
// without its extension.
func (c *Config) ResolveDeck(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if c.DeckDir != "" {
		for _, candidate := range []string{name, name + ".toml", name + ".json"} {
			p := filepath.Join(c.DeckDir, candidate)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("deck not found: %s", name)
}

// DefaultPath returns $XDG_CONFIG_HOME/flashiz/config.toml.
func DefaultPath() string {
	return filepath.Join(xdgConfigHome(), "flashiz", "config.toml")
}

func xdgConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

func xdgDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}
