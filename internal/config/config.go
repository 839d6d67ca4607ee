// Package config loads spellz settings from a YAML file, a .env file and
// SPELLZ_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/game"
	"github.com/abhisek/spellz/internal/llm"
	"github.com/abhisek/spellz/internal/logging"
	"github.com/abhisek/spellz/internal/snapshot"
	"github.com/abhisek/spellz/internal/wordlist"
)

// Config is the full application configuration.
type Config struct {
	Game    GameConfig     `yaml:"game"`
	Logging logging.Config `yaml:"logging"`
	LLM     llm.Config     `yaml:"llm"`
}

// GameConfig controls a drill run.
type GameConfig struct {
	MaxWrongAttempts int           `yaml:"max_wrong_attempts"`
	WordCount        int           `yaml:"word_count"`
	SettleDelay      time.Duration `yaml:"settle_delay"`

	// WordsFile replaces the bundled list when set.
	WordsFile string `yaml:"words_file"`

	// Theme asks the language model for a themed list when no file is set.
	Theme string `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			MaxWrongAttempts: drill.DefaultMaxWrongAttempts,
			WordCount:        wordlist.DefaultCount,
			SettleDelay:      game.DefaultSettleDelay,
		},
		Logging: logging.DefaultConfig(),
		LLM:     llm.DefaultConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/spellz/config.yaml, falling back to
// ~/.config/spellz/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "spellz", "config.yaml"), nil
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none)
// into the environment. Variables already set win; missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides c with SPELLZ_* variables and fills in an LLM provider
// from the conventional API key variables when none is configured.
func (c *Config) ApplyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"SPELLZ_MAX_WRONG_ATTEMPTS", &c.Game.MaxWrongAttempts},
		{"SPELLZ_WORD_COUNT", &c.Game.WordCount},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v := os.Getenv("SPELLZ_SETTLE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SPELLZ_SETTLE_DELAY: %w", err)
		}
		c.Game.SettleDelay = d
	}

	for key, dst := range map[string]*string{
		"SPELLZ_WORDS_FILE": &c.Game.WordsFile,
		"SPELLZ_THEME":      &c.Game.Theme,
		"SPELLZ_LOG_LEVEL":  &c.Logging.Level,
		"SPELLZ_LOG_FILE":   &c.Logging.File,
	} {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	c.LLM.ApplyEnv()
	c.LLM.Discover()
	return nil
}

// Validate checks ranges and the LLM selection.
func (c *Config) Validate() error {
	g := c.Game
	if g.MaxWrongAttempts < 1 || g.MaxWrongAttempts > snapshot.MaxWrongAttemptsLimit {
		return fmt.Errorf("game.max_wrong_attempts must be between 1 and %d, got %d",
			snapshot.MaxWrongAttemptsLimit, g.MaxWrongAttempts)
	}
	if g.WordCount < 1 {
		return fmt.Errorf("game.word_count must be positive, got %d", g.WordCount)
	}
	if g.SettleDelay < 0 {
		return fmt.Errorf("game.settle_delay must not be negative, got %s", g.SettleDelay)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// WordSource is where the configured run gets its words.
func (c *Config) WordSource(seed uint64) wordlist.Source {
	return wordlist.Source{
		File:  c.Game.WordsFile,
		Theme: c.Game.Theme,
		Count: c.Game.WordCount,
		Seed:  seed,
	}
}
