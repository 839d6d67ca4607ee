// Package logging builds the application's zap logger. The terminal belongs
// to the TUI, so logs only ever go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelOff disables logging.
const LevelOff = "off"

// Config selects the log level and file.
type Config struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig logs at info to DefaultPath.
func DefaultConfig() Config {
	return Config{Level: "info"}
}

// DefaultPath returns $XDG_STATE_HOME/spellz/spellz.log, falling back to
// ~/.local/state/spellz/spellz.log.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "spellz", "spellz.log"), nil
}

// ParseLevel accepts the zap level names. The empty string means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(s))
}

// Validate checks the level name.
func (c Config) Validate() error {
	if strings.EqualFold(c.Level, LevelOff) {
		return nil
	}
	if _, err := ParseLevel(c.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// New builds a JSON file logger from cfg. With the level set to "off" it
// returns a no-op logger.
func New(cfg Config) (*zap.Logger, error) {
	if strings.EqualFold(cfg.Level, LevelOff) {
		return Nop(), nil
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	path := cfg.File
	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }
