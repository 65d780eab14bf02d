package repo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/odvcencio/gitlet/pkg/archive"
	"github.com/odvcencio/gitlet/pkg/logger"
)

// DefaultBranch names the branch created by Init when config says nothing.
const DefaultBranch = "master"

// Config is the repository-local .gitlet/config.toml.
type Config struct {
	Core    CoreConfig    `toml:"core"`
	Log     LogConfig     `toml:"log"`
	Archive ArchiveConfig `toml:"archive"`
}

type CoreConfig struct {
	DefaultBranch string `toml:"default_branch"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ArchiveConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the settings written by Init.
func DefaultConfig() *Config {
	return &Config{
		Core:    CoreConfig{DefaultBranch: DefaultBranch},
		Log:     LogConfig{Level: "info", Format: "text"},
		Archive: ArchiveConfig{Level: "default"},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if err := validBranchName(c.Core.DefaultBranch); err != nil {
		return fmt.Errorf("core.default_branch %q: %w", c.Core.DefaultBranch, err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if _, err := archive.ParseLevel(c.Archive.Level); err != nil {
		return fmt.Errorf("archive.level: %w", err)
	}
	return nil
}

func (r *Repo) configPath() string {
	return filepath.Join(r.Dir, "config.toml")
}

// ReadConfig reads .gitlet/config.toml over the defaults. A missing file
// yields the defaults.
func (r *Repo) ReadConfig() (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(r.configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("read config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// WriteConfig atomically writes .gitlet/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := writeFileAtomic(r.Dir, r.configPath(), buf.Bytes()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in dir and renames it onto
// dest.
func writeFileAtomic(dir, dest string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
