package lango

import (
	"errors"
	"fmt"
	i_fs "io/fs"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/YusufAbdelaziz/lango/fs"
)

// DefaultPrompt is the REPL prompt used when none is configured.
const DefaultPrompt = "> "

// Config holds the settings that can be loaded from a TOML file:
//
//	log_level = "debug"
//	prompt = "lango> "
//
//	[natives]
//	disabled = ["clock"]
type Config struct {
	LogLevel string        `toml:"log_level"`
	Prompt   string        `toml:"prompt"`
	Natives  NativesConfig `toml:"natives"`
}

// NativesConfig controls which native functions are installed.
type NativesConfig struct {
	Disabled []string `toml:"disabled"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{LogLevel: "warn", Prompt: DefaultPrompt}
}

// LoadConfig decodes the TOML file at path. An empty path or a missing file
// yields DefaultConfig. Unset keys keep their defaults.
func LoadConfig(fsys fs.FS, path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, i_fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("decoding config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return cfg, nil
}

// Level parses LogLevel. An empty value means warn.
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Options turns the configuration into interpreter options.
func (c *Config) Options() []Option {
	var opts []Option
	if len(c.Natives.Disabled) > 0 {
		opts = append(opts, withoutNatives(c.Natives.Disabled...))
	}
	return opts
}
