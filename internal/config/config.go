// Package config holds the settings a session is created with
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultVersion is the compiler version stamped on cached modules when none is configured
const DefaultVersion = "0.6.0"

// Config is valid as its zero value
type Config struct {
	// PyCompatible publishes the universe for code that interoperates with the foreign runtime:
	// members default to public, some types surface under foreign names and
	// kernel-only types are not published
	PyCompatible bool   `yaml:"py_compatible"`
	Version      string `yaml:"version"`
	Log          Log    `yaml:"log"`
}

type Log struct {
	Level    string   `yaml:"level"`
	Sections []string `yaml:"sections"`
}

// Parse reads a YAML config. Unknown fields are an error.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// an empty document is the zero config
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(err, "failed to parse config")
	}
	if _, err := cfg.CompilerVersion(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.WithMessagef(err, "in %s", path)
	}
	return cfg, nil
}

func (c Config) CompilerVersion() (*semver.Version, error) {
	v := c.Version
	if v == "" {
		v = DefaultVersion
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid compiler version %q", v)
	}
	return version, nil
}

// LogLevel is the configured level, Info when unset
func (c Config) LogLevel() (slog.Level, error) {
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.Wrapf(err, "invalid log level %q", c.Log.Level)
	}
	return l, nil
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
