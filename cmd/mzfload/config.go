package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the mzfload configuration file (~/.config/mzfload/config.yaml).
// Every value is a default that an explicitly set flag overrides.
type Config struct {
	Format      string `yaml:"format"`
	Compression string `yaml:"compression"`
	PragmaOnce  bool   `yaml:"pragma_once"`
	LoadAddress string `yaml:"load_address"`
	ExecAddress string `yaml:"exec_address"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mzfload", "config.yaml")
}

// loadConfig reads the config file at path. A missing file yields a zero
// Config unless the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
