package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Load reads the profile file at path and returns the active env's
// profile with defaults filled in. A sibling <name>.local.<ext> is merged
// over the file when it exists.
func Load(path string) (*Config, error) {
	f, err := decode(path)
	if err != nil {
		return nil, err
	}

	local := LocalPath(path)
	switch over, err := decode(local); {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := mergo.Merge(&f, over, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("config: merge %s: %w", local, err)
		}
		slog.Debug("config: local overrides merged", "path", local)
	}

	cfg, err := f.active()
	if err != nil {
		return nil, err
	}
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default is the profile used when no config file exists.
func Default() *Config {
	cfg := &Config{Env: envLocal}
	// cannot fail: both sides are plain Config values
	_ = finish(cfg)
	return cfg
}

// LocalPath maps config.yaml to config.local.yaml.
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func decode(path string) (File, error) {
	var f File
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

func (f File) active() (*Config, error) {
	env := strings.ToLower(strings.TrimSpace(f.Env))

	var cfg Config
	switch env {
	case "", envLocal:
		cfg, env = f.Local, envLocal
	case envDev:
		cfg = f.Dev
	case envProd:
		cfg = f.Prod
	default:
		return nil, fmt.Errorf("config: env=%q, want local, dev or prod", f.Env)
	}
	cfg.Env = env

	if cfg.Proxy.empty() {
		cfg.Proxy = f.Proxy
	}
	return &cfg, nil
}
