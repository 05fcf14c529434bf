package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func defaults(env string) Config {
	d := Config{
		Server: Server{Host: "0.0.0.0", Port: 7891},
		Cornershop: Cornershop{
			BaseURL:  "https://cornershopapp.com",
			Country:  "BR",
			Language: "pt-br",
		},
		Traversal: Traversal{DelayMS: 1000},
		Export:    Export{Format: "csv", Dir: ".", ImageDelayMS: 1000},
		HTTP:      HTTP{TimeoutSeconds: 30},
		Proxy:     ProxyConfig{Mode: "disabled", RotationTTLSeconds: 10},
		Log:       Log{Level: "debug", Format: "text"},
	}
	if env == envProd {
		d.Log = Log{Level: "info", Format: "json"}
	}
	return d
}

// finish normalises cfg and fills every unset field from defaults.
func finish(cfg *Config) error {
	cfg.Cornershop.Country = strings.ToUpper(strings.TrimSpace(cfg.Cornershop.Country))
	cfg.Export.Format = strings.ToLower(strings.TrimSpace(cfg.Export.Format))
	cfg.Proxy.Mode = strings.ToLower(strings.TrimSpace(cfg.Proxy.Mode))
	cfg.Proxy.List = compact(cfg.Proxy.List)

	// negative numbers mean "unset" too
	for _, n := range []*int{
		&cfg.Traversal.DelayMS,
		&cfg.Export.ImageDelayMS,
		&cfg.HTTP.TimeoutSeconds,
		&cfg.HTTP.Retries,
		&cfg.Proxy.RotationTTLSeconds,
	} {
		if *n < 0 {
			*n = 0
		}
	}

	if err := mergo.Merge(cfg, defaults(cfg.Env)); err != nil {
		return fmt.Errorf("config: defaults: %w", err)
	}

	if cfg.Cornershop.WebURL == "" {
		cfg.Cornershop.WebURL = cfg.Cornershop.BaseURL
	}
	if cfg.Export.ImageDir == "" {
		cfg.Export.ImageDir = filepath.Join(cfg.Export.Dir, "images")
	}
	return nil
}

func compact(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
