// Package logger builds the slog loggers every binary runs with.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const app = "cornershopparser"

type Options struct {
	Level     string // debug|info|warn|error, defaults to info
	Format    string // text|json
	AddSource bool
	Env       string

	// Output defaults to stderr; stdout is left to command output.
	Output io.Writer
}

func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: Level(opts.Level), AddSource: opts.AddSource}

	var h slog.Handler = slog.NewTextHandler(out, hopts)
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		h = slog.NewJSONHandler(out, hopts)
	}

	attrs := []any{"app", app}
	if env := strings.TrimSpace(opts.Env); env != "" {
		attrs = append(attrs, "env", env)
	}
	return slog.New(h).With(attrs...)
}

// Install builds the logger and makes it the process default.
func Install(opts Options) *slog.Logger {
	l := New(opts)
	slog.SetDefault(l)
	return l
}

// Level parses s, falling back to info. "warning" is accepted for warn.
func Level(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Discard drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
