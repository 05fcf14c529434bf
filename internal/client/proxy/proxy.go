package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider yields the proxy for the next outgoing request.
type Provider interface {
	Next(ctx context.Context) (string, error)
}

const (
	ModeDisabled = "disabled"
	ModeList     = "list"
	ModeRotation = "rotation"

	defaultRotationTTL = 10 * time.Second
)

type Config struct {
	Mode               string
	List               []string
	RotationURL        string
	RotationTTLSeconds int

	// FailOpen sends the request directly when no proxy can be had.
	FailOpen bool
}

// Selector plugs a Provider into http.Transport.Proxy.
type Selector struct {
	Provider Provider
	FailOpen bool
	Log      *slog.Logger
}

// FromConfig returns nil when proxying is disabled.
func FromConfig(cfg Config, log *slog.Logger) (*Selector, error) {
	if log == nil {
		log = slog.Default()
	}

	var p Provider
	switch mode := strings.ToLower(strings.TrimSpace(cfg.Mode)); mode {
	case "", ModeDisabled:
		return nil, nil
	case ModeList:
		lp, err := NewListProvider(cfg.List)
		if err != nil {
			return nil, err
		}
		log.Info("proxy enabled", "mode", mode, "count", lp.Len(), "fail_open", cfg.FailOpen)
		p = lp
	case ModeRotation:
		if strings.TrimSpace(cfg.RotationURL) == "" {
			return nil, fmt.Errorf("proxy.mode=rotation requires rotation_url")
		}
		ttl := time.Duration(cfg.RotationTTLSeconds) * time.Second
		if ttl <= 0 {
			ttl = defaultRotationTTL
		}
		log.Info("proxy enabled", "mode", mode, "ttl", ttl.String(), "fail_open", cfg.FailOpen)
		p = NewRotationProvider(cfg.RotationURL, ttl, log)
	default:
		return nil, fmt.Errorf("proxy.mode=%q: want disabled, list or rotation", cfg.Mode)
	}

	return &Selector{Provider: p, FailOpen: cfg.FailOpen, Log: log}, nil
}

// Func returns the http.Transport.Proxy hook, nil for a nil selector.
func (s *Selector) Func() func(*http.Request) (*url.URL, error) {
	if s == nil || s.Provider == nil {
		return nil
	}
	return s.Proxy
}

func (s *Selector) Proxy(req *http.Request) (*url.URL, error) {
	u, err := s.pick(req.Context())
	if err == nil {
		s.logger().Debug("proxy selected", "host", u.Host)
		return u, nil
	}
	s.logger().Warn("proxy unavailable", "err", err, "fail_open", s.FailOpen)
	if s.FailOpen {
		return nil, nil
	}
	return nil, err
}

func (s *Selector) pick(ctx context.Context) (*url.URL, error) {
	raw, err := s.Provider.Next(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func (s *Selector) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// Parse reads host:port, user:pw@host:port or a full URL. A missing scheme
// means http.
func Parse(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty proxy")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse proxy: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy %q has no host", raw)
	}
	return u, nil
}
