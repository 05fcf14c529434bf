package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// RotationProvider asks a rotation endpoint for the current proxy and keeps
// the answer for TTL. Concurrent callers share one lookup.
type RotationProvider struct {
	http *resty.Client
	url  string
	ttl  time.Duration
	log  *slog.Logger
	now  func() time.Time

	mu      sync.Mutex
	current string
	expires time.Time
}

func NewRotationProvider(rotationURL string, ttl time.Duration, log *slog.Logger) *RotationProvider {
	if log == nil {
		log = slog.Default()
	}
	// the endpoint itself is always reached directly
	c := resty.New().
		SetTimeout(10*time.Second).
		RemoveProxy().
		SetHeader("Accept", "application/json, text/plain, */*")

	return &RotationProvider{http: c, url: rotationURL, ttl: ttl, log: log, now: time.Now}
}

func (p *RotationProvider) Next(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != "" && p.now().Before(p.expires) {
		return p.current, nil
	}

	res, err := p.http.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return "", fmt.Errorf("rotation_url: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("rotation_url status=%d body=%.200s", res.StatusCode(), strings.TrimSpace(res.String()))
	}

	proxy := parseRotationBody(res.Body())
	if proxy == "" {
		return "", fmt.Errorf("rotation_url returned no proxy")
	}

	if proxy != p.current {
		p.log.Debug("proxy rotated", "ttl", p.ttl.String())
	}
	p.current = proxy
	p.expires = p.now().Add(p.ttl)
	return proxy, nil
}

// parseRotationBody accepts {"proxy"|"url"|"data": "..."}, ["..."] or a
// bare string.
func parseRotationBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	switch {
	case strings.HasPrefix(s, "{"):
		var m map[string]any
		if json.Unmarshal([]byte(s), &m) != nil {
			return ""
		}
		for _, k := range []string{"proxy", "url", "data"} {
			if v, ok := m[k].(string); ok {
				return strings.TrimSpace(v)
			}
		}
		return ""
	case strings.HasPrefix(s, "["):
		var arr []string
		if json.Unmarshal([]byte(s), &arr) != nil || len(arr) == 0 {
			return ""
		}
		return strings.TrimSpace(arr[0])
	default:
		return s
	}
}
