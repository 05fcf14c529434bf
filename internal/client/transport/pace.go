package transport

import (
	"net/http"
	"sync"
	"time"
)

// PacedTransport lets a request start no sooner than Interval after the
// previous one started.
type PacedTransport struct {
	Base     Transport
	Interval time.Duration

	now   func() time.Time
	sleep func(req *http.Request, d time.Duration) error

	mu   sync.Mutex
	next time.Time
}

func NewPacedTransport(base Transport, interval time.Duration) *PacedTransport {
	return &PacedTransport{
		Base:     base,
		Interval: interval,
		now:      time.Now,
		sleep: func(req *http.Request, d time.Duration) error {
			return sleepCtx(req.Context(), d)
		},
	}
}

func (p *PacedTransport) Do(req *http.Request) (*http.Response, error) {
	p.mu.Lock()
	now := p.now()
	start := now
	if p.next.After(now) {
		start = p.next
	}
	p.next = start.Add(p.Interval)
	p.mu.Unlock()

	if wait := start.Sub(now); wait > 0 {
		if err := p.sleep(req, wait); err != nil {
			return nil, err
		}
	}
	return p.Base.Do(req)
}
