package transport

import "net/http"

// ConcurrencyTransport lets at most cap(slots) requests run at once. A
// request waiting for a slot gives up when its context ends.
type ConcurrencyTransport struct {
	Base  Transport
	slots chan struct{}
}

func NewConcurrencyTransport(base Transport, limit int) *ConcurrencyTransport {
	if limit <= 0 {
		limit = 1
	}
	return &ConcurrencyTransport{Base: base, slots: make(chan struct{}, limit)}
}

func (t *ConcurrencyTransport) Do(req *http.Request) (*http.Response, error) {
	select {
	case t.slots <- struct{}{}:
	case <-req.Context().Done():
		return nil, req.Context().Err()
	}
	defer func() { <-t.slots }()

	return t.Base.Do(req)
}
