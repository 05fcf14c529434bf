package proxy

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// ListProvider cycles through a fixed proxy list.
type ListProvider struct {
	proxies []string
	next    atomic.Uint64
}

func NewListProvider(list []string) (*ListProvider, error) {
	p := &ListProvider{}
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			p.proxies = append(p.proxies, s)
		}
	}
	if len(p.proxies) == 0 {
		return nil, fmt.Errorf("proxy list is empty")
	}
	return p, nil
}

func (p *ListProvider) Len() int { return len(p.proxies) }

func (p *ListProvider) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := p.next.Add(1) - 1
	return p.proxies[i%uint64(len(p.proxies))], nil
}
