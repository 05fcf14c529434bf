// Package client assembles the HTTP stack the API service runs on.
package client

import (
	"log/slog"
	"net/http"
	"time"

	"cornershopparser/internal/client/httpc"
	"cornershopparser/internal/client/proxy"
	"cornershopparser/internal/client/transport"
)

type Transport = transport.Transport

type Options struct {
	HTTPClient *http.Client
	Retries    int
	Workers    int

	// MinInterval spaces request starts across all workers.
	MinInterval time.Duration

	BaseDelay time.Duration
	MaxDelay  time.Duration

	Logger *slog.Logger
}

func Build(opts Options) (Transport, error) {
	return transport.Build(transport.Options{
		HTTPClient:  opts.HTTPClient,
		Retries:     opts.Retries,
		Concurrency: opts.Workers,
		MinInterval: opts.MinInterval,
		BaseDelay:   opts.BaseDelay,
		MaxDelay:    opts.MaxDelay,
		Logger:      opts.Logger,
	})
}

// NewHTTPClient returns the cookie-keeping client, routed through sel when
// it is non-nil.
func NewHTTPClient(timeout time.Duration, sel *proxy.Selector) *http.Client {
	return httpc.New(httpc.Options{Timeout: timeout, Proxy: sel.Func()})
}
