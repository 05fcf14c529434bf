// Package transport layers retries, pacing and a concurrency cap over an
// http.Client. Every layer is itself a Transport.
package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Func adapts a plain function to Transport.
type Func func(req *http.Request) (*http.Response, error)

func (f Func) Do(req *http.Request) (*http.Response, error) { return f(req) }

type Options struct {
	HTTPClient *http.Client

	// Retries is off by default: storefront failures surface to the caller.
	Retries   int
	BaseDelay time.Duration
	MaxDelay  time.Duration

	Concurrency int // in-flight cap, 0 = unbounded

	// MinInterval spaces request starts across every caller, 0 = off.
	MinInterval time.Duration

	Logger *slog.Logger
}

const (
	defaultBaseDelay = 300 * time.Millisecond
	defaultMaxDelay  = 8 * time.Second
)

func (o Options) check() error {
	var errs []error
	if o.HTTPClient == nil {
		errs = append(errs, errors.New("transport: nil HTTPClient"))
	}
	if o.Retries < 0 {
		errs = append(errs, errors.New("transport: negative Retries"))
	}
	if o.Concurrency < 0 {
		errs = append(errs, errors.New("transport: negative Concurrency"))
	}
	if o.MinInterval < 0 {
		errs = append(errs, errors.New("transport: negative MinInterval"))
	}
	return errors.Join(errs...)
}

// Build wraps the client, innermost first: retry, pacing, concurrency.
// A layer whose option is zero is left out.
func Build(opts Options) (Transport, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	var t Transport = Func(opts.HTTPClient.Do)

	if opts.Retries > 0 {
		t = &RetryTransport{
			Base:       t,
			MaxRetries: opts.Retries,
			BaseDelay:  orDefault(opts.BaseDelay, defaultBaseDelay),
			MaxDelay:   orDefault(opts.MaxDelay, defaultMaxDelay),
			Log:        log,
		}
	}
	if opts.MinInterval > 0 {
		t = NewPacedTransport(t, opts.MinInterval)
	}
	if opts.Concurrency > 0 {
		t = NewConcurrencyTransport(t, opts.Concurrency)
	}
	return t, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
