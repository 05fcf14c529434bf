package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"time"
)

// maxRetryAfter caps how long a Retry-After header can hold a request.
const maxRetryAfter = time.Minute

// RetryTransport repeats requests that failed on the network or got 429 or
// 5xx, with jittered exponential backoff. Retry-After on 429/503 wins over
// the backoff.
type RetryTransport struct {
	Base       Transport
	MaxRetries int

	BaseDelay time.Duration
	MaxDelay  time.Duration

	Log *slog.Logger

	// Sleep defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (r *RetryTransport) Do(req *http.Request) (*http.Response, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	ctx := req.Context()

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		try, err := cloneForRetry(req)
		if err != nil {
			return nil, err
		}

		resp, err := r.Base.Do(try)
		wait, retry := r.classify(resp, err)
		if !retry {
			return resp, err
		}

		if err != nil {
			lastErr = err
		} else {
			drain(resp)
			lastErr = fmt.Errorf("%s %s: retryable status=%d", req.Method, req.URL.Redacted(), resp.StatusCode)
		}

		if attempt >= r.MaxRetries {
			return nil, lastErr
		}
		if wait <= 0 {
			wait = backoff(r.BaseDelay, r.MaxDelay, attempt)
		}

		log.Warn("request retry",
			"attempt", attempt+1,
			"max_attempts", r.MaxRetries+1,
			"wait", wait.String(),
			"err", lastErr,
		)
		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

// classify reports whether the outcome is worth another attempt and how
// long the server asked to wait before it (0 = use backoff).
func (r *RetryTransport) classify(resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		return 0, retryableError(err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusServiceUnavailable:
		return retryAfter(resp), true
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return 0, true
	default:
		return 0, false
	}
}

func retryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 32*1024))
	_ = resp.Body.Close()
}

// backoff doubles from base up to limit and spreads the result over
// 50%..150% of it.
func backoff(base, limit time.Duration, attempt int) time.Duration {
	base, limit = orDefault(base, defaultBaseDelay), orDefault(limit, defaultMaxDelay)
	d := limit
	if attempt < 32 && base<<attempt > 0 && base<<attempt < limit {
		d = base << attempt
	}
	return d/2 + rand.N(d)
}

// retryAfter reads a delay-seconds Retry-After. HTTP dates are ignored.
func retryAfter(resp *http.Response) time.Duration {
	sec, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || sec <= 0 {
		return 0
	}
	if d := time.Duration(sec) * time.Second; d < maxRetryAfter {
		return d
	}
	return maxRetryAfter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cloneForRetry gives every attempt its own request with a fresh body.
func cloneForRetry(req *http.Request) (*http.Request, error) {
	out := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return out, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("request body cannot be replayed")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("replay request body: %w", err)
	}
	out.Body = body
	return out, nil
}
