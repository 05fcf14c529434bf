package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cornershopparser/internal/apis/cornershop"
	"cornershopparser/internal/client"
	"cornershopparser/internal/client/proxy"
	"cornershopparser/internal/config"
	"cornershopparser/internal/session"
)

// HTTPClient builds the proxied, cookie-keeping client from the profile.
func HTTPClient(profile *config.Config, log *slog.Logger) (*http.Client, error) {
	log.Info("profile",
		"env", profile.Env,
		"proxy_mode", profile.Proxy.Mode,
		"proxy_list_len", len(profile.Proxy.List),
	)

	sel, err := proxy.FromConfig(proxy.Config{
		Mode:               profile.Proxy.Mode,
		List:               profile.Proxy.List,
		RotationURL:        profile.Proxy.RotationURL,
		RotationTTLSeconds: profile.Proxy.RotationTTLSeconds,
		FailOpen:           profile.Proxy.FailOpen,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}
	if sel == nil {
		log.Warn("requests go out without a proxy")
	}

	timeout := time.Duration(profile.HTTP.TimeoutSeconds) * time.Second
	return client.NewHTTPClient(timeout, sel), nil
}

// BuildTransport stacks the API transport over httpClient. minInterval
// paces requests across all goroutines, 0 disables pacing.
func BuildTransport(profile *config.Config, httpClient *http.Client, log *slog.Logger, concurrency int, minInterval time.Duration) (client.Transport, error) {
	return client.Build(client.Options{
		HTTPClient:  httpClient,
		Retries:     profile.HTTP.Retries,
		Workers:     concurrency,
		MinInterval: minInterval,
		Logger:      log,
	})
}

// Connect opens a storefront session for the profile's address and returns
// the API service sharing its cookies. Without an address the service is
// returned without a session.
func Connect(ctx context.Context, profile *config.Config, log *slog.Logger, concurrency int) (cornershop.CornershopService, *http.Client, error) {
	hc, err := HTTPClient(profile, log)
	if err != nil {
		return nil, nil, err
	}

	if profile.Cornershop.Address != "" {
		sess, err := session.New(session.Options{
			HTTPClient: hc,
			WebURL:     profile.Cornershop.WebURL,
			Logger:     log,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := sess.SetAddress(ctx, profile.Cornershop.Address, profile.Cornershop.Country, profile.Cornershop.Language); err != nil {
			return nil, nil, fmt.Errorf("session: %w", err)
		}
	} else {
		log.Warn("no address configured, storefront session skipped")
	}

	tr, err := BuildTransport(profile, hc, log, concurrency, 0)
	if err != nil {
		return nil, nil, err
	}
	return cornershop.New(tr, profile.Cornershop.BaseURL, log), hc, nil
}
