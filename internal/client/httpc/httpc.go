package httpc

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"golang.org/x/net/publicsuffix"
)

type Options struct {
	Timeout time.Duration

	// Proxy is installed as http.Transport.Proxy; nil dials directly.
	Proxy func(*http.Request) (*url.URL, error)
}

// New returns the client shared by the storefront session and the API
// transport, so both send the same cookies.
func New(opts Options) *http.Client {
	// only fails on a nil-returning PublicSuffixList
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	return &http.Client{
		Transport: cloudflarebp.AddCloudFlareByPass(baseTransport(opts.Proxy)),
		Timeout:   opts.Timeout,
		Jar:       jar,
	}
}

func baseTransport(proxy func(*http.Request) (*url.URL, error)) *http.Transport {
	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}

	return &http.Transport{
		Proxy:                 proxy,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 20 * time.Second,
		ExpectContinueTimeout: time.Second,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
	}
}
