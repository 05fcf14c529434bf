// Package endpoints holds one method per storefront API route.
package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Body limits per route family.
const (
	smallBody = 512 << 10
	largeBody = 8 << 20
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	Doer    Doer
	BaseURL string

	// ApplyHeaders runs on every request before it is sent.
	ApplyHeaders func(*http.Request)
}

func New(doer Doer, baseURL string, applyHeaders func(*http.Request)) *Client {
	return &Client{Doer: doer, BaseURL: strings.TrimRight(baseURL, "/"), ApplyHeaders: applyHeaders}
}

// call is one GET against the API.
type call struct {
	path   string
	query  url.Values
	header http.Header
	limit  int64
}

// get runs cl and decodes a 200 body into a T. Any other status comes back
// as *APIError.
func get[T any](ctx context.Context, c *Client, cl call) (T, error) {
	var out T

	req, err := c.request(ctx, cl)
	if err != nil {
		return out, err
	}
	target := req.Method + " " + req.URL.Redacted()

	resp, err := c.Doer.Do(req)
	if err != nil {
		return out, fmt.Errorf("%s: %w", target, err)
	}
	body, err := read(resp, cl.limit)
	if err != nil {
		return out, fmt.Errorf("%s: read body: %w", target, err)
	}

	if resp.StatusCode != http.StatusOK {
		return out, ParseAPIError(req.Method, req.URL.Redacted(), resp.StatusCode, body)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%s: bad json (%.1024s): %w", target, body, err)
	}
	return out, nil
}

func (c *Client) request(ctx context.Context, cl call) (*http.Request, error) {
	if c.BaseURL == "" {
		return nil, errors.New("endpoints: empty BaseURL")
	}
	u := c.BaseURL + "/" + strings.TrimLeft(cl.path, "/")
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.ApplyHeaders != nil {
		c.ApplyHeaders(req)
	}
	for k, vs := range cl.header {
		req.Header[k] = vs
	}
	return req, nil
}

func read(resp *http.Response, limit int64) ([]byte, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	return bytes.TrimSpace(b), err
}
