package httpc

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeepsCookies(t *testing.T) {
	c := New(Options{Timeout: 5 * time.Second})
	assert.NotNil(t, c.Jar)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.NotNil(t, c.Transport)

	u, err := url.Parse("https://cornershopapp.com/es-cl/")
	require.NoError(t, err)
	c.Jar.SetCookies(u, []*http.Cookie{{Name: "csrftoken", Value: "x", Path: "/"}})

	api, err := url.Parse("https://cornershopapp.com/api/v3/branches/1")
	require.NoError(t, err)
	require.Len(t, c.Jar.Cookies(api), 1)
}

func TestBaseTransportProxy(t *testing.T) {
	called := false
	tr := baseTransport(func(*http.Request) (*url.URL, error) {
		called = true
		return nil, nil
	})
	require.NotNil(t, tr.Proxy)
	_, _ = tr.Proxy(&http.Request{})
	assert.True(t, called)

	assert.Nil(t, baseTransport(nil).Proxy)
}
