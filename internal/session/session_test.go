package session

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornershopparser/internal/logger"
)

const landingPage = `<html><body>
<form method="post" action="/address">
  <input type="hidden" name="csrfmiddlewaretoken" value=" tok123 ">
  <input type="text" name="address">
</form>
</body></html>`

func jarClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func TestCSRFToken(t *testing.T) {
	tok, err := CSRFToken([]byte(landingPage))
	require.NoError(t, err)
	assert.Equal(t, "tok123", tok)

	_, err = CSRFToken([]byte(`<html><input name="other" value="x"></html>`))
	require.Error(t, err)
}

func TestSetAddress(t *testing.T) {
	var posted bool
	mux := http.NewServeMux()
	mux.HandleFunc("/es-cl", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "c1", Path: "/"})
		_, _ = w.Write([]byte(landingPage))
	})
	mux.HandleFunc("/address", func(w http.ResponseWriter, r *http.Request) {
		posted = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "tok123", r.PostForm.Get("csrfmiddlewaretoken"))
		assert.Equal(t, "Av Providencia 1208", r.PostForm.Get("address"))
		assert.Equal(t, "CL", r.PostForm.Get("country"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Referer"), "/es-cl/")

		c, err := r.Cookie("csrftoken")
		if assert.NoError(t, err) {
			assert.Equal(t, "c1", c.Value)
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s, err := New(Options{HTTPClient: jarClient(t), WebURL: srv.URL + "/", UserAgent: "test-agent", Logger: logger.Discard()})
	require.NoError(t, err)

	require.NoError(t, s.SetAddress(context.Background(), "Av Providencia 1208", "CL", "es-cl"))
	assert.True(t, posted)
}

func TestSetAddressRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pt-br", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(landingPage))
	})
	mux.HandleFunc("/address", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s, err := New(Options{HTTPClient: jarClient(t), WebURL: srv.URL, Logger: logger.Discard()})
	require.NoError(t, err)

	err = s.SetAddress(context.Background(), "Rua Augusta 10", "BR", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
}

func TestNewRequiresJar(t *testing.T) {
	_, err := New(Options{HTTPClient: &http.Client{}})
	require.Error(t, err)

	_, err = New(Options{})
	require.Error(t, err)
}

func TestSetAddressEmpty(t *testing.T) {
	s, err := New(Options{HTTPClient: jarClient(t), Logger: logger.Discard()})
	require.NoError(t, err)
	require.Error(t, s.SetAddress(context.Background(), " ", "BR", "pt-br"))
}
