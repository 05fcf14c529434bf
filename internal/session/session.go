package session

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultWebURL   = "https://cornershopapp.com"
	DefaultLanguage = "pt-br"

	csrfField = "csrfmiddlewaretoken"
)

type Options struct {
	// HTTPClient is shared with the API transport so the session cookies
	// reach every later call.
	HTTPClient *http.Client
	WebURL     string
	UserAgent  string
	Logger     *slog.Logger
}

// Session registers the delivery address on the storefront web site.
type Session struct {
	http   *resty.Client
	webURL string
	log    *slog.Logger
}

func New(opts Options) (*Session, error) {
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("HTTPClient is nil")
	}
	if opts.HTTPClient.Jar == nil {
		return nil, fmt.Errorf("HTTPClient has no cookie jar")
	}
	if opts.WebURL == "" {
		opts.WebURL = DefaultWebURL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := resty.NewWithClient(opts.HTTPClient)
	c.SetBaseURL(strings.TrimRight(opts.WebURL, "/"))
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}

	s := &Session{http: c, webURL: strings.TrimRight(opts.WebURL, "/"), log: opts.Logger}
	s.instrument()
	return s, nil
}

// SetAddress fetches the landing page for language, takes its CSRF token
// and posts the address form with it.
func (s *Session) SetAddress(ctx context.Context, address, country, language string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("address must not be empty")
	}
	lang := strings.TrimSpace(language)
	if lang == "" {
		lang = DefaultLanguage
	}
	landing := "/" + lang

	res, err := s.http.R().SetContext(ctx).Get(landing)
	if err != nil {
		return fmt.Errorf("session landing: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return fmt.Errorf("session landing: status=%d", res.StatusCode())
	}

	token, err := CSRFToken(res.Body())
	if err != nil {
		return err
	}

	res, err = s.http.R().
		SetContext(ctx).
		SetHeader("Referer", s.webURL+landing+"/").
		SetFormData(map[string]string{
			csrfField: token,
			"address": address,
			"country": country,
		}).
		Post("/address")
	if err != nil {
		return fmt.Errorf("session address: %w", err)
	}
	if res.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("session address: status=%d", res.StatusCode())
	}

	s.log.Info("session address set", "address", address, "country", country, "language", lang)
	return nil
}

// CSRFToken reads the form token from a landing page.
func CSRFToken(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(page))
	if err != nil {
		return "", fmt.Errorf("parse landing page: %w", err)
	}
	token, ok := doc.Find(`input[name="` + csrfField + `"]`).First().Attr("value")
	if !ok || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("landing page has no %s", csrfField)
	}
	return strings.TrimSpace(token), nil
}

func (s *Session) instrument() {
	s.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		s.log.Debug("session request", "method", req.Method, "url", req.URL)
		return nil
	})
	s.http.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		s.log.Debug("session response",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"took", res.Time().String(),
		)
		return nil
	})
	s.http.OnError(func(req *resty.Request, err error) {
		s.log.Error("session request failed", "method", req.Method, "url", req.URL, "err", err)
	})
}
