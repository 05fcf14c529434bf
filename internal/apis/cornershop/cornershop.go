package cornershop

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"cornershopparser/internal/apis/cornershop/endpoints"
	"cornershopparser/internal/apis/cornershop/responses"
	"cornershopparser/internal/client"
)

const DefaultBaseURL = "https://cornershopapp.com"

type BranchQuery = endpoints.BranchQuery

// CornershopService is the storefront API as seen by the traversal code:
// GET with query parameters in, decoded JSON or *endpoints.APIError out.
type CornershopService interface {
	GetBranch(ctx context.Context, q BranchQuery) (responses.Branch, error)
	ListAisleProducts(ctx context.Context, businessID, aisleID string) ([]responses.Product, error)
	Search(ctx context.Context, businessID, query string) (responses.Search, error)
	ListBranchGroups(ctx context.Context, locality, country string) ([]responses.BranchGroup, error)
	ListCountries(ctx context.Context) ([]map[string]any, error)
}

type service struct {
	api     *endpoints.Client
	baseURL string
	log     *slog.Logger
}

func New(transport client.Transport, baseURL string, logger *slog.Logger) CornershopService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &service{log: logger, baseURL: strings.TrimRight(baseURL, "/")}
	s.api = endpoints.New(transport, baseURL, s.applyDefaultHeaders)
	return s
}

func (s *service) applyDefaultHeaders(req *http.Request) {
	req.Header.Set(
		"User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) "+
			"AppleWebKit/537.36 (KHTML, like Gecko) "+
			"Chrome/126.0.0.0 Safari/537.36",
	)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", s.baseURL+"/")
	req.Header.Set("Origin", s.baseURL)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
}

func (s *service) GetBranch(ctx context.Context, q BranchQuery) (responses.Branch, error) {
	s.log.Debug("get branch", "business_id", q.BusinessID, "locality", q.Locality, "country", q.Country)
	return s.api.GetBranch(ctx, q)
}

func (s *service) ListAisleProducts(ctx context.Context, businessID, aisleID string) ([]responses.Product, error) {
	s.log.Debug("list aisle products", "business_id", businessID, "aisle_id", aisleID)
	return s.api.ListAisleProducts(ctx, businessID, aisleID)
}

func (s *service) Search(ctx context.Context, businessID, query string) (responses.Search, error) {
	s.log.Debug("search", "business_id", businessID, "query", query)
	return s.api.Search(ctx, businessID, query)
}

func (s *service) ListBranchGroups(ctx context.Context, locality, country string) ([]responses.BranchGroup, error) {
	s.log.Debug("list branch groups", "locality", locality, "country", country)
	return s.api.ListBranchGroups(ctx, locality, country)
}

func (s *service) ListCountries(ctx context.Context) ([]map[string]any, error) {
	return s.api.ListCountries(ctx)
}
