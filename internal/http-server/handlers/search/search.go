package search

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/http-server/query"
	"cornershopparser/internal/http-server/respond"
)

type Searcher interface {
	Search(ctx context.Context, query string, onlyMainAisle bool) ([]models.Product, error)
}

type Options struct {
	Log      *slog.Logger
	Searcher Searcher
	Timeout  time.Duration // defaults to 30s
}

type Result struct {
	FetchedAt string           `json:"fetched_at"`
	Query     string           `json:"query"`
	AllAisles bool             `json:"all_aisles"`
	Count     int              `json:"count"`
	Products  []models.Product `json:"products"`
}

// NewGetHandler serves /search?q=...&all=bool. Without all only the main
// aisle of the answer is returned.
func NewGetHandler(opts Options) http.HandlerFunc {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return respond.Get(opts.Log, opts.Timeout, func(ctx context.Context, r *http.Request) (any, error) {
		q, ok := query.StringAny(r, "q", "query")
		if !ok {
			return nil, respond.BadRequest("q is required")
		}
		all, _, err := query.Bool(r, "all")
		if err != nil {
			return nil, respond.BadRequest(err.Error())
		}

		products, err := opts.Searcher.Search(ctx, q, !all)
		if err != nil {
			return nil, err
		}
		return Result{FetchedAt: respond.Now(), Query: q, AllAisles: all, Count: len(products), Products: products}, nil
	})
}
