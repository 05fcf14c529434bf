package stores

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/http-server/query"
	"cornershopparser/internal/http-server/respond"
)

type Lister interface {
	ListStores(ctx context.Context, locality, country string) ([]models.StoreListing, error)
}

type Options struct {
	Log    *slog.Logger
	Lister Lister

	// used when the request names no locality or country
	DefaultLocality string
	DefaultCountry  string

	Timeout time.Duration
}

type Result struct {
	FetchedAt string                `json:"fetched_at"`
	Locality  string                `json:"locality"`
	Country   string                `json:"country"`
	Count     int                   `json:"count"`
	Stores    []models.StoreListing `json:"stores"`
}

func NewGetHandler(opts Options) http.HandlerFunc {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return respond.Get(opts.Log, opts.Timeout, func(ctx context.Context, r *http.Request) (any, error) {
		locality, ok := query.StringAny(r, "locality", "address")
		if !ok {
			locality = opts.DefaultLocality
		}
		country, ok := query.String(r, "country")
		if !ok {
			country = opts.DefaultCountry
		}
		if locality == "" {
			return nil, respond.BadRequest("locality is required")
		}

		list, err := opts.Lister.ListStores(ctx, locality, country)
		if err != nil {
			return nil, err
		}
		return Result{FetchedAt: respond.Now(), Locality: locality, Country: country, Count: len(list), Stores: list}, nil
	})
}
