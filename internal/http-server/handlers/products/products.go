package products

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/http-server/query"
	"cornershopparser/internal/http-server/respond"
)

type ProductsGetter interface {
	Catalog() *models.Catalog
	ProductsOfAisle(ctx context.Context, value string, key models.LookupKey) ([]models.Product, error)
	ProductsOfDepartment(ctx context.Context, value string, key models.LookupKey) ([]models.Product, error)
}

type Options struct {
	Log      *slog.Logger
	Products ProductsGetter
	Timeout  time.Duration
}

type Result struct {
	FetchedAt  string           `json:"fetched_at"`
	BusinessID string           `json:"business_id"`
	Aisle      string           `json:"aisle,omitempty"`
	Department string           `json:"department,omitempty"`
	Key        string           `json:"key"`
	Products   []models.Product `json:"products"`
	Count      int              `json:"count"`
}

// NewGetHandler serves /products?aisle=...|department=...&key=name|id.
// Exactly one of aisle and department must be given.
func NewGetHandler(opts Options) http.HandlerFunc {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Minute
	}

	return respond.Get(log, opts.Timeout, func(ctx context.Context, r *http.Request) (any, error) {
		rawKey, _ := query.String(r, "key")
		key, err := models.ParseLookupKey(rawKey)
		if err != nil {
			return nil, respond.BadRequest(err.Error())
		}

		aisle, hasAisle := query.String(r, "aisle")
		department, hasDepartment := query.String(r, "department")
		if hasAisle == hasDepartment {
			return nil, respond.BadRequest("exactly one of aisle and department is required")
		}

		fetch, value := opts.Products.ProductsOfDepartment, department
		if hasAisle {
			fetch, value = opts.Products.ProductsOfAisle, aisle
		}
		products, err := fetch(ctx, value, key)
		if err != nil {
			log.Warn("products failed", "aisle", aisle, "department", department, "key", key.String(), "err", err)
			return nil, err
		}

		return Result{
			FetchedAt:  respond.Now(),
			BusinessID: opts.Products.Catalog().BusinessID,
			Aisle:      aisle,
			Department: department,
			Key:        key.String(),
			Products:   products,
			Count:      len(products),
		}, nil
	})
}
