package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cornershopparser/internal/apis/cornershop"
	"cornershopparser/internal/apis/cornershop/mapper"
	"cornershopparser/internal/apis/cornershop/responses"
	"cornershopparser/internal/domain/models"
)

// Directory answers questions that are not about one Catalog: which stores
// deliver to an address and which countries are served.
type Directory struct {
	api cornershop.CornershopService
	log *slog.Logger
}

func NewDirectory(api cornershop.CornershopService, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{api: api, log: logger}
}

func (d *Directory) ListStores(ctx context.Context, locality, country string) ([]models.StoreListing, error) {
	if strings.TrimSpace(locality) == "" {
		return nil, fmt.Errorf("locality must not be empty")
	}

	groups, err := d.api.ListBranchGroups(ctx, locality, country)
	if err != nil {
		return nil, fmt.Errorf("list stores locality=%q country=%s: %w", locality, country, err)
	}

	stores := DedupStores(groups)
	d.log.Info("stores listed",
		"locality", locality,
		"country", country,
		"groups", len(groups),
		"count", len(stores),
	)
	return stores, nil
}

// DedupStores flattens the categorized listing keeping the first entry of
// every store identity, in first-seen order. The same store shows up under
// several categories with different business ids.
func DedupStores(groups []responses.BranchGroup) []models.StoreListing {
	seen := make(map[string]struct{})
	out := make([]models.StoreListing, 0, 64)

	for _, g := range groups {
		for _, it := range g.Items {
			s := mapper.FromBranchGroupItem(g, it)
			identity := s.StoreID
			if identity == "" {
				identity = "business:" + s.BusinessID
			}
			if _, dup := seen[identity]; dup {
				continue
			}
			seen[identity] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func (d *Directory) Countries(ctx context.Context) ([]map[string]any, error) {
	out, err := d.api.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return out, nil
}
