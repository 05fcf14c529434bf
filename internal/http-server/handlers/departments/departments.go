package departments

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/http-server/respond"
)

type CatalogGetter interface {
	Catalog() *models.Catalog
}

type Options struct {
	Log     *slog.Logger
	Catalog CatalogGetter
	// HideEmpty drops departments without aisles; nothing can be fetched
	// from them.
	HideEmpty bool
}

// FlatEntry is one department (level 0) or aisle (level 1) of the tree.
type FlatEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id,omitempty"`
	AisleCount   int    `json:"aisle_count,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Level        int    `json:"level"`
}

type Result struct {
	FetchedAt   string      `json:"fetched_at"`
	BusinessID  string      `json:"business_id"`
	Store       string      `json:"store"`
	Count       int         `json:"count"`
	Departments []FlatEntry `json:"departments"`
}

// NewGetHandler lists the loaded catalog's departments and aisles as one
// flat list. Nothing is fetched upstream.
func NewGetHandler(opts Options) http.HandlerFunc {
	return respond.Get(opts.Log, 0, func(context.Context, *http.Request) (any, error) {
		c := opts.Catalog.Catalog()
		if c == nil {
			return nil, errors.New("departments: no catalog loaded")
		}
		flat := flatten(c.Departments, opts.HideEmpty)
		return Result{
			FetchedAt:   respond.Now(),
			BusinessID:  c.BusinessID,
			Store:       c.DisplayName(),
			Count:       len(flat),
			Departments: flat,
		}, nil
	})
}

func flatten(deps []models.Department, hideEmpty bool) []FlatEntry {
	var out []FlatEntry

	for _, d := range deps {
		if hideEmpty && len(d.Aisles) == 0 {
			continue
		}

		out = append(out, FlatEntry{ID: d.ID, Name: d.Name, AisleCount: len(d.Aisles), ImageURL: d.ImageURL})

		for _, a := range d.Aisles {
			out = append(out, FlatEntry{
				ID:           a.ID,
				Name:         a.Name,
				DepartmentID: a.DepartmentID,
				ImageURL:     a.ImageURL,
				Level:        1,
			})
		}
	}

	if out == nil {
		out = []FlatEntry{}
	}
	return out
}
