package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cornershopparser/internal/apis/cornershop/mapper"
	"cornershopparser/internal/apis/cornershop/responses"
	"cornershopparser/internal/domain/models"
)

// the storefront puts sponsored results in a leading aisle with this id
const promotionsAisleID = "promotions"

// Search runs a keyword query against the live storefront. With
// onlyMainAisle the first non-promotions aisle is returned, otherwise every
// aisle after the promotions one. No aisles is an empty result, not an error.
func (s *Store) Search(ctx context.Context, query string, onlyMainAisle bool) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}

	raw, err := s.api.Search(ctx, s.catalog.BusinessID, query)
	if err != nil {
		return nil, fmt.Errorf("search query=%q: %w", query, err)
	}

	aisles := pickSearchAisles(raw.Aisles, onlyMainAisle)

	out := make([]models.Product, 0, 64)
	for _, a := range aisles {
		depName, err := s.departmentName(a.DepartmentID.String())
		if err != nil {
			return nil, err
		}

		products, err := mapper.FromProducts(a.Products, a.AisleName, depName)
		if err != nil {
			return nil, fmt.Errorf("search aisle=%s: %w", a.AisleID, err)
		}
		out = append(out, products...)
	}

	s.log.Info("search done",
		"business_id", s.catalog.BusinessID,
		"query", query,
		"only_main_aisle", onlyMainAisle,
		"aisles", len(aisles),
		"count", len(out),
	)
	return out, nil
}

func pickSearchAisles(aisles []responses.SearchAisle, onlyMainAisle bool) []responses.SearchAisle {
	if len(aisles) == 0 {
		return nil
	}

	start := 0
	if aisles[0].AisleID.String() == promotionsAisleID {
		start = 1
	}
	if start >= len(aisles) {
		return nil
	}
	if onlyMainAisle {
		return aisles[start : start+1]
	}
	return aisles[start:]
}

// departmentName resolves a search aisle's department. Search may return
// departments the branch payload did not list; those get an empty label.
func (s *Store) departmentName(id string) (string, error) {
	if id == "" {
		return "", nil
	}
	dep, err := s.catalog.FindDepartment(id, models.ByID)
	if errors.Is(err, models.ErrNotFound) {
		s.log.Debug("search department not in catalog", "department_id", id)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return dep.Name, nil
}
