package usecases

import (
	"context"
	"fmt"

	"cornershopparser/internal/apis/cornershop/mapper"
	"cornershopparser/internal/domain/models"
)

type DepartmentProducts struct {
	Department models.Department
	Products   []models.Product
}

func (s *Store) ProductsOfAisle(ctx context.Context, value string, key models.LookupKey) ([]models.Product, error) {
	aisle, err := s.catalog.FindAisle(value, key)
	if err != nil {
		return nil, err
	}
	return s.productsOfAisle(ctx, aisle)
}

func (s *Store) productsOfAisle(ctx context.Context, aisle models.Aisle) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dep, err := s.catalog.FindDepartment(aisle.DepartmentID, models.ByID)
	if err != nil {
		return nil, err
	}

	raw, err := s.api.ListAisleProducts(ctx, s.catalog.BusinessID, aisle.ID)
	if err != nil {
		return nil, fmt.Errorf("list products aisle=%s: %w", aisle.ID, err)
	}

	products, err := mapper.FromProducts(raw, aisle.Name, dep.Name)
	if err != nil {
		return nil, fmt.Errorf("aisle=%s: %w", aisle.ID, err)
	}

	s.log.Info("aisle products fetched",
		"business_id", s.catalog.BusinessID,
		"aisle_id", aisle.ID,
		"aisle", aisle.Name,
		"count", len(products),
	)
	return products, nil
}

func (s *Store) ProductsOfDepartment(ctx context.Context, value string, key models.LookupKey) ([]models.Product, error) {
	dep, err := s.catalog.FindDepartment(value, key)
	if err != nil {
		return nil, err
	}
	return s.productsOfDepartment(ctx, dep)
}

// productsOfDepartment walks the aisles in stored order with one delay
// between every two consecutive aisle requests. Any failure drops the
// products collected so far.
func (s *Store) productsOfDepartment(ctx context.Context, dep models.Department) ([]models.Product, error) {
	out := make([]models.Product, 0, 64*len(dep.Aisles))

	for i, aisle := range dep.Aisles {
		if i > 0 {
			if err := s.wait(ctx); err != nil {
				return nil, err
			}
		}

		products, err := s.productsOfAisle(ctx, aisle)
		if err != nil {
			return nil, fmt.Errorf("department=%s: %w", dep.ID, err)
		}
		out = append(out, products...)
	}

	s.log.Info("department products fetched",
		"business_id", s.catalog.BusinessID,
		"department_id", dep.ID,
		"department", dep.Name,
		"aisles", len(dep.Aisles),
		"count", len(out),
	)
	return out, nil
}

func (s *Store) ProductsOfStore(ctx context.Context) ([]models.Product, error) {
	groups, err := s.ProductsOfStoreByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, g := range groups {
		n += len(g.Products)
	}
	out := make([]models.Product, 0, n)
	for _, g := range groups {
		out = append(out, g.Products...)
	}
	return out, nil
}

// ProductsOfStoreByDepartment is ProductsOfStore keeping one group per
// department, in catalog order.
func (s *Store) ProductsOfStoreByDepartment(ctx context.Context) ([]DepartmentProducts, error) {
	out := make([]DepartmentProducts, 0, len(s.catalog.Departments))

	for i, dep := range s.catalog.Departments {
		if i > 0 {
			if err := s.wait(ctx); err != nil {
				return nil, err
			}
		}

		products, err := s.productsOfDepartment(ctx, dep)
		if err != nil {
			return nil, err
		}
		out = append(out, DepartmentProducts{Department: dep, Products: products})
	}

	return out, nil
}
