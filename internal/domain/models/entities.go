package models

import (
	"github.com/shopspring/decimal"
)

type Aisle struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
	ImageURL     string `json:"image_url"`
}

type Department struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	Aisles   []Aisle `json:"aisles"`
}

func (d Department) NumberOfAisles() int {
	return len(d.Aisles)
}

// Product is built per request and never cached. Aisle and Department are
// display labels copied at construction, not references into a Catalog.
type Product struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	BrandName          string              `json:"brand_name"`
	BrandID            string              `json:"brand_id"`
	Currency           string              `json:"currency"`
	Price              decimal.Decimal     `json:"price"`
	OriginalPrice      decimal.NullDecimal `json:"original_price"`
	PricePerUnit       string              `json:"price_per_unit"`
	Package            string              `json:"package"`
	Label              string              `json:"label"`
	Kind               string              `json:"kind"`
	Description        string              `json:"description"`
	BuyUnit            string              `json:"buy_unit"`
	Purchasable        bool                `json:"purchasable"`
	VariableWeight     bool                `json:"variable_weight"`
	AvailabilityStatus string              `json:"availability_status"`
	ImageURL           string              `json:"image_url"`
	Aisle              string              `json:"aisle"`
	Department         string              `json:"department"`
}

type Offer struct {
	ID         string `json:"id"`
	Caption    string `json:"caption"`
	ImageURL   string `json:"image_url"`
	URL        string `json:"url"`
	ValidUntil string `json:"valid_until"`
	Priority   int    `json:"priority"`
}

type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StoreListing is one entry of the nearby-stores listing. BusinessID is the
// id used to open a branch, StoreID is the store identity shared by every
// listing of the same store.
type StoreListing struct {
	BusinessID string `json:"business_id"`
	StoreID    string `json:"store_id"`
	Name       string `json:"name"`
	Excerpt    string `json:"excerpt"`
	ImageURL   string `json:"image_url"`
	Category   string `json:"category"`
}
