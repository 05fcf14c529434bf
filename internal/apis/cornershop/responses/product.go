package responses

import "github.com/shopspring/decimal"

type Product struct {
	ID                 Text                `json:"id"`
	Name               *string             `json:"name"`
	Brand              *Brand              `json:"brand"`
	Currency           string              `json:"currency"`
	Price              decimal.Decimal     `json:"price"`
	OriginalPrice      decimal.NullDecimal `json:"original_price"`
	PricePerUnit       Text                `json:"price_per_unit"`
	Package            string              `json:"package"`
	Label              string              `json:"label"`
	Kind               string              `json:"kind"`
	Description        string              `json:"description"`
	BuyUnit            string              `json:"buy_unit"`
	Purchasable        bool                `json:"purchasable"`
	VariableWeight     bool                `json:"variable_weight"`
	AvailabilityStatus string              `json:"availability_status"`
	ImgURL             string              `json:"img_url"`
}

type Brand struct {
	ID   Text   `json:"id"`
	Name string `json:"name"`
}

// Search is the keyword search payload: /api/v2/branches/{business_id}/search.
type Search struct {
	Aisles []SearchAisle `json:"aisles"`
}

type SearchAisle struct {
	AisleID      Text      `json:"aisle_id"`
	AisleName    string    `json:"aisle_name"`
	DepartmentID Text      `json:"department_id"`
	Products     []Product `json:"products"`
}
