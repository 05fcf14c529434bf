package models

// Catalog is one store's departments, aisles and offers. Values are only
// produced by the catalog builder; a zero Catalog is never handed out.
type Catalog struct {
	BusinessID       string
	Address          string
	Country          string
	Language         string
	Name             string
	StoreDisplayName string
	Locale           string
	Description      string
	HasSamePrices    bool
	IsPartner        bool
	Geo              Geo
	Departments      []Department
	Offers           []Offer

	aisles []Aisle
}

// NewCatalog takes ownership of c and builds the flat aisle index.
func NewCatalog(c Catalog) *Catalog {
	out := c
	out.aisles = flattenAisles(out.Departments)
	return &out
}

func flattenAisles(deps []Department) []Aisle {
	n := 0
	for _, d := range deps {
		n += len(d.Aisles)
	}
	out := make([]Aisle, 0, n)
	for _, d := range deps {
		out = append(out, d.Aisles...)
	}
	return out
}

// Aisles returns every aisle in department order, then aisle order.
func (c *Catalog) Aisles() []Aisle {
	if c.aisles == nil {
		c.aisles = flattenAisles(c.Departments)
	}
	return c.aisles
}

func (c *Catalog) DisplayName() string {
	if c.StoreDisplayName != "" {
		return c.StoreDisplayName
	}
	return c.Name
}
