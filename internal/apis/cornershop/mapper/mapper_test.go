package mapper

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornershopparser/internal/apis/cornershop/responses"
	"cornershopparser/internal/domain/models"
)

func str(s string) *string { return &s }

func branchPayload(aisleCounts []int) responses.Branch {
	deps := make([]responses.Department, 0, len(aisleCounts))
	for i, n := range aisleCounts {
		aisles := make([]responses.Aisle, 0, n)
		for j := 0; j < n; j++ {
			aisles = append(aisles, responses.Aisle{
				ID:   responses.Text(fmt.Sprintf("a%d-%d", i, j)),
				Name: str(fmt.Sprintf("Aisle %d.%d", i, j)),
			})
		}
		deps = append(deps, responses.Department{
			ID:     responses.Text(fmt.Sprint(i + 1)),
			Name:   str(fmt.Sprintf("Department %d", i+1)),
			Aisles: aisles,
		})
	}
	return responses.Branch{
		Branch:      &responses.BranchInfo{ID: "52", Name: str("Mercado")},
		Departments: deps,
	}
}

func TestBuildCatalogShape(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("departments and aisle counts follow the payload", prop.ForAll(
		func(counts []int) bool {
			c, err := BuildCatalog("52", Locality{}, branchPayload(counts))
			if err != nil {
				return false
			}
			if len(c.Departments) != len(counts) {
				return false
			}
			total := 0
			for i, d := range c.Departments {
				if d.ID != fmt.Sprint(i+1) || d.NumberOfAisles() != counts[i] {
					return false
				}
				for _, a := range d.Aisles {
					if a.DepartmentID != d.ID {
						return false
					}
				}
				total += counts[i]
			}
			return len(c.Aisles()) == total
		},
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.TestingRun(t)
}

func TestBuildCatalogFromJSON(t *testing.T) {
	payload := `{
		"branch": {
			"id": 52, "name": "Mercado Centro", "store_name": "Mercado",
			"locale": "pt-br", "lat": -23.5, "lng": -46.6,
			"featured": [
				{"id": 7, "caption": "Promo", "imageset": {"1x": "https://img/1x.png", "2x": "https://img/2x.png"},
				 "url": "https://cornershopapp.com/store/52/catalog/offers", "valid_until": null, "priority": 2},
				{"id": 8, "caption": "Recipe", "url": "https://cornershopapp.com/recipes/1"}
			]
		},
		"departments": [
			{"id": 1, "name": "Bebidas", "img_url": "https://img/d1.png",
			 "aisles": [{"id": "c_10", "name": "Sucos"}, {"id": 11, "name": "Águas"}]},
			{"id": "2", "name": "Padaria", "aisles": []}
		]
	}`

	var raw responses.Branch
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	c, err := BuildCatalog("52", Locality{Address: "Av Paulista", Country: "BR", Language: "pt-br"}, raw)
	require.NoError(t, err)

	assert.Equal(t, "Mercado Centro", c.Name)
	assert.Equal(t, "Mercado", c.DisplayName())
	assert.Equal(t, "Av Paulista", c.Address)
	assert.Equal(t, models.Geo{Lat: -23.5, Lng: -46.6}, c.Geo)

	require.Len(t, c.Departments, 2)
	assert.Equal(t, "1", c.Departments[0].ID)
	assert.Equal(t, []models.Aisle{
		{ID: "c_10", Name: "Sucos", DepartmentID: "1"},
		{ID: "11", Name: "Águas", DepartmentID: "1"},
	}, c.Departments[0].Aisles)
	assert.Empty(t, c.Departments[1].Aisles)

	require.Len(t, c.Offers, 1)
	assert.Equal(t, models.Offer{
		ID:       "7",
		Caption:  "Promo",
		ImageURL: "https://img/1x.png",
		URL:      "https://cornershopapp.com/store/52/catalog/offers",
		Priority: 2,
	}, c.Offers[0])
}

func TestBuildCatalogWhole(t *testing.T) {
	c, err := BuildCatalog("52", Locality{Country: "BR"}, branchPayload([]int{2, 0}))
	require.NoError(t, err)

	expected := &models.Catalog{
		BusinessID: "52",
		Country:    "BR",
		Name:       "Mercado",
		Departments: []models.Department{
			{ID: "1", Name: "Department 1", Aisles: []models.Aisle{
				{ID: "a0-0", Name: "Aisle 0.0", DepartmentID: "1"},
				{ID: "a0-1", Name: "Aisle 0.1", DepartmentID: "1"},
			}},
			{ID: "2", Name: "Department 2", Aisles: []models.Aisle{}},
		},
		Offers: []models.Offer{},
	}

	diff := cmp.Diff(expected, c, cmpopts.IgnoreUnexported(models.Catalog{}))
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestBuildCatalogMalformed(t *testing.T) {
	ok := branchPayload([]int{1})

	cases := map[string]func(b *responses.Branch){
		"no branch":      func(b *responses.Branch) { b.Branch = nil },
		"no branch name": func(b *responses.Branch) { b.Branch.Name = nil },
		"no departments": func(b *responses.Branch) { b.Departments = nil },
		"no dept id":     func(b *responses.Branch) { b.Departments[0].ID = "" },
		"no dept name":   func(b *responses.Branch) { b.Departments[0].Name = nil },
		"no dept aisles": func(b *responses.Branch) { b.Departments[0].Aisles = nil },
		"no aisle name":  func(b *responses.Branch) { b.Departments[0].Aisles[0].Name = nil },
		"no aisle id":    func(b *responses.Branch) { b.Departments[0].Aisles[0].ID = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			b := ok
			info := *ok.Branch
			b.Branch = &info
			b.Departments = []responses.Department{ok.Departments[0]}
			b.Departments[0].Aisles = append([]responses.Aisle(nil), ok.Departments[0].Aisles...)
			mutate(&b)

			c, err := BuildCatalog("52", Locality{}, b)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, models.ErrMalformedResponse)
		})
	}
}

func TestFromProduct(t *testing.T) {
	var raw []responses.Product
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 101, "name": "  Leite Integral ", "brand": {"id": 9, "name": "Vigor"},
		 "currency": "BRL", "price": 4.99, "original_price": "5.49", "price_per_unit": 4.99,
		 "package": "1 L", "purchasable": true, "img_url": "https://img/p.jpg"},
		{"id": "102", "name": "Pão", "price": "0.5", "original_price": null}
	]`), &raw))

	products, err := FromProducts(raw, "Laticínios", "Frios")
	require.NoError(t, err)
	require.Len(t, products, 2)

	p := products[0]
	assert.Equal(t, "101", p.ID)
	assert.Equal(t, "Leite Integral", p.Name)
	assert.Equal(t, "Vigor", p.BrandName)
	assert.Equal(t, "9", p.BrandID)
	assert.Equal(t, "4.99", p.Price.String())
	require.True(t, p.OriginalPrice.Valid)
	assert.Equal(t, "5.49", p.OriginalPrice.Decimal.String())
	assert.Equal(t, "4.99", p.PricePerUnit)
	assert.Equal(t, "Laticínios", p.Aisle)
	assert.Equal(t, "Frios", p.Department)
	assert.True(t, p.Purchasable)

	assert.False(t, products[1].OriginalPrice.Valid)
	assert.Empty(t, products[1].BrandName)
}

func TestFromProductsMalformed(t *testing.T) {
	raw := []responses.Product{{ID: "1", Name: str("ok")}, {ID: "2"}}

	out, err := FromProducts(raw, "a", "d")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestFromBranchGroupItem(t *testing.T) {
	g := responses.BranchGroup{Title: "Supermercados"}
	it := responses.BranchGroupItem{Content: responses.BranchGroupContent{ID: "52", StoreID: "7", Name: "Mercado"}}

	s := FromBranchGroupItem(g, it)
	assert.Equal(t, models.StoreListing{BusinessID: "52", StoreID: "7", Name: "Mercado", Category: "Supermercados"}, s)
}
