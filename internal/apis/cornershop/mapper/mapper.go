package mapper

import (
	"strings"

	"cornershopparser/internal/apis/cornershop/responses"
	"cornershopparser/internal/domain/models"
)

// featured entries pointing at this path are catalog offers; the rest are
// banners, recipes and similar.
const catalogLinkMarker = "/catalog/"

type Locality struct {
	Address  string
	Country  string
	Language string
}

// BuildCatalog turns a branch-detail payload into a linked Catalog. It does
// no I/O. A missing id or name anywhere in the tree fails the whole build.
func BuildCatalog(businessID string, loc Locality, raw responses.Branch) (*models.Catalog, error) {
	info := raw.Branch
	if info == nil {
		return nil, &models.MalformedResponseError{Entity: "branch", Field: "branch"}
	}
	if info.Name == nil {
		return nil, &models.MalformedResponseError{Entity: "branch", Field: "name"}
	}
	if raw.Departments == nil {
		return nil, &models.MalformedResponseError{Entity: "branch", Field: "departments"}
	}

	deps := make([]models.Department, 0, len(raw.Departments))
	for _, d := range raw.Departments {
		dep, err := FromDepartment(d)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	offers := make([]models.Offer, 0, len(info.Featured))
	for _, f := range info.Featured {
		if !strings.Contains(f.URL, catalogLinkMarker) {
			continue
		}
		o, err := FromFeatured(f)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}

	return models.NewCatalog(models.Catalog{
		BusinessID:       businessID,
		Address:          loc.Address,
		Country:          loc.Country,
		Language:         loc.Language,
		Name:             *info.Name,
		StoreDisplayName: info.StoreName,
		Locale:           info.Locale,
		Description:      info.Description,
		HasSamePrices:    info.HasSamePrices,
		IsPartner:        info.IsPartner,
		Geo:              models.Geo{Lat: info.Lat, Lng: info.Lng},
		Departments:      deps,
		Offers:           offers,
	}), nil
}

func FromDepartment(d responses.Department) (models.Department, error) {
	id := d.ID.String()
	if id == "" {
		return models.Department{}, &models.MalformedResponseError{Entity: "department", Field: "id"}
	}
	if d.Name == nil {
		return models.Department{}, &models.MalformedResponseError{Entity: "department " + id, Field: "name"}
	}
	if d.Aisles == nil {
		return models.Department{}, &models.MalformedResponseError{Entity: "department " + id, Field: "aisles"}
	}

	aisles := make([]models.Aisle, 0, len(d.Aisles))
	for _, a := range d.Aisles {
		aisle, err := FromAisle(a, id)
		if err != nil {
			return models.Department{}, err
		}
		aisles = append(aisles, aisle)
	}

	return models.Department{
		ID:       id,
		Name:     *d.Name,
		ImageURL: d.ImgURL,
		Aisles:   aisles,
	}, nil
}

func FromAisle(a responses.Aisle, departmentID string) (models.Aisle, error) {
	id := a.ID.String()
	if id == "" {
		return models.Aisle{}, &models.MalformedResponseError{Entity: "aisle", Field: "id"}
	}
	if a.Name == nil {
		return models.Aisle{}, &models.MalformedResponseError{Entity: "aisle " + id, Field: "name"}
	}
	return models.Aisle{
		ID:           id,
		Name:         *a.Name,
		DepartmentID: departmentID,
		ImageURL:     a.ImgURL,
	}, nil
}

func FromFeatured(f responses.Featured) (models.Offer, error) {
	id := f.ID.String()
	if id == "" {
		return models.Offer{}, &models.MalformedResponseError{Entity: "offer", Field: "id"}
	}
	return models.Offer{
		ID:         id,
		Caption:    f.Caption,
		ImageURL:   f.Imageset["1x"],
		URL:        f.URL,
		ValidUntil: f.ValidUntil.String(),
		Priority:   f.Priority,
	}, nil
}

// FromProduct maps one product and tags it with the display names of the
// aisle and department it was listed under.
func FromProduct(p responses.Product, aisleName, departmentName string) (models.Product, error) {
	id := p.ID.String()
	if id == "" {
		return models.Product{}, &models.MalformedResponseError{Entity: "product", Field: "id"}
	}
	if p.Name == nil {
		return models.Product{}, &models.MalformedResponseError{Entity: "product " + id, Field: "name"}
	}

	out := models.Product{
		ID:                 id,
		Name:               strings.TrimSpace(*p.Name),
		Currency:           p.Currency,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		PricePerUnit:       p.PricePerUnit.String(),
		Package:            p.Package,
		Label:              p.Label,
		Kind:               p.Kind,
		Description:        p.Description,
		BuyUnit:            p.BuyUnit,
		Purchasable:        p.Purchasable,
		VariableWeight:     p.VariableWeight,
		AvailabilityStatus: p.AvailabilityStatus,
		ImageURL:           p.ImgURL,
		Aisle:              aisleName,
		Department:         departmentName,
	}
	if p.Brand != nil {
		out.BrandName = p.Brand.Name
		out.BrandID = p.Brand.ID.String()
	}
	return out, nil
}

func FromProducts(raw []responses.Product, aisleName, departmentName string) ([]models.Product, error) {
	out := make([]models.Product, 0, len(raw))
	for _, p := range raw {
		mp, err := FromProduct(p, aisleName, departmentName)
		if err != nil {
			return nil, err
		}
		out = append(out, mp)
	}
	return out, nil
}

func FromBranchGroupItem(group responses.BranchGroup, item responses.BranchGroupItem) models.StoreListing {
	category := group.Name
	if category == "" {
		category = group.Title
	}
	c := item.Content
	return models.StoreListing{
		BusinessID: c.ID.String(),
		StoreID:    c.StoreID.String(),
		Name:       c.Name,
		Excerpt:    c.Excerpt,
		ImageURL:   c.ImgURL,
		Category:   category,
	}
}
