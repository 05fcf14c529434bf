package models

// Field is one named value of an exported entity.
type Field struct {
	Name  string
	Value any
}

// Record is anything the export pipeline can project. Fields must always be
// returned in the same order; that order is the default column order.
type Record interface {
	Fields() []Field
}

// Fields is an ad-hoc Record, used for rows that have no entity type.
type Fields []Field

func (f Fields) Fields() []Field { return f }

func Records[T Record](items []T) []Record {
	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// Lookup returns the value of the named field of r.
func Lookup(r Record, name string) (any, bool) {
	for _, f := range r.Fields() {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (a Aisle) Fields() []Field {
	return []Field{
		{"id", a.ID},
		{"name", a.Name},
		{"department_id", a.DepartmentID},
		{"image_url", a.ImageURL},
	}
}

func (d Department) Fields() []Field {
	return []Field{
		{"id", d.ID},
		{"name", d.Name},
		{"image_url", d.ImageURL},
		{"aisle_count", len(d.Aisles)},
	}
}

func (p Product) Fields() []Field {
	var original any
	if p.OriginalPrice.Valid {
		original = p.OriginalPrice.Decimal
	}
	return []Field{
		{"id", p.ID},
		{"name", p.Name},
		{"brand_name", p.BrandName},
		{"brand_id", p.BrandID},
		{"currency", p.Currency},
		{"price", p.Price},
		{"original_price", original},
		{"price_per_unit", p.PricePerUnit},
		{"package", p.Package},
		{"label", p.Label},
		{"kind", p.Kind},
		{"description", p.Description},
		{"buy_unit", p.BuyUnit},
		{"purchasable", p.Purchasable},
		{"variable_weight", p.VariableWeight},
		{"availability_status", p.AvailabilityStatus},
		{"image_url", p.ImageURL},
		{"aisle", p.Aisle},
		{"department", p.Department},
	}
}

func (o Offer) Fields() []Field {
	return []Field{
		{"id", o.ID},
		{"caption", o.Caption},
		{"image_url", o.ImageURL},
		{"url", o.URL},
		{"valid_until", o.ValidUntil},
		{"priority", o.Priority},
	}
}

func (s StoreListing) Fields() []Field {
	return []Field{
		{"business_id", s.BusinessID},
		{"store_id", s.StoreID},
		{"name", s.Name},
		{"excerpt", s.Excerpt},
		{"image_url", s.ImageURL},
		{"category", s.Category},
	}
}

func (c Country) Fields() []Field {
	return []Field{
		{"code", c.Code},
		{"language", c.Language},
		{"name", c.Name},
	}
}
