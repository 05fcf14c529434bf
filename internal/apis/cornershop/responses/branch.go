package responses

// Branch is the branch-detail payload: /api/v3/branches/{business_id}.
type Branch struct {
	Branch      *BranchInfo  `json:"branch"`
	Departments []Department `json:"departments"`
}

type BranchInfo struct {
	ID            Text       `json:"id"`
	Name          *string    `json:"name"`
	StoreName     string     `json:"store_name"`
	Address       string     `json:"address"`
	Country       string     `json:"country"`
	Locale        string     `json:"locale"`
	Description   string     `json:"description"`
	Lat           float64    `json:"lat"`
	Lng           float64    `json:"lng"`
	HasSamePrices bool       `json:"has_same_prices"`
	IsPartner     bool       `json:"is_partner"`
	Featured      []Featured `json:"featured"`
}

type Department struct {
	ID     Text    `json:"id"`
	Name   *string `json:"name"`
	ImgURL string  `json:"img_url"`
	Aisles []Aisle `json:"aisles"`
}

type Aisle struct {
	ID     Text    `json:"id"`
	Name   *string `json:"name"`
	ImgURL string  `json:"img_url"`
}

type Featured struct {
	ID              Text              `json:"id"`
	Caption         string            `json:"caption"`
	Imageset        map[string]string `json:"imageset"`
	URL             string            `json:"url"`
	ValidUntil      Text              `json:"valid_until"`
	Priority        int               `json:"priority"`
	BackgroundColor string            `json:"background_color"`
	IsLight         bool              `json:"is_light"`
}
