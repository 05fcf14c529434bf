package responses

// BranchGroup is one category of the nearby-stores listing:
// /api/v3/branch_groups.
type BranchGroup struct {
	Name  string            `json:"name"`
	Title string            `json:"title"`
	Items []BranchGroupItem `json:"items"`
}

type BranchGroupItem struct {
	Content BranchGroupContent `json:"content"`
}

type BranchGroupContent struct {
	ID      Text   `json:"id"`
	StoreID Text   `json:"store_id"`
	Name    string `json:"name"`
	Excerpt string `json:"excerpt"`
	ImgURL  string `json:"img_url"`
}
