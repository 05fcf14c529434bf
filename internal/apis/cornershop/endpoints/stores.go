package endpoints

import (
	"context"
	"net/url"

	"cornershopparser/internal/apis/cornershop/responses"
)

// ListBranchGroups lists the stores delivering to locality, grouped by
// category.
func (c *Client) ListBranchGroups(ctx context.Context, locality, country string) ([]responses.BranchGroup, error) {
	return get[[]responses.BranchGroup](ctx, c, call{
		path:  "/api/v3/branch_groups",
		query: url.Values{"locality": {locality}, "country": {country}},
		limit: 4 << 20,
	})
}

func (c *Client) ListCountries(ctx context.Context) ([]map[string]any, error) {
	return get[[]map[string]any](ctx, c, call{path: "/api/v1/countries", limit: smallBody})
}
