package endpoints

import (
	"context"
	"net/url"

	"cornershopparser/internal/apis/cornershop/responses"
)

// ListAisleProducts never returns a nil slice on success.
func (c *Client) ListAisleProducts(ctx context.Context, businessID, aisleID string) ([]responses.Product, error) {
	out, err := get[[]responses.Product](ctx, c, call{
		path:  "/api/v2/branches/" + url.PathEscape(businessID) + "/aisles/" + url.PathEscape(aisleID) + "/products",
		limit: largeBody,
	})
	if err == nil && out == nil {
		out = []responses.Product{}
	}
	return out, err
}

func (c *Client) Search(ctx context.Context, businessID, query string) (responses.Search, error) {
	return get[responses.Search](ctx, c, call{
		path:  "/api/v2/branches/" + url.PathEscape(businessID) + "/search",
		query: url.Values{"query": {query}},
		limit: largeBody,
	})
}
