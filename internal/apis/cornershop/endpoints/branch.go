package endpoints

import (
	"context"
	"net/http"
	"net/url"

	"cornershopparser/internal/apis/cornershop/responses"
)

type BranchQuery struct {
	BusinessID string
	Locality   string
	Country    string
	Language   string // sent as Accept-Language when set
}

// GetBranch loads a store with its departments, aisles and featured offers.
func (c *Client) GetBranch(ctx context.Context, q BranchQuery) (responses.Branch, error) {
	cl := call{
		path: "/api/v3/branches/" + url.PathEscape(q.BusinessID),
		query: url.Values{
			"with_suspended_slots": {""},
			"locality":             {q.Locality},
			"country":              {q.Country},
		},
		limit: largeBody,
	}
	if q.Language != "" {
		cl.header = http.Header{"Accept-Language": {q.Language}}
	}
	return get[responses.Branch](ctx, c, cl)
}
