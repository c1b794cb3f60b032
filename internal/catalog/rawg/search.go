package rawg

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"
)

// pageSize is the fixed number of results per search page.
const pageSize = 10

// categoryOrdering maps the user-facing category tags to upstream ordering
// parameters. Unrecognized categories deliberately map to no ordering rather
// than an error.
var categoryOrdering = map[string]string{
	"popular": "-rating",
	"new":     "-released",
	"average": "-metacritic",
}

// SearchParams are the user-facing search inputs.
type SearchParams struct {
	Query    string
	Page     int
	Category string
}

// Values translates the search inputs into upstream query parameters.
// When both the query and the derived ordering are empty, descending-rating
// ordering is forced so a bare request returns a sensible "popular" list.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	v.Set("page_size", strconv.Itoa(pageSize))

	if p.Query != "" {
		v.Set("search", p.Query)
	}

	ordering := categoryOrdering[p.Category]
	if p.Query == "" && ordering == "" {
		ordering = "-rating"
	}
	if ordering != "" {
		v.Set("ordering", ordering)
	}

	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}

	return v
}

// Search queries the catalog.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	body, err := c.doRequest(ctx, "/games", params.Values())
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: parse search response: %v", ErrUpstream, err)
	}
	return &result, nil
}
