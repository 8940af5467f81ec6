package hub

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Params carries list query parameters: offset/limit pagination, ordering and
// free-form filters that are passed through to the hub unchanged.
type Params struct {
	Offset  int
	Limit   int
	Sort    string
	Filters map[string]string
}

// Values encodes the params as a query string. The console's "sort" concept
// maps to the hub's "ordering" parameter.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		ordering := p.Sort
		if strings.HasPrefix(ordering, "+") {
			ordering = ordering[1:]
		}
		v.Set("ordering", ordering)
	}
	for key, val := range p.Filters {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v
}

// Page is one page of a paginated hub listing.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []T    `json:"results"`
}

// maxListPages caps getAll at 10 pages of 100 items.
const maxListPages = 10

// getAll fetches every page of a listing, capped at maxListPages to keep a
// misbehaving filter from walking an unbounded result set.
func getAll[T any](ctx context.Context, fetch func(context.Context, Params) (*Page[T], error), filters map[string]string) ([]T, error) {
	var all []T
	for page := 0; page < maxListPages; page++ {
		result, err := fetch(ctx, Params{
			Offset:  page * 100,
			Limit:   100,
			Filters: filters,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, result.Results...)
		if len(all) >= result.Count || len(result.Results) == 0 {
			break
		}
	}
	return all, nil
}
