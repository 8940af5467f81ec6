package handlers

import (
	"net/http"
	"strconv"

	"github.com/galaxyops/hub-console/internal/hub"
)

// reservedQueryKeys are pagination and ordering keys; everything else in the
// query string passes through to the hub as a filter.
var reservedQueryKeys = map[string]bool{
	"offset": true,
	"limit":  true,
	"sort":   true,
}

// listParams maps the request query string onto hub list parameters.
func listParams(r *http.Request) hub.Params {
	q := r.URL.Query()

	params := hub.Params{Sort: q.Get("sort")}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		params.Offset = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		params.Limit = v
	}

	for key, values := range q {
		if reservedQueryKeys[key] || len(values) == 0 || values[0] == "" {
			continue
		}
		if params.Filters == nil {
			params.Filters = map[string]string{}
		}
		params.Filters[key] = values[0]
	}
	return params
}
