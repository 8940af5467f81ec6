package hub

import (
	"context"
	"errors"
)

// ErrNoDistribution is returned when no distribution serves a repository.
var ErrNoDistribution = errors.New("no distribution serves the repository")

// Well-known approval pipeline labels.
const (
	PipelineStaging  = "staging"
	PipelineApproved = "approved"
	PipelineRejected = "rejected"
)

// ListPipelineRepositories fetches every repository labeled with the given
// pipeline stage.
func (c *Client) ListPipelineRepositories(ctx context.Context, pipeline string) ([]Repository, error) {
	return c.ListAllRepositories(ctx, map[string]string{
		"pulp_label_select": "pipeline=" + pipeline,
	})
}

// Distribution is the serving path for a repository.
type Distribution struct {
	PulpHref   string `json:"pulp_href"`
	Name       string `json:"name"`
	BasePath   string `json:"base_path"`
	Repository string `json:"repository,omitempty"`
}

const distributionsPath = "/pulp/api/v3/distributions/ansible/ansible/"

// ListDistributions fetches one page of distributions.
func (c *Client) ListDistributions(ctx context.Context, params Params) (*Page[Distribution], error) {
	var page Page[Distribution]
	if err := c.get(ctx, distributionsPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DistributionForRepository finds the distribution serving the named
// repository.
func (c *Client) DistributionForRepository(ctx context.Context, name string) (*Distribution, error) {
	page, err := c.ListDistributions(ctx, Params{Filters: map[string]string{"name": name}})
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, ErrNoDistribution
	}
	return &page.Results[0], nil
}
