package hub

import "context"

// Remote is a collection remote: the upstream source a repository syncs from.
type Remote struct {
	PulpHref         string `json:"pulp_href"`
	Name             string `json:"name"`
	URL              string `json:"url"`
	RequirementsFile string `json:"requirements_file,omitempty"`
	SignedOnly       bool   `json:"signed_only,omitempty"`
	SyncDependencies bool   `json:"sync_dependencies,omitempty"`
}

// CommunityGalaxyURL is the upstream community galaxy API. Syncing from it
// without a requirements file would pull the whole of galaxy, so the console
// refuses to start such a sync.
const CommunityGalaxyURL = "https://galaxy.ansible.com/api/"

const remotesPath = "/pulp/api/v3/remotes/ansible/collection/"

// ListRemotes fetches one page of collection remotes.
func (c *Client) ListRemotes(ctx context.Context, params Params) (*Page[Remote], error) {
	var page Page[Remote]
	if err := c.get(ctx, remotesPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetRemote fetches a single remote by pulp ID.
func (c *Client) GetRemote(ctx context.Context, id string) (*Remote, error) {
	var remote Remote
	if err := c.get(ctx, remotesPath+id+"/", nil, &remote); err != nil {
		return nil, err
	}
	return &remote, nil
}

// GetRemoteByHref fetches a remote by its full pulp href.
func (c *Client) GetRemoteByHref(ctx context.Context, href string) (*Remote, error) {
	return c.GetRemote(ctx, PulpIDFromHref(href))
}

// DeleteRemote deletes a remote; the hub answers with a task href.
func (c *Client) DeleteRemote(ctx context.Context, id string) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.delete(ctx, remotesPath+id+"/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
