package hub

import (
	"context"
)

// Repository is an ansible repository on the hub.
type Repository struct {
	PulpHref     string            `json:"pulp_href"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Remote       string            `json:"remote,omitempty"`
	LatestVersionHref string       `json:"latest_version_href,omitempty"`
	PulpLabels   map[string]string `json:"pulp_labels,omitempty"`
	// LastSyncTask is filled in on detail reads; a waiting or running state
	// here blocks a new sync.
	LastSyncTask *Task `json:"last_sync_task,omitempty"`
	// RemoteDetail is resolved by the console when the remote href is set.
	RemoteDetail *Remote `json:"-"`
}

// RepositoryVersion is one version of a repository's content set.
type RepositoryVersion struct {
	PulpHref string `json:"pulp_href"`
	Number   int    `json:"number"`
}

// SyncOptions controls a repository sync run.
type SyncOptions struct {
	// Mirror removes local content missing from the remote instead of only
	// adding missing content.
	Mirror bool `json:"mirror"`
	// Optimize skips the sync when the remote reports no changes.
	Optimize bool `json:"optimize"`
}

const repositoriesPath = "/pulp/api/v3/repositories/ansible/ansible/"

// ListRepositories fetches one page of repositories.
func (c *Client) ListRepositories(ctx context.Context, params Params) (*Page[Repository], error) {
	var page Page[Repository]
	if err := c.get(ctx, repositoriesPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAllRepositories fetches repositories across pages, filtered.
func (c *Client) ListAllRepositories(ctx context.Context, filters map[string]string) ([]Repository, error) {
	return getAll(ctx, c.ListRepositories, filters)
}

// GetRepository fetches a single repository by pulp ID.
func (c *Client) GetRepository(ctx context.Context, id string) (*Repository, error) {
	var repo Repository
	if err := c.get(ctx, repositoriesPath+id+"/", nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// DeleteRepository deletes a repository; the hub answers with a task href.
func (c *Client) DeleteRepository(ctx context.Context, id string) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.delete(ctx, repositoriesPath+id+"/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncRepository starts a sync against the repository's remote.
func (c *Client) SyncRepository(ctx context.Context, id string, opts SyncOptions) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.post(ctx, repositoriesPath+id+"/sync/", opts, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RevertRepository resets the repository content to a previous version.
func (c *Client) RevertRepository(ctx context.Context, id, versionHref string) (*TaskResponse, error) {
	var resp TaskResponse
	body := map[string]string{"base_version": versionHref}
	if err := c.post(ctx, repositoriesPath+id+"/modify/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddRepositoryContent adds collection versions to the repository.
func (c *Client) AddRepositoryContent(ctx context.Context, id string, versionHrefs []string) (*TaskResponse, error) {
	var resp TaskResponse
	body := map[string][]string{"add_content_units": versionHrefs}
	if err := c.post(ctx, repositoriesPath+id+"/modify/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveRepositoryContent removes a collection version from the repository.
func (c *Client) RemoveRepositoryContent(ctx context.Context, id, versionHref string) (*TaskResponse, error) {
	var resp TaskResponse
	body := map[string][]string{"remove_content_units": {versionHref}}
	if err := c.post(ctx, repositoriesPath+id+"/modify/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRepositoryVersions fetches one page of the repository's versions.
func (c *Client) ListRepositoryVersions(ctx context.Context, id string, params Params) (*Page[RepositoryVersion], error) {
	var page Page[RepositoryVersion]
	if err := c.get(ctx, repositoriesPath+id+"/versions/", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CopyRequest moves or copies collection versions between repositories.
type CopyRequest struct {
	CollectionVersions      []string `json:"collection_versions"`
	DestinationRepositories []string `json:"destination_repositories"`
	SigningService          string   `json:"signing_service,omitempty"`
}

// CopyCollectionVersions copies collection versions into destination
// repositories, leaving the source intact.
func (c *Client) CopyCollectionVersions(ctx context.Context, id string, req CopyRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.post(ctx, repositoriesPath+id+"/copy_collection_version/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
