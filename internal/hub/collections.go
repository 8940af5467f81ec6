package hub

import (
	"context"
	"fmt"
)

// CollectionVersion identifies one published version of a collection.
type CollectionVersion struct {
	PulpHref    string `json:"pulp_href"`
	Namespace   string `json:"namespace"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// RepositoryRef is the repository portion of a collection search result.
type RepositoryRef struct {
	PulpHref string `json:"pulp_href"`
	Name     string `json:"name"`
}

// CollectionVersionSearch is one row of the cross-repository collection
// version search.
type CollectionVersionSearch struct {
	CollectionVersion CollectionVersion `json:"collection_version"`
	Repository        RepositoryRef     `json:"repository"`
	IsDeprecated      bool              `json:"is_deprecated"`
	IsSigned          bool              `json:"is_signed"`
	IsHighest         bool              `json:"is_highest"`
}

// Spec returns the "namespace.name v1.2.3" display form.
func (s CollectionVersionSearch) Spec() string {
	cv := s.CollectionVersion
	return fmt.Sprintf("%s.%s v%s", cv.Namespace, cv.Name, cv.Version)
}

const collectionSearchPath = "/v3/plugin/ansible/search/collection-versions/"

// SearchCollectionVersions searches collection versions across repositories.
func (c *Client) SearchCollectionVersions(ctx context.Context, params Params) (*Page[CollectionVersionSearch], error) {
	var page struct {
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
		Data []CollectionVersionSearch `json:"data"`
	}
	if err := c.get(ctx, collectionSearchPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &Page[CollectionVersionSearch]{Count: page.Meta.Count, Results: page.Data}, nil
}

// MoveCollectionVersion moves a collection version between repositories via
// the v3 collections API (used by the approval pipeline).
func (c *Client) MoveCollectionVersion(ctx context.Context, namespace, name, version, fromRepo, toRepo string) (*CollectionMoveResponse, error) {
	path := fmt.Sprintf("/v3/collections/%s/%s/versions/%s/move/%s/%s/",
		namespace, name, version, fromRepo, toRepo)
	var resp CollectionMoveResponse
	if err := c.post(ctx, path, map[string]any{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CollectionMoveResponse is the task fan-out returned by collection
// move/copy endpoints.
type CollectionMoveResponse struct {
	AddTaskID    string `json:"add_task_id,omitempty"`
	RemoveTaskID string `json:"remove_task_id,omitempty"`
	CopyTaskID   string `json:"copy_task_id,omitempty"`
}

// DeleteCollection deletes a whole collection from a repository; the hub
// answers with a task href.
func (c *Client) DeleteCollection(ctx context.Context, repository, namespace, name string) (*TaskResponse, error) {
	path := fmt.Sprintf("/v3/plugin/ansible/content/%s/collections/index/%s/%s/",
		repository, namespace, name)
	var resp TaskResponse
	if err := c.delete(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCollectionVersion deletes one version of a collection.
func (c *Client) DeleteCollectionVersion(ctx context.Context, repository, namespace, name, version string) (*TaskResponse, error) {
	path := fmt.Sprintf("/v3/plugin/ansible/content/%s/collections/index/%s/%s/versions/%s/",
		repository, namespace, name, version)
	var resp TaskResponse
	if err := c.delete(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetCollectionDeprecation marks a collection deprecated or restored; the hub
// answers with a task href.
func (c *Client) SetCollectionDeprecation(ctx context.Context, repository, namespace, name string, deprecated bool) (*TaskResponse, error) {
	path := fmt.Sprintf("/v3/plugin/ansible/content/%s/collections/index/%s/%s/",
		repository, namespace, name)
	var resp TaskResponse
	if err := c.patch(ctx, path, map[string]bool{"deprecated": deprecated}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignRequest asks the configured signing service to sign content in a
// repository. Leaving ContentUnits empty signs everything.
type SignRequest struct {
	SigningService string   `json:"signing_service"`
	Repository     string   `json:"distro_base_path"`
	Namespace      string   `json:"namespace,omitempty"`
	Collection     string   `json:"collection,omitempty"`
	Version        string   `json:"version,omitempty"`
	ContentUnits   []string `json:"content_units,omitempty"`
}

// SignCollections starts a signing run; the hub answers with a task href.
func (c *Client) SignCollections(ctx context.Context, req SignRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.post(ctx, "/_ui/v1/collection_signing/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
