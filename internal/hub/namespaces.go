package hub

import (
	"context"
	"fmt"
)

// Namespace is a collection namespace on the hub.
type Namespace struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ExecutionEnvironment is a container repository served by the hub registry.
type ExecutionEnvironment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Pulp hub container distributions carry the base path the EE is pulled
	// from.
	PulpHref string `json:"pulp_href,omitempty"`
}

const (
	namespacesPath = "/v3/namespaces/"
	eePath         = "/_ui/v1/execution-environments/repositories/"
)

// ListNamespaces fetches one page of namespaces.
func (c *Client) ListNamespaces(ctx context.Context, params Params) (*Page[Namespace], error) {
	var page Page[Namespace]
	if err := c.get(ctx, namespacesPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteNamespace deletes a namespace; the hub answers with a task href.
func (c *Client) DeleteNamespace(ctx context.Context, name string) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.delete(ctx, namespacesPath+name+"/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListExecutionEnvironments fetches one page of execution environments.
func (c *Client) ListExecutionEnvironments(ctx context.Context, params Params) (*Page[ExecutionEnvironment], error) {
	var page Page[ExecutionEnvironment]
	if err := c.get(ctx, eePath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteExecutionEnvironment deletes an execution environment; the hub
// answers with a task href.
func (c *Client) DeleteExecutionEnvironment(ctx context.Context, name string) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.delete(ctx, eePath+name+"/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncExecutionEnvironment starts a registry sync of the execution
// environment from its upstream registry.
func (c *Client) SyncExecutionEnvironment(ctx context.Context, name string) (*TaskResponse, error) {
	var resp TaskResponse
	path := fmt.Sprintf("/_ui/v1/execution-environments/registries/%s/sync/", name)
	if err := c.post(ctx, path, map[string]any{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
