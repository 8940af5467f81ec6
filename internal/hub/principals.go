package hub

import (
	"context"
	"fmt"
)

// User is a hub user account.
type User struct {
	ID          int     `json:"id"`
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name,omitempty"`
	LastName    string  `json:"last_name,omitempty"`
	Email       string  `json:"email,omitempty"`
	IsSuperuser bool    `json:"is_superuser"`
	Groups      []Group `json:"groups,omitempty"`
}

// Group is a hub group.
type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RoleDefinition is a named bundle of hub permissions.
type RoleDefinition struct {
	PulpHref    string   `json:"pulp_href"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
	Locked      bool     `json:"locked"`
}

const (
	usersPath  = "/_ui/v1/users/"
	groupsPath = "/_ui/v1/groups/"
	rolesPath  = "/pulp/api/v3/roles/"
)

// ListUsers fetches one page of hub users.
func (c *Client) ListUsers(ctx context.Context, params Params) (*Page[User], error) {
	var page Page[User]
	if err := c.get(ctx, usersPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteUser deletes a hub user synchronously.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("%s%d/", usersPath, id), nil)
}

// ListGroups fetches one page of hub groups.
func (c *Client) ListGroups(ctx context.Context, params Params) (*Page[Group], error) {
	var page Page[Group]
	if err := c.get(ctx, groupsPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteGroup deletes a hub group synchronously.
func (c *Client) DeleteGroup(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("%s%d/", groupsPath, id), nil)
}

// ListRoles fetches one page of role definitions.
func (c *Client) ListRoles(ctx context.Context, params Params) (*Page[RoleDefinition], error) {
	var page Page[RoleDefinition]
	if err := c.get(ctx, rolesPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
