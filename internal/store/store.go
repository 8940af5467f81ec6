// Package store provides database access interfaces for console-local state:
// operator accounts, group permission grants, stored hub credentials and the
// audit trail of executed actions. Hub domain state (collections,
// repositories, tasks) is never persisted here; it always comes from the hub
// API.
package store

import (
	"context"
	"time"
)

// Operator is a console login account.
type Operator struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsSuperuser  bool      `json:"is_superuser"`
	Groups       []string  `json:"groups"`
	CreatedAt    time.Time `json:"created_at"`
}

// Grant assigns one hub permission codename to a console group.
type Grant struct {
	Group      string `json:"group"`
	Permission string `json:"permission"`
}

// AuditEntry records one executed mutating action.
type AuditEntry struct {
	ID        string    `json:"id"`
	Operator  string    `json:"operator"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	TaskHref  string    `json:"task_href,omitempty"`
	Succeeded bool      `json:"succeeded"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential is a named hub service credential, encrypted at rest.
type Credential struct {
	Name       string    `json:"name"`
	Ciphertext []byte    `json:"-"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OperatorStore defines operations for operator accounts.
type OperatorStore interface {
	// Create creates an operator with the given bcrypt password hash.
	Create(ctx context.Context, username, passwordHash string, superuser bool) (*Operator, error)
	// GetByUsername retrieves an operator, or nil when absent.
	GetByUsername(ctx context.Context, username string) (*Operator, error)
	// List retrieves all operators.
	List(ctx context.Context) ([]*Operator, error)
	// SetGroups replaces the operator's group memberships.
	SetGroups(ctx context.Context, username string, groups []string) error
	// Delete removes an operator.
	Delete(ctx context.Context, username string) error
	// Count returns the number of operators.
	Count(ctx context.Context) (int, error)
}

// GrantStore defines operations for group permission grants.
type GrantStore interface {
	// Add records a permission grant for a group.
	Add(ctx context.Context, group, permission string) error
	// Remove deletes a grant.
	Remove(ctx context.Context, group, permission string) error
	// PermissionsForGroups returns the union of permissions granted to the
	// given groups.
	PermissionsForGroups(ctx context.Context, groups []string) ([]string, error)
}

// AuditStore defines operations for the action audit trail.
type AuditStore interface {
	// Record appends an audit entry.
	Record(ctx context.Context, entry *AuditEntry) error
	// List retrieves the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]*AuditEntry, error)
}

// CredentialStore defines operations for encrypted hub credentials.
type CredentialStore interface {
	// Put stores or replaces a credential ciphertext.
	Put(ctx context.Context, name string, ciphertext []byte) error
	// Get retrieves a credential, or nil when absent.
	Get(ctx context.Context, name string) (*Credential, error)
	// Delete removes a credential.
	Delete(ctx context.Context, name string) error
}

// Store is the main interface for console database operations.
type Store interface {
	// Operators returns the OperatorStore.
	Operators() OperatorStore
	// Grants returns the GrantStore.
	Grants() GrantStore
	// Audit returns the AuditStore.
	Audit() AuditStore
	// Credentials returns the CredentialStore.
	Credentials() CredentialStore

	// Close closes the database connection.
	Close() error
}
