package postgres

import (
	"context"
	"database/sql"
	"log/slog"
)

// GrantStore implements store.GrantStore using PostgreSQL.
type GrantStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Add records a permission grant for a group.
func (s *GrantStore) Add(ctx context.Context, group, permission string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grants (group_name, permission) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		group, permission)
	return err
}

// Remove deletes a grant.
func (s *GrantStore) Remove(ctx context.Context, group, permission string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM grants WHERE group_name = $1 AND permission = $2`,
		group, permission)
	return err
}

// PermissionsForGroups returns the union of permissions granted to the given
// groups.
func (s *GrantStore) PermissionsForGroups(ctx context.Context, groups []string) ([]string, error) {
	if len(groups) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT permission FROM grants WHERE group_name = ANY($1) ORDER BY permission`,
		groups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}
