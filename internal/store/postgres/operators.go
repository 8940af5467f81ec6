package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/galaxyops/hub-console/internal/store"
)

// OperatorStore implements store.OperatorStore using PostgreSQL.
type OperatorStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Create creates an operator with the given bcrypt password hash.
func (s *OperatorStore) Create(ctx context.Context, username, passwordHash string, superuser bool) (*store.Operator, error) {
	op := &store.Operator{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		IsSuperuser:  superuser,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
		INSERT INTO operators (id, username, password_hash, is_superuser, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, query, op.ID, op.Username, op.PasswordHash, op.IsSuperuser, op.CreatedAt); err != nil {
		return nil, err
	}
	return op, nil
}

// GetByUsername retrieves an operator with group memberships, or nil.
func (s *OperatorStore) GetByUsername(ctx context.Context, username string) (*store.Operator, error) {
	query := `SELECT id, username, password_hash, is_superuser, created_at FROM operators WHERE username = $1`

	var op store.Operator
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&op.ID, &op.Username, &op.PasswordHash, &op.IsSuperuser, &op.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	groups, err := s.groupsFor(ctx, username)
	if err != nil {
		return nil, err
	}
	op.Groups = groups
	return &op, nil
}

// List retrieves all operators, without group memberships.
func (s *OperatorStore) List(ctx context.Context) ([]*store.Operator, error) {
	query := `SELECT id, username, password_hash, is_superuser, created_at FROM operators ORDER BY username`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ops []*store.Operator
	for rows.Next() {
		var op store.Operator
		if err := rows.Scan(&op.ID, &op.Username, &op.PasswordHash, &op.IsSuperuser, &op.CreatedAt); err != nil {
			return nil, err
		}
		ops = append(ops, &op)
	}
	return ops, rows.Err()
}

// SetGroups replaces the operator's group memberships.
func (s *OperatorStore) SetGroups(ctx context.Context, username string, groups []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM operator_groups WHERE username = $1`, username); err != nil {
		return err
	}
	for _, group := range groups {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO operator_groups (username, group_name) VALUES ($1, $2)`, username, group); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes an operator.
func (s *OperatorStore) Delete(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM operators WHERE username = $1`, username)
	return err
}

// Count returns the number of operators.
func (s *OperatorStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operators`).Scan(&n)
	return n, err
}

func (s *OperatorStore) groupsFor(ctx context.Context, username string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_name FROM operator_groups WHERE username = $1 ORDER BY group_name`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
