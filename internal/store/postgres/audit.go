package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/galaxyops/hub-console/internal/store"
)

// AuditStore implements store.AuditStore using PostgreSQL.
type AuditStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Record appends an audit entry.
func (s *AuditStore) Record(ctx context.Context, entry *store.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, operator, action, subject, task_href, succeeded, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entry.ID, entry.Operator, entry.Action, entry.Subject,
		entry.TaskHref, entry.Succeeded, entry.Detail, entry.CreatedAt)
	if err != nil {
		return err
	}

	s.logger.Debug("audit entry recorded",
		"operator", entry.Operator,
		"action", entry.Action,
		"subject", entry.Subject)
	return nil
}

// List retrieves the most recent entries, newest first.
func (s *AuditStore) List(ctx context.Context, limit int) ([]*store.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operator, action, subject, task_href, succeeded, detail, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*store.AuditEntry
	for rows.Next() {
		var e store.AuditEntry
		if err := rows.Scan(&e.ID, &e.Operator, &e.Action, &e.Subject,
			&e.TaskHref, &e.Succeeded, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
