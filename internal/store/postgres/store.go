// Package postgres provides the PostgreSQL implementation of the console
// store interfaces.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/galaxyops/hub-console/internal/store"
)

// PostgresStore implements store.Store using PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger

	operators   *OperatorStore
	grants      *GrantStore
	audit       *AuditStore
	credentials *CredentialStore
}

// Config holds PostgreSQL connection configuration.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(dsn string) *Config {
	return &Config{
		DSN:             dsn,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// NewPostgresStore creates a new PostgreSQL store with the given
// configuration and applies the console schema.
func NewPostgresStore(cfg *Config, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	s := &PostgresStore{
		db:          db,
		logger:      logger,
		operators:   &OperatorStore{db: db, logger: logger},
		grants:      &GrantStore{db: db, logger: logger},
		audit:       &AuditStore{db: db, logger: logger},
		credentials: &CredentialStore{db: db, logger: logger},
	}

	logger.Info("connected to PostgreSQL database")
	return s, nil
}

// Operators returns the OperatorStore.
func (s *PostgresStore) Operators() store.OperatorStore { return s.operators }

// Grants returns the GrantStore.
func (s *PostgresStore) Grants() store.GrantStore { return s.grants }

// Audit returns the AuditStore.
func (s *PostgresStore) Audit() store.AuditStore { return s.audit }

// Credentials returns the CredentialStore.
func (s *PostgresStore) Credentials() store.CredentialStore { return s.credentials }

// Close closes the database connection.
func (s *PostgresStore) Close() error { return s.db.Close() }

// migrate applies the console schema. The tables are small and append-mostly;
// plain CREATE IF NOT EXISTS keeps bootstrap dependency-free.
func migrate(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS operators (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS operator_groups (
			username TEXT NOT NULL REFERENCES operators(username) ON DELETE CASCADE,
			group_name TEXT NOT NULL,
			PRIMARY KEY (username, group_name)
		)`,
		`CREATE TABLE IF NOT EXISTS grants (
			group_name TEXT NOT NULL,
			permission TEXT NOT NULL,
			PRIMARY KEY (group_name, permission)
		)`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id TEXT PRIMARY KEY,
			operator TEXT NOT NULL,
			action TEXT NOT NULL,
			subject TEXT NOT NULL,
			task_href TEXT NOT NULL DEFAULT '',
			succeeded BOOLEAN NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS audit_log_created_at_idx ON audit_log (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS hub_credentials (
			name TEXT PRIMARY KEY,
			ciphertext BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
