package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/galaxyops/hub-console/internal/store"
)

// CredentialStore implements store.CredentialStore using PostgreSQL.
// Ciphertexts are opaque to the store; encryption happens in the secrets
// package before the bytes arrive here.
type CredentialStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Put stores or replaces a credential ciphertext.
func (s *CredentialStore) Put(ctx context.Context, name string, ciphertext []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hub_credentials (name, ciphertext, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET ciphertext = $2, updated_at = $3
	`, name, ciphertext, time.Now())
	if err != nil {
		return err
	}

	s.logger.Debug("credential stored", "name", name)
	return nil
}

// Get retrieves a credential, or nil when absent.
func (s *CredentialStore) Get(ctx context.Context, name string) (*store.Credential, error) {
	var c store.Credential
	err := s.db.QueryRowContext(ctx, `
		SELECT name, ciphertext, updated_at FROM hub_credentials WHERE name = $1
	`, name).Scan(&c.Name, &c.Ciphertext, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a credential.
func (s *CredentialStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM hub_credentials WHERE name = $1`, name)
	return err
}
