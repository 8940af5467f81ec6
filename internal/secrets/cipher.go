// Package secrets encrypts hub service credentials at rest using age
// encryption. The console only ever stores ciphertext; the plaintext token is
// reconstructed in memory when a hub client needs it.
package secrets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"filippo.io/age"
)

var (
	// ErrNoPublicKey is returned when no public key is configured for encryption.
	ErrNoPublicKey = errors.New("no public key configured for encryption")
	// ErrNoPrivateKey is returned when no private key is configured for decryption.
	ErrNoPrivateKey = errors.New("no private key configured for decryption")
	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrEncryptionFailed is returned when encryption fails.
	ErrEncryptionFailed = errors.New("encryption failed")
	// ErrInvalidKey is returned when a key is invalid.
	ErrInvalidKey = errors.New("invalid key format")
)

// Cipher provides age encryption and decryption for stored credentials.
type Cipher struct {
	publicKey  *age.X25519Recipient
	privateKey *age.X25519Identity
	logger     *slog.Logger
}

// Config holds the key material for the credential cipher.
type Config struct {
	// AgePublicKey is the age public key for encryption.
	// Format: age1... (Bech32 encoded)
	AgePublicKey string
	// AgePrivateKey is the age private key for decryption.
	// Format: AGE-SECRET-KEY-1... (Bech32 encoded)
	AgePrivateKey string
}

// NewCipher creates a credential cipher. At least one of public key (for
// encryption) or private key (for decryption) must be provided.
func NewCipher(cfg *Config, logger *slog.Logger) (*Cipher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cipher{logger: logger}

	if cfg.AgePublicKey != "" {
		recipient, err := age.ParseX25519Recipient(cfg.AgePublicKey)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid public key: %v", ErrInvalidKey, err)
		}
		c.publicKey = recipient
	}

	if cfg.AgePrivateKey != "" {
		identity, err := age.ParseX25519Identity(cfg.AgePrivateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid private key: %v", ErrInvalidKey, err)
		}
		c.privateKey = identity
	}

	if c.publicKey == nil && c.privateKey == nil {
		return nil, ErrInvalidKey
	}

	return c, nil
}

// Encrypt encrypts a credential with the configured public key.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	if c.publicKey == nil {
		return nil, ErrNoPublicKey
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, c.publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	return buf.Bytes(), nil
}

// Decrypt decrypts a stored credential with the configured private key.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	if c.privateKey == nil {
		return nil, ErrNoPrivateKey
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), c.privateKey)
	if err != nil {
		c.logger.Error("failed to open age decryptor", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// CanEncrypt returns true if a public key is configured.
func (c *Cipher) CanEncrypt() bool { return c.publicKey != nil }

// CanDecrypt returns true if a private key is configured.
func (c *Cipher) CanDecrypt() bool { return c.privateKey != nil }

// GenerateKeyPair generates a new age key pair.
func GenerateKeyPair() (publicKey, privateKey string, err error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate age key pair: %w", err)
	}
	return identity.Recipient().String(), identity.String(), nil
}
