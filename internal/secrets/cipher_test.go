package secrets

import (
	"bytes"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	pub, priv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	c, err := NewCipher(&Config{AgePublicKey: pub, AgePrivateKey: priv}, nil)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	return c
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	c := newTestCipher(t)

	properties.Property("any credential survives the round trip", prop.ForAll(
		func(plaintext []byte) bool {
			ciphertext, err := c.Encrypt(plaintext)
			if err != nil {
				return false
			}
			decrypted, err := c.Decrypt(ciphertext)
			if err != nil {
				return false
			}
			return bytes.Equal(plaintext, decrypted)
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("ciphertext never contains the plaintext", prop.ForAll(
		func(token string) bool {
			ciphertext, err := c.Encrypt([]byte(token))
			if err != nil {
				return false
			}
			return !bytes.Contains(ciphertext, []byte(token))
		},
		gen.Identifier().SuchThat(func(s string) bool { return len(s) >= 8 }),
	))

	properties.TestingRun(t)
}

func TestEncryptOnlyCipher(t *testing.T) {
	pub, _, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	c, err := NewCipher(&Config{AgePublicKey: pub}, nil)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	if !c.CanEncrypt() || c.CanDecrypt() {
		t.Error("expected encrypt-only capability")
	}
	if _, err := c.Encrypt([]byte("token")); err != nil {
		t.Errorf("Encrypt: %v", err)
	}
	if _, err := c.Decrypt([]byte("anything")); !errors.Is(err, ErrNoPrivateKey) {
		t.Errorf("expected ErrNoPrivateKey, got %v", err)
	}
}

func TestDecryptOnlyCipher(t *testing.T) {
	_, priv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	c, err := NewCipher(&Config{AgePrivateKey: priv}, nil)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	if c.CanEncrypt() || !c.CanDecrypt() {
		t.Error("expected decrypt-only capability")
	}
	if _, err := c.Encrypt([]byte("token")); !errors.Is(err, ErrNoPublicKey) {
		t.Errorf("expected ErrNoPublicKey, got %v", err)
	}
}

func TestNewCipherRejectsInvalidKeys(t *testing.T) {
	cases := []Config{
		{},
		{AgePublicKey: "not-an-age-key"},
		{AgePrivateKey: "AGE-SECRET-KEY-GARBAGE"},
	}
	for _, cfg := range cases {
		if _, err := NewCipher(&cfg, nil); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("config %+v: expected ErrInvalidKey, got %v", cfg, err)
		}
	}
}

func TestDecryptRejectsForeignCiphertext(t *testing.T) {
	alice := newTestCipher(t)
	bob := newTestCipher(t)

	ciphertext, err := alice.Encrypt([]byte("hub-token"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := bob.Decrypt(ciphertext); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	c := newTestCipher(t)
	if _, err := c.Decrypt([]byte("definitely not age data")); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}
