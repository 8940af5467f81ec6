// Package auth provides operator authentication and permission resolution.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/galaxyops/hub-console/internal/store"
)

// Common errors returned by the auth service.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrMissingClaims      = errors.New("missing required claims")
	ErrInvalidSignature   = errors.New("invalid token signature")
)

// Claims represents the session claims carried in a JWT.
type Claims struct {
	Username string    `json:"username"`
	Exp      time.Time `json:"exp"`
}

// Session is a resolved operator session: the operator identity plus the
// permission codenames it holds, computed once at token validation.
type Session struct {
	Operator    *store.Operator
	Permissions map[string]bool
}

// HasPermission reports whether the session holds a permission codename.
// Superusers hold every permission.
func (s *Session) HasPermission(name string) bool {
	if s == nil || s.Operator == nil {
		return false
	}
	if s.Operator.IsSuperuser {
		return true
	}
	return s.Permissions[name]
}

// Config holds authentication configuration.
type Config struct {
	JWTSecret   []byte
	TokenExpiry time.Duration
}

// Service provides login, token issuance and session resolution.
type Service struct {
	jwtSecret   []byte
	tokenExpiry time.Duration
	store       store.Store
	logger      *slog.Logger
}

// NewService creates a new authentication service.
func NewService(cfg *Config, st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		jwtSecret:   cfg.JWTSecret,
		tokenExpiry: cfg.TokenExpiry,
		store:       st,
		logger:      logger,
	}
}

// Login verifies an operator's password and returns a signed session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	op, err := s.store.Operators().GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("looking up operator: %w", err)
	}
	if op == nil {
		// Burn a comparison anyway so absent and present usernames take
		// comparable time.
		bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000uGyGOMeRogueuNDmhCW0nSFUzCumbY7K"), []byte(password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("password verification failed", "username", username)
		return "", ErrInvalidCredentials
	}

	return s.GenerateToken(username)
}

// GenerateToken creates a new session JWT for the given operator.
func (s *Service) GenerateToken(username string) (string, error) {
	if username == "" {
		return "", ErrMissingClaims
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenExpiry).Unix(),
		"nbf": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("failed to sign token", "error", err)
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates a session JWT and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	username, ok := mapClaims["sub"].(string)
	if !ok || username == "" {
		return nil, ErrMissingClaims
	}
	expFloat, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, ErrMissingClaims
	}

	return &Claims{
		Username: username,
		Exp:      time.Unix(int64(expFloat), 0),
	}, nil
}

// ResolveSession loads the operator behind a validated token and computes its
// permission set from group grants.
func (s *Service) ResolveSession(ctx context.Context, claims *Claims) (*Session, error) {
	op, err := s.store.Operators().GetByUsername(ctx, claims.Username)
	if err != nil {
		return nil, fmt.Errorf("looking up operator: %w", err)
	}
	if op == nil {
		return nil, ErrInvalidToken
	}

	sess := &Session{Operator: op, Permissions: map[string]bool{}}
	if op.IsSuperuser {
		return sess, nil
	}

	perms, err := s.store.Grants().PermissionsForGroups(ctx, op.Groups)
	if err != nil {
		return nil, fmt.Errorf("resolving permissions: %w", err)
	}
	for _, p := range perms {
		sess.Permissions[p] = true
	}
	return sess, nil
}

// HashPassword produces a bcrypt hash suitable for operator storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// ExtractBearerToken extracts the token from a Bearer authorization header.
func ExtractBearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
