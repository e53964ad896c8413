// Package token provides Valkey-backed bearer-token management for the API.
// Tokens are opaque random identifiers presented in the Authorization header
// and stored as JSON identity payloads in Valkey with automatic TTL expiry.
package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"practicehub/internal/models"
)

const (
	// DefaultTTL is how long a token lives in Valkey before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces token keys in Valkey to avoid collisions.
	keyPrefix = "token:"

	// idLength is the byte length of the random token (32 bytes = 64 hex chars).
	idLength = 32
)

// Identity holds the payload stored per token: the authenticated user's
// id, contact fields, and role.
type Identity struct {
	UserID      uuid.UUID   `json:"user_id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CanReview returns true for reviewers and admins.
func (i *Identity) CanReview() bool {
	return i.Role == models.RoleReviewer || i.Role == models.RoleAdmin
}

// IsAdmin returns true for admins.
func (i *Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Store manages token lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a token store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
	}
}

// Issue generates a new token and stores the identity payload in Valkey.
func (s *Store) Issue(ctx context.Context, id *Identity) (string, error) {
	tok, err := generateID()
	if err != nil {
		return "", fmt.Errorf("token issue: %w", err)
	}

	id.CreatedAt = time.Now()

	payload, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("token marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+tok, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("token store: %w", err)
	}

	return tok, nil
}

// Get retrieves the identity for a token. Returns nil if the token is
// unknown or expired (not an error).
func (s *Store) Get(ctx context.Context, tok string) (*Identity, error) {
	if tok == "" {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+tok).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("token get: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(payload, &id); err != nil {
		return nil, fmt.Errorf("token unmarshal: %w", err)
	}

	return &id, nil
}

// Revoke removes a token from Valkey. Revoking an unknown token is a no-op.
func (s *Store) Revoke(ctx context.Context, tok string) error {
	if tok == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+tok).Err(); err != nil {
		return fmt.Errorf("token revoke: %w", err)
	}
	return nil
}

// generateID produces a cryptographically random hex token.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
