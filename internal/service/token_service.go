package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/passkeep/passkeep-server/internal/logger"
	"github.com/passkeep/passkeep-server/internal/model"
)

// TokenService issues, resolves and revokes bearer tokens. A user has a
// single active session: issuing a token revokes every token issued to
// that user before it.
type TokenService struct {
	manager model.TokenManager
	store   model.SessionTokenStore
	ttl     time.Duration
	logger  *logger.Logger
}

// NewTokenService creates a TokenService. ttl must match the lifetime
// the manager embeds in its tokens; it is used for the persisted row.
func NewTokenService(manager model.TokenManager, store model.SessionTokenStore, ttl time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, ttl: ttl, logger: logger}
}

// Issue generates a fresh token for userID and persists it, revoking
// all previously issued tokens of the same user in the same
// transaction.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, jti, err := s.manager.Generate(userID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	now := time.Now()
	st := model.SessionToken{
		ID:        uuid.New(),
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashToken(token),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		RevokedAt: nil,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Replace(ctx, st); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	return token, nil
}

// Resolve maps a presented bearer token to the owning user ID. Unknown,
// revoked, expired and tampered tokens all fail.
func (s *TokenService) Resolve(ctx context.Context, presented string) (uuid.UUID, error) {
	userID, jti, err := s.manager.Parse(presented)
	if err != nil {
		return uuid.Nil, err
	}

	st, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		return uuid.Nil, err
	}

	if err := validateRecord(st, hashToken(presented), time.Now()); err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

// Revoke invalidates the presented token. Revoking an already revoked
// token is a no-op.
func (s *TokenService) Revoke(ctx context.Context, presented string) error {
	_, jti, err := s.manager.Parse(presented)
	if err != nil {
		return err
	}
	return s.store.RevokeByJTI(ctx, jti)
}

// RevokeAllForUser invalidates every live token of userID.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(st model.SessionToken, presentedHash []byte, now time.Time) error {
	if st.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(st.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if !equalBytes(st.TokenHash, presentedHash) {
		return model.ErrTokenMismatch
	}
	return nil
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
