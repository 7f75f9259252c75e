package service

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/passkeep/passkeep-server/internal/logger"
	servermocks "github.com/passkeep/passkeep-server/internal/mocks"
	"github.com/passkeep/passkeep-server/internal/model"
	"github.com/passkeep/passkeep-server/internal/testutil"
)

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Generate", userID).Return("token-1", "jti-1", nil).Once()
	store.On("Replace", ctx, mock.MatchedBy(func(st model.SessionToken) bool {
		h := sha256.Sum256([]byte("token-1"))
		return st.JTI == "jti-1" && st.UserID == userID && string(st.TokenHash) == string(h[:])
	})).Return(nil).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	token, err := svc.Issue(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	manager.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestTokenService_Issue_ManagerError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Generate", userID).Return("", "", assert.AnError).Once()

	svc := NewTokenService(manager, store, time.Hour, logger.New(0))

	_, err := svc.Issue(ctx, userID)
	require.Error(t, err)
	store.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestTokenService_Issue_StoreError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Generate", userID).Return("token-1", "jti-1", nil).Once()
	store.On("Replace", ctx, mock.Anything).Return(assert.AnError).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Issue(ctx, userID)
	require.Error(t, err)
}

func TestTokenService_Resolve_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	presented := "token-1"
	h := sha256.Sum256([]byte(presented))

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Parse", presented).Return(userID, "jti-1", nil).Once()
	store.On("GetByJTI", ctx, "jti-1").Return(model.SessionToken{
		JTI:       "jti-1",
		UserID:    userID,
		TokenHash: h[:],
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	got, err := svc.Resolve(ctx, presented)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenService_Resolve_Revoked(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	presented := "token-1"
	h := sha256.Sum256([]byte(presented))
	revokedAt := time.Now().Add(-time.Minute)

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Parse", presented).Return(userID, "jti-1", nil).Once()
	store.On("GetByJTI", ctx, "jti-1").Return(model.SessionToken{
		JTI:       "jti-1",
		UserID:    userID,
		TokenHash: h[:],
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}, nil).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Resolve(ctx, presented)
	require.ErrorIs(t, err, model.ErrTokenRevoked)
}

func TestTokenService_Resolve_Expired(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	presented := "token-1"
	h := sha256.Sum256([]byte(presented))

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Parse", presented).Return(userID, "jti-1", nil).Once()
	store.On("GetByJTI", ctx, "jti-1").Return(model.SessionToken{
		JTI:       "jti-1",
		UserID:    userID,
		TokenHash: h[:],
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Resolve(ctx, presented)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestTokenService_Resolve_HashMismatch(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	other := sha256.Sum256([]byte("some-other-token"))

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Parse", "token-1").Return(userID, "jti-1", nil).Once()
	store.On("GetByJTI", ctx, "jti-1").Return(model.SessionToken{
		JTI:       "jti-1",
		UserID:    userID,
		TokenHash: other[:],
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Resolve(ctx, "token-1")
	require.ErrorIs(t, err, model.ErrTokenMismatch)
}

func TestTokenService_Resolve_UnknownJTI(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Parse", "token-1").Return(userID, "jti-1", nil).Once()
	store.On("GetByJTI", ctx, "jti-1").Return(model.SessionToken{}, model.ErrNotFound).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Resolve(ctx, "token-1")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTokenService_Revoke(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Parse", "token-1").Return(userID, "jti-1", nil).Once()
	store.On("RevokeByJTI", ctx, "jti-1").Return(nil).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	require.NoError(t, svc.Revoke(ctx, "token-1"))
	store.AssertExpectations(t)
}

func TestTokenService_Revoke_ParseError(t *testing.T) {
	ctx := context.Background()

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	manager.On("Parse", "garbage").Return(uuid.Nil, "", assert.AnError).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	require.Error(t, svc.Revoke(ctx, "garbage"))
	store.AssertNotCalled(t, "RevokeByJTI", mock.Anything, mock.Anything)
}

func TestTokenService_RevokeAllForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := &servermocks.TokenManager{}
	store := &servermocks.SessionTokenStore{}

	store.On("RevokeAllByUser", ctx, userID).Return(nil).Once()

	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())

	require.NoError(t, svc.RevokeAllForUser(ctx, userID))
	store.AssertExpectations(t)
}
