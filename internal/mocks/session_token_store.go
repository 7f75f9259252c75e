package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/passkeep/passkeep-server/internal/model"
)

// SessionTokenStore is a mock implementation of model.SessionTokenStore.
type SessionTokenStore struct {
	mock.Mock
}

func (m *SessionTokenStore) Replace(ctx context.Context, token model.SessionToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *SessionTokenStore) GetByJTI(ctx context.Context, jti string) (model.SessionToken, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.SessionToken), args.Error(1)
}

func (m *SessionTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *SessionTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
