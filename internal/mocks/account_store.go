package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/passkeep/passkeep-server/internal/model"
)

// AccountStore is a mock implementation of model.AccountStore.
type AccountStore struct {
	mock.Mock
}

func (m *AccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) List(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *AccountStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *AccountStore) Update(ctx context.Context, id uuid.UUID, update model.AccountUpdate) (model.Account, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	args := m.Called(ctx, id, password)
	return args.Error(0)
}

func (m *AccountStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
