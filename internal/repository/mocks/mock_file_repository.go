package mocks

import (
	"context"
	"time"

	"filevault/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, f *model.File) (*model.File, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.File, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) ListByOwner(ctx context.Context, ownerID, search string) ([]model.File, error) {
	args := m.Called(ctx, ownerID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileRepository) UpdateName(ctx context.Context, id, ownerID, name string, updatedAt time.Time) error {
	args := m.Called(ctx, id, ownerID, name, updatedAt)
	return args.Error(0)
}

func (m *MockFileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
