package mocks

import (
	"context"

	"filevault/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockSessionValidator struct {
	mock.Mock
}

func (m *MockSessionValidator) Validate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
