package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) PresignUpload(ctx context.Context, key, contentType string, contentLength int64) (string, error) {
	args := m.Called(ctx, key, contentType, contentLength)
	if f, ok := args.Get(0).(func(context.Context, string, string, int64) string); ok {
		return f(ctx, key, contentType, contentLength), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

func (m *MockGateway) PresignDownload(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockGateway) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
