package mocks

import (
	"context"

	"filevault/internal/model"
	"filevault/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) CreateUploadIntent(ctx context.Context, ownerID, filename, contentType string, contentLength int64) (*service.UploadIntent, error) {
	args := m.Called(ctx, ownerID, filename, contentType, contentLength)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadIntent), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, ownerID, search string) ([]model.File, error) {
	args := m.Called(ctx, ownerID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileService) IssueDownload(ctx context.Context, ownerID, fileID string) (*service.DownloadTicket, error) {
	args := m.Called(ctx, ownerID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadTicket), args.Error(1)
}

func (m *MockFileService) Rename(ctx context.Context, ownerID, fileID, newName string) (*model.File, error) {
	args := m.Called(ctx, ownerID, fileID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, ownerID, fileID string) error {
	args := m.Called(ctx, ownerID, fileID)
	return args.Error(0)
}
