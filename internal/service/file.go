package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"filevault/internal/model"
	"filevault/internal/repository"
	"filevault/internal/storage"
)

// MaxUploadBytes caps the declared size of a single upload (100 MiB).
const MaxUploadBytes = 100 << 20

var (
	ErrIDRequired   = errors.New("file id is required")
	ErrNameRequired = errors.New("name is required")
	ErrNotFound     = errors.New("file not found")
	ErrFileTooLarge = fmt.Errorf("file too large: maximum size is %dMB", MaxUploadBytes>>20)
)

// UploadIntent is returned when a client asks to upload a file. The metadata
// row already exists when this is returned; the bytes arrive later (or never)
// via the client's direct PUT to UploadURL. There is no confirmation step, so
// a row is a promise of an upload, not proof of one.
type UploadIntent struct {
	FileID    string `json:"fileId"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

// DownloadTicket is a time-boxed download URL plus the display name the
// client should save the file as.
type DownloadTicket struct {
	URL      string `json:"downloadUrl"`
	Filename string `json:"filename"`
}

// FileService mediates between clients, the metadata repository, and the
// object store gateway. Every operation on an existing file starts with an
// ownership-scoped lookup; a file owned by someone else is indistinguishable
// from a file that does not exist.
type FileService interface {
	// CreateUploadIntent validates the declared size, derives a storage key,
	// issues a presigned upload URL, and inserts the metadata row.
	CreateUploadIntent(ctx context.Context, ownerID, filename, contentType string, contentLength int64) (*UploadIntent, error)

	// List returns the owner's files newest first. A non-empty search term
	// filters by substring match on the display name.
	List(ctx context.Context, ownerID, search string) ([]model.File, error)

	// IssueDownload returns a presigned download URL for an owned file.
	IssueDownload(ctx context.Context, ownerID, fileID string) (*DownloadTicket, error)

	// Rename updates the display name of an owned file. The storage key never
	// changes on rename.
	Rename(ctx context.Context, ownerID, fileID, newName string) (*model.File, error)

	// Delete removes the object-store bytes (best effort) and then the
	// metadata row (authoritative).
	Delete(ctx context.Context, ownerID, fileID string) error
}

type fileService struct {
	gateway storage.Gateway
	repo    repository.FileRepository
}

// NewFileService constructs a new FileService.
func NewFileService(gateway storage.Gateway, repo repository.FileRepository) FileService {
	return &fileService{gateway: gateway, repo: repo}
}

func (s *fileService) CreateUploadIntent(ctx context.Context, ownerID, filename, contentType string, contentLength int64) (*UploadIntent, error) {
	if filename == "" {
		return nil, ErrNameRequired
	}
	if contentLength > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	key := storage.DeriveKey(ownerID, filename)

	uploadURL, err := s.gateway.PresignUpload(ctx, key, contentType, contentLength)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	// The row is inserted before any bytes exist in the object store. Size and
	// mime type are the client's declaration and are never verified against
	// what actually lands in the bucket.
	now := time.Now().UTC()
	f := &model.File{
		ID:         uuid.New().String(),
		UserID:     ownerID,
		Name:       filename,
		StorageKey: key,
		Size:       contentLength,
		MimeType:   contentType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	stored, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("save metadata: %w", err)
	}

	return &UploadIntent{
		FileID:    stored.ID,
		UploadURL: uploadURL,
		PublicURL: s.gateway.PublicURL(key),
	}, nil
}

func (s *fileService) List(ctx context.Context, ownerID, search string) ([]model.File, error) {
	return s.repo.ListByOwner(ctx, ownerID, search)
}

func (s *fileService) IssueDownload(ctx context.Context, ownerID, fileID string) (*DownloadTicket, error) {
	f, err := s.findOwned(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}

	u, err := s.gateway.PresignDownload(ctx, f.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &DownloadTicket{URL: u, Filename: f.Name}, nil
}

func (s *fileService) Rename(ctx context.Context, ownerID, fileID, newName string) (*model.File, error) {
	if newName == "" {
		return nil, ErrNameRequired
	}
	f, err := s.findOwned(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateName(ctx, fileID, ownerID, newName, now); err != nil {
		// The row can vanish between lookup and update; surface it the same way.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	f.Name = newName
	f.UpdatedAt = now
	return f, nil
}

func (s *fileService) Delete(ctx context.Context, ownerID, fileID string) error {
	f, err := s.findOwned(ctx, ownerID, fileID)
	if err != nil {
		return err
	}

	// Best effort: a failed object-store delete must never block removal of
	// the metadata row. The orphaned bytes are the accepted cost.
	if err := s.gateway.Delete(ctx, f.StorageKey); err != nil {
		logDeleteFailure(f.StorageKey, err)
	}

	return s.repo.Delete(ctx, fileID)
}

// findOwned is the fetch-or-forbidden helper behind every operation on an
// existing file: one lookup filtered by both file id and owner id, with zero
// matches reported as ErrNotFound regardless of why nothing matched.
func (s *fileService) findOwned(ctx context.Context, ownerID, fileID string) (*model.File, error) {
	if fileID == "" {
		return nil, ErrIDRequired
	}
	f, err := s.repo.FindByIDAndOwner(ctx, fileID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func logDeleteFailure(key string, err error) {
	entry := map[string]any{
		"ts":          time.Now().UTC().Format(time.RFC3339Nano),
		"level":       "error",
		"component":   "service",
		"event":       "storage_delete_failed",
		"storage_key": key,
		"error":       err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
