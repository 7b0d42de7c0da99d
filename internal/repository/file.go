package repository

import (
	"context"
	"time"

	"filevault/internal/model"
)

// FileRepository defines data access for file metadata using SQL queries only.
// No business logic here — strictly persistence operations.
//
// Every lookup that takes an ownerID filters by it in the same query. Zero
// matching rows surface as sql.ErrNoRows so callers cannot distinguish a
// missing file from another user's file.
type FileRepository interface {
	// Create inserts a new file record.
	// The caller provides all fields (ID, timestamps included); the row is
	// returned as stored.
	Create(ctx context.Context, f *model.File) (*model.File, error)

	// FindByIDAndOwner returns the file with the given id owned by ownerID.
	// Returns sql.ErrNoRows when no row matches both filters.
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.File, error)

	// ListByOwner returns all files owned by ownerID, newest first. A non-empty
	// search term restricts rows to names containing the term as a substring.
	ListByOwner(ctx context.Context, ownerID, search string) ([]model.File, error)

	// UpdateName sets the display name and updated_at of the row matching both
	// id and ownerID. Returns sql.ErrNoRows when no row matches.
	UpdateName(ctx context.Context, id, ownerID, name string, updatedAt time.Time) error

	// Delete removes a file row by id. It returns nil if the row was deleted or
	// did not exist.
	Delete(ctx context.Context, id string) error
}
