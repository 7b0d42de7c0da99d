package model

import "time"

// File represents a stored file owned by a user.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// Name is the user-visible display name and may change via rename.
// StorageKey is the object-store key; it is immutable once set and never
// changes on rename. A row's existence does not guarantee the bytes exist:
// the row is inserted when the upload intent is issued, before the client's
// direct PUT completes.
type File struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	StorageKey string    `json:"storageKey"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
