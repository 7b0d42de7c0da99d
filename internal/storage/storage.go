package storage

import (
	"context"
	"time"
)

// Package storage contains the object store gateway for S3-compatible backends.
// Clients transfer bytes directly against presigned URLs; the application server
// never proxies file content.

const (
	// UploadURLExpiry bounds how long an issued upload URL stays valid.
	UploadURLExpiry = 5 * time.Minute
	// DownloadURLExpiry bounds how long an issued download URL stays valid.
	DownloadURLExpiry = 60 * time.Minute
)

// Gateway issues presigned URLs for direct client-to-storage transfers and
// performs object deletes. URL generation is pure request signing with the
// configured credentials; only Delete makes a network call to the backend.
type Gateway interface {
	// PresignUpload returns a time-boxed URL authorizing a single PUT of exactly
	// the given content type and length to key. The signature covers the
	// cache-control directive and static metadata tags as well, so the client
	// must send them unchanged.
	PresignUpload(ctx context.Context, key, contentType string, contentLength int64) (string, error)
	// PresignDownload returns a time-boxed URL authorizing a GET of key.
	PresignDownload(ctx context.Context, key string) (string, error)
	// Delete removes an object by key. The caller decides whether a failure is
	// fatal; the mediation layer treats it as best-effort.
	Delete(ctx context.Context, key string) error
	// PublicURL returns the externally reachable URL for key. No signing.
	PublicURL(key string) string
}
