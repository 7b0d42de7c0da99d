package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"filevault/internal/config"
)

// Cache-control and metadata tags attached to every presigned upload.
// Objects are immutable once written (renames never touch the key), so a
// one-year cache lifetime is safe.
const uploadCacheControl = "public, max-age=31536000"

// minioGateway implements Gateway using an S3-compatible backend (MinIO, AWS S3,
// Cloudflare R2, etc.). It is safe for concurrent use by multiple goroutines;
// credentials are read-only after construction.
type minioGateway struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIO creates a new S3-compatible gateway backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Gateway, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	gw := &minioGateway{
		client:    cli,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return gw, nil
}

// PresignUpload signs a PUT request descriptor for key. The extra headers are
// part of the V4 signature, which pins the declared content type and length:
// a PUT with different values is rejected by the backend itself.
func (g *minioGateway) PresignUpload(ctx context.Context, key, contentType string, contentLength int64) (string, error) {
	hdr := http.Header{}
	hdr.Set("Content-Type", contentType)
	hdr.Set("Content-Length", strconv.FormatInt(contentLength, 10))
	hdr.Set("Cache-Control", uploadCacheControl)
	hdr.Set("X-Amz-Meta-Uploaded-By", "file-manager")
	hdr.Set("X-Amz-Meta-Upload-Timestamp", time.Now().UTC().Format(time.RFC3339))

	u, err := g.client.PresignHeader(ctx, http.MethodPut, g.bucket, key, UploadURLExpiry, url.Values{}, hdr)
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}
	return u.String(), nil
}

// PresignDownload signs a GET request descriptor for key.
func (g *minioGateway) PresignDownload(ctx context.Context, key string) (string, error) {
	u, err := g.client.PresignedGetObject(ctx, g.bucket, key, DownloadURLExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u.String(), nil
}

// Delete removes an object by key. This is the only Gateway operation that
// performs a network round trip to the backend.
func (g *minioGateway) Delete(ctx context.Context, key string) error {
	return g.client.RemoveObject(ctx, g.bucket, key, minio.RemoveObjectOptions{})
}

// PublicURL joins the configured public base URL with the storage key.
func (g *minioGateway) PublicURL(key string) string {
	return g.publicURL + "/" + key
}
