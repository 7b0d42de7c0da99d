package uploader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Package uploader performs the direct client-to-storage transfer: a single
// PUT of the file bytes to a presigned URL, bypassing the application server
// entirely. No chunking, no resumption, no retry; any non-2xx status fails
// the upload.

// Uploader PUTs file content against presigned upload URLs.
type Uploader struct {
	client *http.Client
}

// New creates an Uploader. The transport is traced so client uploads show up
// alongside the server's spans.
func New() *Uploader {
	return &Uploader{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			// The presigned URL itself expires after 5 minutes; allow the
			// full window for slow links.
			Timeout: 5 * time.Minute,
		},
	}
}

// Put uploads exactly size bytes from r to the presigned uploadURL with the
// declared content type. The values must match what the URL was signed for,
// or the object store rejects the request.
func (u *Uploader) Put(ctx context.Context, uploadURL, contentType string, r io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, r)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "public, max-age=31536000")

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload failed: %s: %s", resp.Status, body)
	}
	return nil
}
