package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"filevault/internal/uploader"
)

// upload drives the two-step upload flow from the command line: request an
// upload intent from the API, then PUT the file bytes straight to the
// presigned URL it returns.

type intentResponse struct {
	Success   bool   `json:"success"`
	FileID    string `json:"fileId"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Error     string `json:"error"`
}

func main() {
	var (
		apiURL      = flag.String("api", "http://localhost:8080", "base URL of the file API")
		token       = flag.String("token", "", "session token (sent as bearer token)")
		name        = flag.String("name", "", "filename to store as (defaults to the local file's name)")
		contentType = flag.String("content-type", "", "content type (defaults to a guess from the extension)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *token == "" {
		*token = os.Getenv("FILEVAULT_TOKEN")
	}
	if *token == "" {
		fatal("no session token: pass -token or set FILEVAULT_TOKEN")
	}

	f, err := os.Open(path)
	if err != nil {
		fatal("open file: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		fatal("stat file: %v", err)
	}

	filename := *name
	if filename == "" {
		filename = filepath.Base(path)
	}

	ct := *contentType
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(filename))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	intent, err := requestIntent(ctx, *apiURL, *token, filename, ct, info.Size())
	if err != nil {
		fatal("%v", err)
	}

	if err := uploader.New().Put(ctx, intent.UploadURL, ct, f, info.Size()); err != nil {
		fatal("%v", err)
	}

	fmt.Printf("uploaded %s (%d bytes)\n", filename, info.Size())
	fmt.Printf("file id:    %s\n", intent.FileID)
	if intent.PublicURL != "" {
		fmt.Printf("public url: %s\n", intent.PublicURL)
	}
}

func requestIntent(ctx context.Context, apiURL, token, filename, contentType string, size int64) (*intentResponse, error) {
	body, err := json.Marshal(map[string]any{
		"filename":      filename,
		"contentType":   contentType,
		"contentLength": size,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/files/upload", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request upload intent: %w", err)
	}
	defer resp.Body.Close()

	var intent intentResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode response (%s): %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK || !intent.Success {
		msg := intent.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("upload intent rejected: %s", msg)
	}
	return &intent, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
