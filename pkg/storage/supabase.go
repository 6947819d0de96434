// Package storage is the blob-store client for resume uploads. Files go to
// Supabase Storage over its HTTP API; public URLs are derived from the
// bucket path.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

func NewClient(baseURL, serviceKey, bucket string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores the object under name. The x-upsert header makes retries of
// the same submission attempt idempotent.
func (c *Client) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}

// PublicURL derives the public object URL for an uploaded name.
func (c *Client) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, name)
}

// GenerateFilename builds a collision-resistant object name from the current
// time and a random suffix, preserving the sanitized original name.
func GenerateFilename(original string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%d_%s_%s", time.Now().UnixNano(), suffix, sanitizeFilename(original))
}

// sanitizeFilename strips non-ASCII characters and replaces spaces with
// underscores. Supabase requires ASCII-only object names.
func sanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r > 127:
			// drop
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "file"
	}
	return out
}
