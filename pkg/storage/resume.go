package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"golang.org/x/image/draw"
)

const (
	resumeImageMaxDimension = 1200
	resumeImageQuality      = 80
)

// ResumeStore wraps the blob client with the resume upload pipeline:
// content-type detection, recompression of photographed resumes, filename
// generation and public URL resolution.
type ResumeStore struct {
	client *Client
}

func NewResumeStore(client *Client) *ResumeStore {
	return &ResumeStore{client: client}
}

// StoreResume uploads the resume and returns its public URL. An image resume
// is recompressed to JPEG before upload; PDFs and other documents are stored
// as-is.
func (s *ResumeStore) StoreResume(ctx context.Context, originalName string, data []byte) (string, error) {
	contentType := http.DetectContentType(data)

	finalBytes := data
	finalName := GenerateFilename(originalName)

	if strings.HasPrefix(contentType, "image/") {
		compressed, err := compressImage(data, resumeImageMaxDimension, resumeImageQuality)
		if err == nil {
			finalBytes = compressed
			contentType = "image/jpeg"
			finalName = withJPEGExtension(finalName)
		}
		// On decode failure the original bytes are kept.
	}

	if err := s.client.Upload(ctx, finalName, finalBytes, contentType); err != nil {
		return "", err
	}

	return s.client.PublicURL(finalName), nil
}

// compressImage resizes to maxDimension on the longer edge, keeping aspect
// ratio, and re-encodes as JPEG.
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width >= height && width > maxDimension {
		newWidth = maxDimension
		newHeight = int(float64(height) * float64(maxDimension) / float64(width))
	} else if height > width && height > maxDimension {
		newHeight = maxDimension
		newWidth = int(float64(width) * float64(maxDimension) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}

func withJPEGExtension(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name + ".jpg"
}
