package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_resume.pdf", sanitizeFilename("my resume.pdf"))
	assert.Equal(t, "rsum.pdf", sanitizeFilename("résumé.pdf"))
	assert.Equal(t, "file", sanitizeFilename("履歴書"))
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename("my resume.pdf")
	assert.Regexp(t, regexp.MustCompile(`^\d+_[0-9a-f-]{8}_my_resume\.pdf$`), name)

	// Two calls never collide.
	assert.NotEqual(t, name, GenerateFilename("my resume.pdf"))
}

func TestWithJPEGExtension(t *testing.T) {
	assert.Equal(t, "photo.jpg", withJPEGExtension("photo.png"))
	assert.Equal(t, "photo.jpg", withJPEGExtension("photo"))
}

func TestPublicURL(t *testing.T) {
	c := NewClient("https://proj.supabase.co/", "key", "resumes")
	assert.Equal(t,
		"https://proj.supabase.co/storage/v1/object/public/resumes/file.pdf",
		c.PublicURL("file.pdf"))
}
