// Package common holds application-level contracts shared by several
// bounded contexts: object storage, file uploads and list queries.
package common

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// ObjectStorage stores uploaded files (logos, avatars, documents, invoice scans).
// It is implemented by the infrastructure layer (S3 or in-memory).
type ObjectStorage interface {
	// Upload stores data under key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, key string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, key string) (bool, error)
}

// DefaultDownloadURLExpiry is how long presigned download URLs stay valid
const DefaultDownloadURLExpiry = time.Hour

// MaxUploadSize is the largest accepted file (10 MiB)
const MaxUploadSize = 10 << 20

// ImageContentTypes are accepted for logos and avatars.
// SVG is excluded since it can carry scripts.
var ImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DocumentContentTypes are accepted for employee documents and invoice files
var DocumentContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
}

// FileUpload is a file received from a client
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validate checks size and content type against allowed
func (f FileUpload) Validate(allowed map[string]bool) error {
	if len(f.Data) == 0 {
		return shared.NewDomainError("INVALID_FILE", "File is empty")
	}
	if len(f.Data) > MaxUploadSize {
		return shared.NewDomainErrorf("FILE_TOO_LARGE", "File exceeds the maximum size of %d MB", MaxUploadSize>>20)
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(f.ContentType, ";", 2)[0]))
	if !allowed[ct] {
		return shared.NewDomainErrorf("INVALID_CONTENT_TYPE", "Content type %s is not allowed", ct)
	}
	return nil
}

// ObjectKey builds "<prefix>/<owner>/<random>-<sanitized filename>"
func ObjectKey(prefix string, owner uuid.UUID, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	name := shared.Slugify(strings.TrimSuffix(base, path.Ext(base)))
	if name == "" {
		name = "file"
	}
	if len(name) > 60 {
		name = name[:60]
	}
	return fmt.Sprintf("%s/%s/%s-%s%s", prefix, owner, uuid.NewString()[:8], name, ext)
}
