package storage

import (
	"context"
	"io"
)

const MarkdownContentType = "text/markdown; charset=utf-8"

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader publishes generated artifacts such as the standings report.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
