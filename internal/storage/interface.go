package storage

import (
	"context"
)

// ExportUploader defines the interface for uploading export artifacts.
// This interface allows for easy mocking in tests
type ExportUploader interface {
	UploadExport(ctx context.Context, data []byte, userID, format, contentType string) (*UploadResult, error)
}

// Ensure S3Uploader implements ExportUploader
var _ ExportUploader = (*S3Uploader)(nil)
