// Package fsx abstracts file storage so services can run against local
// disk or an object store without code changes.
package fsx

import (
	"context"
	"io"
	"time"
)

// FileInfo describes one stored file.
type FileInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// FileReader is the read-only subset of FileSystem.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileSystem is the storage contract used by services and handlers.
type FileSystem interface {
	FileReader

	// Join builds a storage path from segments using the backend's separator.
	Join(segments ...string) string

	// WriteFileStream persists the reader's content at path, creating
	// intermediate directories/prefixes as needed.
	WriteFileStream(ctx context.Context, path string, r io.Reader) error

	// DeleteFile removes a file; deleting a missing file is not an error.
	DeleteFile(ctx context.Context, path string) error

	// List returns the files directly under the given prefix.
	List(ctx context.Context, prefix string) ([]FileInfo, error)
}
