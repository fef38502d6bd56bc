// Package fsxlocal implements fsx.FileSystem on the local disk.
package fsxlocal

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/iiTzGuzz/LLMSDATA/pkg/fsx"
)

// LocalFileSystem stores files under a root directory.
type LocalFileSystem struct {
	root string
}

// NewLocalFileSystem creates a disk-backed file system rooted at dir.
func NewLocalFileSystem(dir string) *LocalFileSystem {
	return &LocalFileSystem{root: dir}
}

func (l *LocalFileSystem) abs(path string) string {
	return filepath.Join(l.root, filepath.FromSlash(path))
}

// Join builds a slash-separated storage path.
func (l *LocalFileSystem) Join(segments ...string) string {
	return filepath.ToSlash(filepath.Join(segments...))
}

// WriteFileStream writes the reader's content to path under the root.
func (l *LocalFileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	target := l.abs(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Sync()
}

// ReadFile returns the content of path under the root.
func (l *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(l.abs(path))
}

// DeleteFile removes path under the root; missing files are ignored.
func (l *LocalFileSystem) DeleteFile(ctx context.Context, path string) error {
	err := os.Remove(l.abs(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the regular files directly under prefix.
func (l *LocalFileSystem) List(ctx context.Context, prefix string) ([]fsx.FileInfo, error) {
	entries, err := os.ReadDir(l.abs(prefix))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var infos []fsx.FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, fsx.FileInfo{
			Name:       e.Name(),
			Size:       fi.Size(),
			ModifiedAt: fi.ModTime(),
		})
	}
	return infos, nil
}
