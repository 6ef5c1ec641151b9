// Package storage stores uploaded assets and prepares avatar images.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes assets under a local directory served at a public base URL.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the directory if needed and returns a DiskStore.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the root directory of the store.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Put writes data under folder with a fresh name and returns its public URL.
func (s *DiskStore) Put(ctx context.Context, folder, ext string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		return "", err
	}

	return s.baseURL + "/" + path.Join(folder, name), nil
}
