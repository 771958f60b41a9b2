package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"recipe-share-backend/internal/common"
)

// FileSystemStore keeps blobs as loose files in a single directory:
//
//	<root>/
//	  <name>     (one file per stored image)
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates the root directory if needed
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSystemStore{root: root}, nil
}

// Root returns the backing directory
func (s *FileSystemStore) Root() string {
	return s.root
}

// Put writes r to a new file. An existing file is never overwritten:
// the call fails with common.ErrAssetCollision instead.
func (s *FileSystemStore) Put(ctx context.Context, name string, r io.Reader) error {
	if err := validName(name); err != nil {
		return err
	}

	destPath := filepath.Join(s.root, name)
	f, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", common.ErrAssetCollision, name)
		}
		return fmt.Errorf("failed to create file: %w", err)
	}

	// Remove the partial file on failure so a crashed write never looks live
	success := false
	defer func() {
		if !success {
			os.Remove(destPath)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	success = true
	return nil
}

// Open returns the file contents. Missing files yield common.ErrNotFound.
func (s *FileSystemStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Exists reports whether a file is present
func (s *FileSystemStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := validName(name); err != nil {
		return false, nil
	}

	_, err := os.Stat(filepath.Join(s.root, name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat file: %w", err)
}

// Delete removes a file. Deleting a missing file succeeds.
func (s *FileSystemStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// ValidateSetup verifies that the root directory is accessible
func (s *FileSystemStore) ValidateSetup(ctx context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("storage root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root is not a directory: %s", s.root)
	}
	return nil
}
