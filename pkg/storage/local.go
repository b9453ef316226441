package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps attachments on the local filesystem under a single
// directory. References are opaque "<uuid><ext>" filenames so the original
// upload name never reaches the disk.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Store(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", ref, err)
	}
	return ref, nil
}

func (s *LocalStore) Resolve(ctx context.Context, ref string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(ref))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("storage: resolve %s: %w", ref, err)
	}
	return path, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(ref))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete %s: %w", ref, err)
	}
	return nil
}
