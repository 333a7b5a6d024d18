package localstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/platform/storage"
)

// Store keeps uploaded objects on the local filesystem under a single
// directory, served statically by the router. Writes go through a temp
// file and rename so a failed Put leaves nothing behind.
type Store struct {
	log     *logger.Logger
	dir     string
	baseURL string
}

func New(log *logger.Logger, dir, baseURL string) (*Store, error) {
	storeLog := log.With("store", "LocalStore")
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("local store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local store directory: %w", err)
	}
	return &Store{log: storeLog, dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

var _ storage.ObjectStore = (*Store)(nil)

func (s *Store) Put(ctx context.Context, key string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := filepath.Join(s.dir, filepath.Base(key))
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write object %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close object %q: %w", key, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to place object %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(key))); err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/uploads/images/%s", s.baseURL, filepath.Base(key))
}

// Dir exposes the backing directory for static route registration.
func (s *Store) Dir() string {
	return s.dir
}
