package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/yungbote/places-backend/internal/platform/localstore"
	"github.com/yungbote/places-backend/internal/platform/logger"
)

func TestResolveObjectStoreLocalMode(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	cfg := Config{
		StorageMode:   "local",
		UploadsDir:    dir,
		PublicBaseURL: "http://localhost:5000",
	}
	store, uploadsDir, err := ResolveObjectStore(logger.NewNop(), cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := store.(*localstore.Store); !ok {
		t.Fatalf("expected local store, got %T", store)
	}
	if uploadsDir != dir {
		t.Fatalf("uploads dir: want=%s got=%s", dir, uploadsDir)
	}
}

func TestResolveObjectStoreDefaultsToLocal(t *testing.T) {
	cfg := Config{
		StorageMode:   "",
		UploadsDir:    t.TempDir(),
		PublicBaseURL: "http://localhost:5000",
	}
	store, _, err := ResolveObjectStore(logger.NewNop(), cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := store.(*localstore.Store); !ok {
		t.Fatalf("expected local store, got %T", store)
	}
}

func TestResolveObjectStoreUnknownMode(t *testing.T) {
	_, _, err := ResolveObjectStore(logger.NewNop(), Config{StorageMode: "s3"})
	if err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	var bootErr *StorageProviderBootstrapError
	if !errors.As(err, &bootErr) {
		t.Fatalf("expected bootstrap error, got %T", err)
	}
	if bootErr.Mode != "s3" {
		t.Fatalf("mode: want=s3 got=%s", bootErr.Mode)
	}
}
