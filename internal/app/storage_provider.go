package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/places-backend/internal/platform/gcp"
	"github.com/yungbote/places-backend/internal/platform/localstore"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/platform/storage"
)

type StorageProviderBootstrapError struct {
	Mode  string
	Cause error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf("object storage bootstrap failed (mode=%q): %v", e.Mode, e.Cause)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ResolveObjectStore selects the blob store backing the upload path.
// Returns the store plus the local uploads directory when the local
// provider is active (empty otherwise).
func ResolveObjectStore(log *logger.Logger, cfg Config) (storage.ObjectStore, string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.StorageMode))
	log.Info("Selecting object storage provider", "mode", mode)
	switch mode {
	case "", "local":
		store, err := localstore.New(log, cfg.UploadsDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, "", &StorageProviderBootstrapError{Mode: mode, Cause: err}
		}
		return store, store.Dir(), nil
	case "gcs":
		store, err := gcp.NewBucketStore(log, cfg.GCSBucket, cfg.CDNDomain)
		if err != nil {
			return nil, "", &StorageProviderBootstrapError{Mode: mode, Cause: err}
		}
		return store, "", nil
	default:
		return nil, "", &StorageProviderBootstrapError{
			Mode:  mode,
			Cause: fmt.Errorf("unsupported object storage mode %q", mode),
		}
	}
}
