package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/platform/storage"
)

// MaxUploadBytes is the admission ceiling for a single image payload.
const MaxUploadBytes = 500000

// mimeExtensions is the fixed allow-list of accepted declared types.
var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
}

// StoredAsset references an object accepted by the admission filter.
type StoredAsset struct {
	Key string
	URL string
}

// UploadService is the admission gate in front of the blob store. It
// rejects unknown declared types and oversize payloads before any bytes
// reach storage, and stores accepted files under freshly generated names
// so client-supplied filenames never touch the filesystem.
type UploadService interface {
	Admit(ctx context.Context, fileHeader *multipart.FileHeader) (*StoredAsset, error)
	Store(ctx context.Context, key string, r io.Reader) (*StoredAsset, error)
	Remove(ctx context.Context, key string)
}

type uploadService struct {
	log   *logger.Logger
	store storage.ObjectStore
}

func NewUploadService(log *logger.Logger, store storage.ObjectStore) UploadService {
	serviceLog := log.With("service", "UploadService")
	return &uploadService{log: serviceLog, store: store}
}

func (us *uploadService) Admit(ctx context.Context, fileHeader *multipart.FileHeader) (*StoredAsset, error) {
	const op = "upload.admit"
	if fileHeader == nil {
		return nil, domainagg.NewError(domainagg.CodeAdmission, op, "an image file is required", nil)
	}
	declared := strings.TrimSpace(fileHeader.Header.Get("Content-Type"))
	ext, ok := mimeExtensions[declared]
	if !ok {
		return nil, domainagg.NewError(domainagg.CodeAdmission, op,
			fmt.Sprintf("invalid mime type %q", declared), nil)
	}
	if fileHeader.Size > MaxUploadBytes {
		return nil, domainagg.NewError(domainagg.CodeAdmission, op,
			fmt.Sprintf("file exceeds the %d byte limit", MaxUploadBytes), nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeAdmission, op, err)
	}
	defer file.Close()

	// The declared size header is client-controlled; hard-cap the actual
	// byte stream as well.
	key := uuid.New().String() + "." + ext
	return us.Store(ctx, key, io.LimitReader(file, MaxUploadBytes))
}

func (us *uploadService) Store(ctx context.Context, key string, r io.Reader) (*StoredAsset, error) {
	const op = "upload.store"
	if err := us.store.Put(ctx, key, r); err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return &StoredAsset{Key: key, URL: us.store.PublicURL(key)}, nil
}

// Remove is the best-effort compensating action for an asset whose
// surrounding operation failed or whose place was deleted. Failure is
// logged, never surfaced.
func (us *uploadService) Remove(ctx context.Context, key string) {
	if strings.TrimSpace(key) == "" {
		return
	}
	if err := us.store.Delete(ctx, key); err != nil {
		us.log.Warn("failed to remove stored asset", "key", key, "error", err)
	}
}
