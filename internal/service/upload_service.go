package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"stayhub/internal/config"
	"stayhub/internal/ids"
	"stayhub/internal/media/sniffer"
	"stayhub/internal/models"
)

var (
	ErrPhotoTooLarge   = errors.New("photo exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported photo type")
	ErrFetchFailed     = errors.New("could not fetch remote image")
)

type PhotoStore interface {
	Create(ctx context.Context, photo models.Photo) error
	ListOrphans(ctx context.Context, olderThan time.Time, limit int) ([]models.Photo, error)
	Delete(ctx context.Context, id string) error
}

type PhotoObjectStore interface {
	PutPhoto(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	RemovePhoto(ctx context.Context, key string) error
	PhotoURL(key string) string
}

type UploadService struct {
	photos PhotoStore
	store  PhotoObjectStore
	client *http.Client
	cfg    config.UploadsConfig
	log    zerolog.Logger
}

func NewUploadService(photos PhotoStore, store PhotoObjectStore, cfg config.UploadsConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		photos: photos,
		store:  store,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		cfg:    cfg,
		log:    log,
	}
}

type StoredPhoto struct {
	Key string
	URL string
}

// SavePhoto sniffs, stores and records one uploaded image. The object key is
// a fresh ksuid plus the detected extension, so concurrent uploads cannot
// collide and the declared filename is never trusted.
func (s *UploadService) SavePhoto(ctx context.Context, userID string, data []byte) (StoredPhoto, error) {
	if int64(len(data)) > s.cfg.MaxBytes {
		return StoredPhoto{}, ErrPhotoTooLarge
	}
	if len(data) == 0 {
		return StoredPhoto{}, fmt.Errorf("empty file")
	}

	result, err := sniffer.Detect(data)
	if err != nil {
		return StoredPhoto{}, ErrUnsupportedType
	}

	key := fmt.Sprintf("%s.%s", ids.New(), result.Ext)

	if err := s.store.PutPhoto(ctx, key, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return StoredPhoto{}, fmt.Errorf("store photo: %w", err)
	}

	photo := models.Photo{
		ID:        ids.New(),
		UserID:    userID,
		ObjectKey: key,
		Format:    string(result.Type),
		SizeBytes: int64(len(data)),
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return StoredPhoto{}, fmt.Errorf("save photo record: %w", err)
	}

	return StoredPhoto{Key: key, URL: s.store.PhotoURL(key)}, nil
}

// SaveFromLink downloads a remote image and runs it through the same
// sniff-and-store path as a direct upload. The read is capped one byte past
// the size limit so oversized bodies fail instead of draining the source.
func (s *UploadService) SaveFromLink(ctx context.Context, userID string, link string) (StoredPhoto, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return StoredPhoto{}, ErrFetchFailed
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return StoredPhoto{}, ErrFetchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StoredPhoto{}, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBytes+1))
	if err != nil {
		return StoredPhoto{}, ErrFetchFailed
	}

	return s.SavePhoto(ctx, userID, data)
}

// CleanupOrphans removes photos that were uploaded but never attached to a
// listing within the grace period. Object removal happens before the row
// delete so a failure leaves the record for the next run.
func (s *UploadService) CleanupOrphans(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.cfg.OrphanAge)
	orphans, err := s.photos.ListOrphans(ctx, cutoff, 100)
	if err != nil {
		return 0, fmt.Errorf("list orphans: %w", err)
	}

	removed := 0
	for _, photo := range orphans {
		if err := s.store.RemovePhoto(ctx, photo.ObjectKey); err != nil {
			s.log.Warn().Err(err).Str("object_key", photo.ObjectKey).Msg("remove orphan object failed")
			continue
		}
		if err := s.photos.Delete(ctx, photo.ID); err != nil {
			s.log.Warn().Err(err).Str("photo_id", photo.ID).Msg("delete orphan record failed")
			continue
		}
		removed++
	}
	return removed, nil
}
