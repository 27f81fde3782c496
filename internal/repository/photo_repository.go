package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/models"
)

type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

func (r *PhotoRepository) Create(ctx context.Context, photo models.Photo) error {
	const query = `
		INSERT INTO photos (id, user_id, listing_id, object_key, format, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		photo.ID,
		photo.UserID,
		photo.ListingID,
		photo.ObjectKey,
		photo.Format,
		photo.SizeBytes,
	)
	return err
}

// Attach binds uploaded photos to a listing. Only photos owned by the
// listing's owner can be attached.
func (r *PhotoRepository) Attach(ctx context.Context, listingID string, ownerID string, objectKeys []string) error {
	if len(objectKeys) == 0 {
		return nil
	}
	const query = `
		UPDATE photos
		SET listing_id = $1
		WHERE user_id = $2 AND object_key = ANY($3) AND listing_id IS NULL
	`
	_, err := r.pool.Exec(ctx, query, listingID, ownerID, objectKeys)
	return err
}

// ListOrphans returns photos never attached to a listing and older than the
// cutoff.
func (r *PhotoRepository) ListOrphans(ctx context.Context, olderThan time.Time, limit int) ([]models.Photo, error) {
	const query = `
		SELECT id, user_id, listing_id, object_key, format, size_bytes, created_at
		FROM photos
		WHERE listing_id IS NULL AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(
			&photo.ID,
			&photo.UserID,
			&photo.ListingID,
			&photo.ObjectKey,
			&photo.Format,
			&photo.SizeBytes,
			&photo.CreatedAt,
		); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM photos WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
