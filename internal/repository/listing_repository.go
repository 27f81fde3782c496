package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/models"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	// ErrVersionConflict means the row changed between fetch and update.
	ErrVersionConflict = errors.New("listing version conflict")
)

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

const listingColumns = `
	id, owner_id, title, address, photos, description, perks, extra_info,
	check_in, check_out, max_guests, price, version, created_at, updated_at
`

func (r *ListingRepository) Create(ctx context.Context, listing models.Listing) error {
	const query = `
		INSERT INTO listings (
			id, owner_id, title, address, photos, description, perks, extra_info,
			check_in, check_out, max_guests, price, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, 1, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		listing.ID,
		listing.OwnerID,
		listing.Title,
		listing.Address,
		listing.Photos,
		listing.Description,
		listing.Perks,
		listing.ExtraInfo,
		listing.CheckIn,
		listing.CheckOut,
		listing.MaxGuests,
		listing.Price,
	)
	return err
}

// Update replaces the updatable fields of a listing. The write only lands
// when the stored version still matches listing.Version; a concurrent update
// in between surfaces as ErrVersionConflict.
func (r *ListingRepository) Update(ctx context.Context, listing models.Listing) error {
	const query = `
		UPDATE listings
		SET title = $3, address = $4, photos = $5, description = $6,
		    perks = $7, extra_info = $8, check_in = $9, check_out = $10,
		    max_guests = $11, price = $12, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	cmd, err := r.pool.Exec(ctx, query,
		listing.ID,
		listing.Version,
		listing.Title,
		listing.Address,
		listing.Photos,
		listing.Description,
		listing.Perks,
		listing.ExtraInfo,
		listing.CheckIn,
		listing.CheckOut,
		listing.MaxGuests,
		listing.Price,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (models.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	return scanListing(r.pool.QueryRow(ctx, query, id))
}

func (r *ListingRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	const query = `
		SELECT ` + listingColumns + `
		FROM listings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectListings(rows)
}

func (r *ListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	const query = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectListings(rows)
}

func scanListing(row pgx.Row) (models.Listing, error) {
	var listing models.Listing
	if err := row.Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Title,
		&listing.Address,
		&listing.Photos,
		&listing.Description,
		&listing.Perks,
		&listing.ExtraInfo,
		&listing.CheckIn,
		&listing.CheckOut,
		&listing.MaxGuests,
		&listing.Price,
		&listing.Version,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, err
	}
	return listing, nil
}

func collectListings(rows pgx.Rows) ([]models.Listing, error) {
	var listings []models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}
