package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, booking models.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, listing_id, user_id, check_in, check_out, guests, name, phone, price, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.ListingID,
		booking.UserID,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests,
		booking.Name,
		booking.Phone,
		booking.Price,
	)
	return err
}

const bookingJoinQuery = `
	SELECT b.id, b.listing_id, b.user_id, b.check_in, b.check_out, b.guests,
	       b.name, b.phone, b.price, b.created_at,
	       l.id, l.owner_id, l.title, l.address, l.photos, l.description,
	       l.perks, l.extra_info, l.check_in, l.check_out, l.max_guests,
	       l.price, l.version, l.created_at, l.updated_at
	FROM bookings b
	JOIN listings l ON l.id = b.listing_id
`

// GetByID returns a booking with its listing joined in.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	row := r.pool.QueryRow(ctx, bookingJoinQuery+` WHERE b.id = $1`, id)

	booking, err := scanBookingWithListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return booking, nil
}

// ListByUser returns the user's bookings, newest first, each with its
// listing joined in.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	rows, err := r.pool.Query(ctx, bookingJoinQuery+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBookingWithListing(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func scanBookingWithListing(row pgx.Row) (models.Booking, error) {
	var (
		booking models.Booking
		listing models.Listing
	)
	if err := row.Scan(
		&booking.ID,
		&booking.ListingID,
		&booking.UserID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Guests,
		&booking.Name,
		&booking.Phone,
		&booking.Price,
		&booking.CreatedAt,
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
		return models.Booking{}, err
	}
	booking.Listing = &listing
	return booking, nil
}
