package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"stayhub/internal/ids"
	"stayhub/internal/models"
	"stayhub/internal/repository"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrNotRequester means the caller tried to read a booking made by
	// someone else.
	ErrNotRequester = errors.New("not the booking requester")
)

type BookingStore interface {
	Create(ctx context.Context, booking models.Booking) error
	GetByID(ctx context.Context, id string) (models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

type BookingService struct {
	bookings BookingStore
	listings ListingStore
	log      zerolog.Logger
}

func NewBookingService(bookings BookingStore, listings ListingStore, log zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		listings: listings,
		log:      log,
	}
}

type BookingInput struct {
	ListingID string
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Name      string
	Phone     string
}

// Create validates the request against the listing and computes the price
// server-side from the listing's nightly rate. The client never supplies a
// price.
func (s *BookingService) Create(ctx context.Context, userID string, input BookingInput) (models.Booking, error) {
	listing, err := s.listings.GetByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return models.Booking{}, ErrListingNotFound
		}
		return models.Booking{}, err
	}

	nights := nightsBetween(input.CheckIn, input.CheckOut)
	if nights <= 0 {
		return models.Booking{}, fmt.Errorf("%w: check-out must be after check-in", ErrValidation)
	}
	if input.Guests < 1 {
		return models.Booking{}, fmt.Errorf("%w: at least one guest required", ErrValidation)
	}
	if input.Guests > listing.MaxGuests {
		return models.Booking{}, fmt.Errorf("%w: listing sleeps at most %d guests", ErrValidation, listing.MaxGuests)
	}
	if input.Name == "" || input.Phone == "" {
		return models.Booking{}, fmt.Errorf("%w: contact name and phone required", ErrValidation)
	}

	booking := models.Booking{
		ID:        ids.New(),
		ListingID: listing.ID,
		UserID:    userID,
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Guests:    input.Guests,
		Name:      input.Name,
		Phone:     input.Phone,
		Price:     int64(nights) * listing.Price,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return models.Booking{}, err
	}

	s.log.Info().
		Str("booking_id", booking.ID).
		Str("listing_id", listing.ID).
		Int64("price", booking.Price).
		Msg("booking created")

	booking.Listing = &listing
	return booking, nil
}

// GetByID returns a booking only to the identity that made it.
func (s *BookingService) GetByID(ctx context.Context, callerID string, bookingID string) (models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	if booking.UserID != callerID {
		return models.Booking{}, ErrNotRequester
	}
	return booking, nil
}

func (s *BookingService) ListMine(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// nightsBetween counts calendar nights between two stamps. Comparing dates
// rather than elapsed hours keeps a one-night stay across a DST shift (a 23h
// gap) at one night.
func nightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in) / (24 * time.Hour))
}
