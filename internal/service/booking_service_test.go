package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"stayhub/internal/models"
	"stayhub/internal/repository"
)

type fakeBookingStore struct {
	bookings map[string]models.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]models.Booking)}
}

func (f *fakeBookingStore) Create(_ context.Context, booking models.Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id string) (models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, repository.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func newBookingFixture(t *testing.T) (*BookingService, *fakeBookingStore, models.Listing) {
	t.Helper()

	listings := newFakeListingStore()
	listing := models.Listing{
		ID:        "listing-1",
		OwnerID:   "owner-a",
		Title:     "Cabin",
		MaxGuests: 4,
		Price:     100,
		Version:   1,
	}
	listings.listings[listing.ID] = listing

	bookings := newFakeBookingStore()
	return NewBookingService(bookings, listings, zerolog.Nop()), bookings, listing
}

func day(offset int) time.Time {
	return time.Date(2026, time.September, 1+offset, 0, 0, 0, 0, time.UTC)
}

func TestBookingService_PriceComputedFromNights(t *testing.T) {
	t.Parallel()

	svc, _, listing := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), "guest-1", BookingInput{
		ListingID: listing.ID,
		CheckIn:   day(0),
		CheckOut:  day(3),
		Guests:    2,
		Name:      "Jo",
		Phone:     "555-0100",
	})
	require.NoError(t, err)
	require.Equal(t, int64(300), booking.Price)
	require.Equal(t, "guest-1", booking.UserID)
	require.NotNil(t, booking.Listing)
}

func TestBookingService_OneNightAcrossSpringForward(t *testing.T) {
	t.Parallel()

	svc, _, listing := newBookingFixture(t)

	// Clocks jump forward overnight, so only 23 hours elapse between the
	// stamps. It is still one calendar night.
	est := time.FixedZone("EST", -5*60*60)
	edt := time.FixedZone("EDT", -4*60*60)

	booking, err := svc.Create(context.Background(), "guest-1", BookingInput{
		ListingID: listing.ID,
		CheckIn:   time.Date(2026, time.March, 7, 15, 0, 0, 0, est),
		CheckOut:  time.Date(2026, time.March, 8, 15, 0, 0, 0, edt),
		Guests:    2,
		Name:      "Jo",
		Phone:     "555-0100",
	})
	require.NoError(t, err)
	require.Equal(t, listing.Price, booking.Price)
}

func TestBookingService_RejectsBadInput(t *testing.T) {
	t.Parallel()

	svc, store, listing := newBookingFixture(t)
	ctx := context.Background()

	base := BookingInput{
		ListingID: listing.ID,
		CheckIn:   day(0),
		CheckOut:  day(2),
		Guests:    2,
		Name:      "Jo",
		Phone:     "555-0100",
	}

	reversed := base
	reversed.CheckIn, reversed.CheckOut = reversed.CheckOut, reversed.CheckIn
	_, err := svc.Create(ctx, "guest-1", reversed)
	require.ErrorIs(t, err, ErrValidation)

	crowded := base
	crowded.Guests = listing.MaxGuests + 1
	_, err = svc.Create(ctx, "guest-1", crowded)
	require.ErrorIs(t, err, ErrValidation)

	anonymous := base
	anonymous.Name = ""
	_, err = svc.Create(ctx, "guest-1", anonymous)
	require.ErrorIs(t, err, ErrValidation)

	missing := base
	missing.ListingID = "missing"
	_, err = svc.Create(ctx, "guest-1", missing)
	require.ErrorIs(t, err, ErrListingNotFound)

	require.Empty(t, store.bookings)
}

func TestBookingService_ReadScopedToRequester(t *testing.T) {
	t.Parallel()

	svc, _, listing := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, "guest-1", BookingInput{
		ListingID: listing.ID,
		CheckIn:   day(0),
		CheckOut:  day(1),
		Guests:    1,
		Name:      "Jo",
		Phone:     "555-0100",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "guest-1", booking.ID)
	require.NoError(t, err)
	require.Equal(t, booking.ID, got.ID)

	_, err = svc.GetByID(ctx, "guest-2", booking.ID)
	require.ErrorIs(t, err, ErrNotRequester)

	mine, err := svc.ListMine(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	others, err := svc.ListMine(ctx, "guest-2")
	require.NoError(t, err)
	require.Empty(t, others)
}
