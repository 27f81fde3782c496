package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"stayhub/internal/models"
	"stayhub/internal/repository"
)

type fakeListingStore struct {
	listings map[string]models.Listing
	updates  int

	// beforeUpdate simulates a writer that lands between the service's
	// fetch and its compare-and-swap.
	beforeUpdate func()
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: make(map[string]models.Listing)}
}

func (f *fakeListingStore) Create(_ context.Context, listing models.Listing) error {
	f.listings[listing.ID] = listing
	return nil
}

func (f *fakeListingStore) Update(_ context.Context, listing models.Listing) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	current, ok := f.listings[listing.ID]
	if !ok || current.Version != listing.Version {
		return repository.ErrVersionConflict
	}
	listing.Version++
	f.listings[listing.ID] = listing
	f.updates++
	return nil
}

func (f *fakeListingStore) GetByID(_ context.Context, id string) (models.Listing, error) {
	listing, ok := f.listings[id]
	if !ok {
		return models.Listing{}, repository.ErrListingNotFound
	}
	return listing, nil
}

func (f *fakeListingStore) ListAll(_ context.Context, _, _ int) ([]models.Listing, error) {
	var out []models.Listing
	for _, listing := range f.listings {
		out = append(out, listing)
	}
	return out, nil
}

func (f *fakeListingStore) ListByOwner(_ context.Context, ownerID string) ([]models.Listing, error) {
	var out []models.Listing
	for _, listing := range f.listings {
		if listing.OwnerID == ownerID {
			out = append(out, listing)
		}
	}
	return out, nil
}

type fakeAttacher struct {
	attached map[string][]string
}

func (f *fakeAttacher) Attach(_ context.Context, listingID string, _ string, keys []string) error {
	if f.attached == nil {
		f.attached = make(map[string][]string)
	}
	f.attached[listingID] = append(f.attached[listingID], keys...)
	return nil
}

func newListingService(store ListingStore) *ListingService {
	return NewListingService(store, &fakeAttacher{}, nil, zerolog.Nop())
}

func sampleInput(title string) ListingInput {
	return ListingInput{
		Title:     title,
		Address:   "1 Test Lane",
		MaxGuests: 4,
		Price:     120,
	}
}

func TestListingService_CreateSetsOwner(t *testing.T) {
	t.Parallel()

	store := newFakeListingStore()
	svc := newListingService(store)

	listing, err := svc.Create(context.Background(), "owner-a", sampleInput("Cabin"))
	require.NoError(t, err)
	require.Equal(t, "owner-a", listing.OwnerID)
	require.Equal(t, 1, listing.Version)
}

func TestListingService_UpdateDeniedForNonOwner(t *testing.T) {
	t.Parallel()

	store := newFakeListingStore()
	svc := newListingService(store)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "owner-a", sampleInput("Cabin"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "owner-b", listing.ID, sampleInput("Hijacked"))
	require.ErrorIs(t, err, ErrNotOwner)

	// No partial write: stored fields are unchanged.
	stored, err := store.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	require.Equal(t, "Cabin", stored.Title)
	require.Zero(t, store.updates)
}

func TestListingService_UpdateByOwner(t *testing.T) {
	t.Parallel()

	store := newFakeListingStore()
	svc := newListingService(store)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "owner-a", sampleInput("Cabin"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "owner-a", listing.ID, sampleInput("Renovated Cabin"))
	require.NoError(t, err)
	require.Equal(t, "Renovated Cabin", updated.Title)
	require.Equal(t, 2, updated.Version)
	require.Equal(t, "owner-a", updated.OwnerID)
}

func TestListingService_UpdateUnknownListing(t *testing.T) {
	t.Parallel()

	svc := newListingService(newFakeListingStore())

	_, err := svc.Update(context.Background(), "owner-a", "missing", sampleInput("Nope"))
	require.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingService_UpdateVersionConflict(t *testing.T) {
	t.Parallel()

	store := newFakeListingStore()
	svc := newListingService(store)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "owner-a", sampleInput("Cabin"))
	require.NoError(t, err)

	// A concurrent writer bumps the version between fetch and update.
	store.beforeUpdate = func() {
		raced := store.listings[listing.ID]
		raced.Version++
		store.listings[listing.ID] = raced
	}

	_, err = svc.Update(ctx, "owner-a", listing.ID, sampleInput("Late"))
	require.ErrorIs(t, err, ErrVersionConflict)
}
