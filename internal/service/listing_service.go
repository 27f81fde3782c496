package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"stayhub/internal/cache"
	"stayhub/internal/ids"
	"stayhub/internal/models"
	"stayhub/internal/repository"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	// ErrNotOwner means the caller is authenticated but does not own the
	// listing it tried to mutate.
	ErrNotOwner        = errors.New("not the listing owner")
	ErrVersionConflict = errors.New("listing changed concurrently")
)

type ListingStore interface {
	Create(ctx context.Context, listing models.Listing) error
	Update(ctx context.Context, listing models.Listing) error
	GetByID(ctx context.Context, id string) (models.Listing, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
}

type PhotoAttacher interface {
	Attach(ctx context.Context, listingID string, ownerID string, objectKeys []string) error
}

// ListingCache is the cache surface used for single-listing reads. A nil
// cache disables caching.
type ListingCache interface {
	Get(ctx context.Context, id string) (models.Listing, error)
	Set(ctx context.Context, listing models.Listing) error
	Invalidate(ctx context.Context, id string) error
}

type ListingService struct {
	listings ListingStore
	photos   PhotoAttacher
	cache    ListingCache
	log      zerolog.Logger
}

func NewListingService(listings ListingStore, photos PhotoAttacher, listingCache ListingCache, log zerolog.Logger) *ListingService {
	return &ListingService{
		listings: listings,
		photos:   photos,
		cache:    listingCache,
		log:      log,
	}
}

// ListingInput carries every updatable field. Updates are full-replace: the
// whole set is required, there is no merge-patch.
type ListingInput struct {
	Title       string
	Address     string
	Photos      []string
	Description string
	Perks       []string
	ExtraInfo   string
	CheckIn     string
	CheckOut    string
	MaxGuests   int
	Price       int64
}

func (s *ListingService) Create(ctx context.Context, ownerID string, input ListingInput) (models.Listing, error) {
	listing := models.Listing{
		ID:          ids.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Address:     input.Address,
		Photos:      input.Photos,
		Description: input.Description,
		Perks:       input.Perks,
		ExtraInfo:   input.ExtraInfo,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		MaxGuests:   input.MaxGuests,
		Price:       input.Price,
		Version:     1,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return models.Listing{}, err
	}

	if err := s.photos.Attach(ctx, listing.ID, ownerID, input.Photos); err != nil {
		s.log.Warn().Err(err).Str("listing_id", listing.ID).Msg("attach photos failed")
	}

	return listing, nil
}

// Update replaces a listing's fields. The ownership check runs after the
// fetch and strictly before any write; a denied caller leaves the stored row
// untouched. The write itself is a compare-and-swap on the fetched version,
// so two concurrent updates cannot silently overwrite each other.
func (s *ListingService) Update(ctx context.Context, callerID string, listingID string, input ListingInput) (models.Listing, error) {
	current, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, err
	}

	if current.OwnerID != callerID {
		return models.Listing{}, ErrNotOwner
	}

	updated := current
	updated.Title = input.Title
	updated.Address = input.Address
	updated.Photos = input.Photos
	updated.Description = input.Description
	updated.Perks = input.Perks
	updated.ExtraInfo = input.ExtraInfo
	updated.CheckIn = input.CheckIn
	updated.CheckOut = input.CheckOut
	updated.MaxGuests = input.MaxGuests
	updated.Price = input.Price

	if err := s.listings.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return models.Listing{}, ErrVersionConflict
		}
		return models.Listing{}, err
	}
	updated.Version++

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, listingID); err != nil {
			s.log.Warn().Err(err).Str("listing_id", listingID).Msg("cache invalidate failed")
		}
	}

	if err := s.photos.Attach(ctx, listingID, callerID, input.Photos); err != nil {
		s.log.Warn().Err(err).Str("listing_id", listingID).Msg("attach photos failed")
	}

	return updated, nil
}

func (s *ListingService) GetByID(ctx context.Context, id string) (models.Listing, error) {
	if s.cache != nil {
		if listing, err := s.cache.Get(ctx, id); err == nil {
			return listing, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("listing_id", id).Msg("cache read failed")
		}
	}

	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listing); err != nil {
			s.log.Warn().Err(err).Str("listing_id", id).Msg("cache write failed")
		}
	}

	return listing, nil
}

func (s *ListingService) ListAll(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	return s.listings.ListAll(ctx, limit, offset)
}

func (s *ListingService) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	return s.listings.ListByOwner(ctx, ownerID)
}
