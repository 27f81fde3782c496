package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub/internal/middleware"
	"stayhub/internal/models"
	"stayhub/internal/service"
)

type listingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests" binding:"required,min=1"`
	Price       int64    `json:"price" binding:"required,min=0"`
}

func (r listingRequest) toInput() service.ListingInput {
	return service.ListingInput{
		Title:       r.Title,
		Address:     r.Address,
		Photos:      r.Photos,
		Description: r.Description,
		Perks:       r.Perks,
		ExtraInfo:   r.ExtraInfo,
		CheckIn:     r.CheckIn,
		CheckOut:    r.CheckOut,
		MaxGuests:   r.MaxGuests,
		Price:       r.Price,
	}
}

type listingResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Photos      []string  `json:"photos"`
	Description string    `json:"description"`
	Perks       []string  `json:"perks"`
	ExtraInfo   string    `json:"extraInfo"`
	CheckIn     string    `json:"checkIn"`
	CheckOut    string    `json:"checkOut"`
	MaxGuests   int       `json:"maxGuests"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toListingResponse(listing models.Listing) listingResponse {
	return listingResponse{
		ID:          listing.ID,
		OwnerID:     listing.OwnerID,
		Title:       listing.Title,
		Address:     listing.Address,
		Photos:      listing.Photos,
		Description: listing.Description,
		Perks:       listing.Perks,
		ExtraInfo:   listing.ExtraInfo,
		CheckIn:     listing.CheckIn,
		CheckOut:    listing.CheckOut,
		MaxGuests:   listing.MaxGuests,
		Price:       listing.Price,
		CreatedAt:   listing.CreatedAt,
	}
}

func toListingResponses(listings []models.Listing) []listingResponse {
	resp := make([]listingResponse, 0, len(listings))
	for _, listing := range listings {
		resp = append(resp, toListingResponse(listing))
	}
	return resp
}

func (h HandlerSet) CreateListing(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), claims.UserID, req.toInput())
	if err != nil {
		h.log.Error().Err(err).Msg("create listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h HandlerSet) UpdateListing(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listings.Update(c.Request.Context(), claims.UserID, c.Param("id"), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "listing_not_found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not_owner"})
		case errors.Is(err, service.ErrVersionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "conflict_retry"})
		default:
			h.log.Error().Err(err).Msg("update listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		}
		return
	}

	c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h HandlerSet) GetListing(c *gin.Context) {
	listing, err := h.listings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing_not_found"})
			return
		}
		h.log.Error().Err(err).Msg("get listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h HandlerSet) ListListings(c *gin.Context) {
	limit := 50
	offset := 0
	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}

	listings, err := h.listings.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list listings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": toListingResponses(listings)})
}

func (h HandlerSet) ListMyListings(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	listings, err := h.listings.ListByOwner(c.Request.Context(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("list own listings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": toListingResponses(listings)})
}
