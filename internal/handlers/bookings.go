package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub/internal/middleware"
	"stayhub/internal/models"
	"stayhub/internal/service"
)

type bookingRequest struct {
	ListingID string    `json:"listingId" binding:"required"`
	CheckIn   time.Time `json:"checkIn" binding:"required"`
	CheckOut  time.Time `json:"checkOut" binding:"required"`
	Guests    int       `json:"guests" binding:"required,min=1"`
	Name      string    `json:"name" binding:"required"`
	Phone     string    `json:"phone" binding:"required"`
}

type bookingResponse struct {
	ID        string           `json:"id"`
	ListingID string           `json:"listingId"`
	CheckIn   time.Time        `json:"checkIn"`
	CheckOut  time.Time        `json:"checkOut"`
	Guests    int              `json:"guests"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Price     int64            `json:"price"`
	CreatedAt time.Time        `json:"createdAt"`
	Listing   *listingResponse `json:"listing,omitempty"`
}

func toBookingResponse(booking models.Booking) bookingResponse {
	resp := bookingResponse{
		ID:        booking.ID,
		ListingID: booking.ListingID,
		CheckIn:   booking.CheckIn,
		CheckOut:  booking.CheckOut,
		Guests:    booking.Guests,
		Name:      booking.Name,
		Phone:     booking.Phone,
		Price:     booking.Price,
		CreatedAt: booking.CreatedAt,
	}
	if booking.Listing != nil {
		listing := toListingResponse(*booking.Listing)
		resp.Listing = &listing
	}
	return resp
}

func (h HandlerSet) CreateBooking(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), claims.UserID, service.BookingInput{
		ListingID: req.ListingID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		Name:      req.Name,
		Phone:     req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "listing_not_found"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Msg("create booking failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		}
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h HandlerSet) GetBooking(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	booking, err := h.bookings.GetByID(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking_not_found"})
		case errors.Is(err, service.ErrNotRequester):
			c.JSON(http.StatusForbidden, gin.H{"error": "not_requester"})
		default:
			h.log.Error().Err(err).Msg("get booking failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		}
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h HandlerSet) ListMyBookings(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	bookings, err := h.bookings.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("list bookings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp = append(resp, toBookingResponse(booking))
	}

	c.JSON(http.StatusOK, gin.H{"items": resp})
}
