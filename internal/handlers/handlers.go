package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"stayhub/internal/cache"
	"stayhub/internal/config"
	"stayhub/internal/middleware"
	"stayhub/internal/repository"
	"stayhub/internal/security"
	"stayhub/internal/service"
	"stayhub/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	tokens   *security.TokenService
	auth     *service.AuthService
	listings *service.ListingService
	bookings *service.BookingService
	uploads  *service.UploadService
	db       databasePinger
	cache    cachePinger
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	tokens := security.NewTokenService(cfg.Security.TokenSecret, cfg.Security.TokenTTL)
	listingCache := cache.NewListingCache(redisClient, cfg.Listings.CacheTTL)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		tokens:   tokens,
		auth:     service.NewAuthService(userRepo, tokens, log),
		listings: service.NewListingService(listingRepo, photoRepo, listingCache, log),
		bookings: service.NewBookingService(bookingRepo, listingRepo, log),
		uploads:  service.NewUploadService(photoRepo, store, cfg.Uploads, log),
		db:       db,
		cache:    redisClient,
	}
}

// Uploads exposes the upload service for the cleanup scheduler.
func (h HandlerSet) Uploads() *service.UploadService {
	return h.uploads
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	requireAuth := middleware.RequireAuth(h.cfg.Security.CookieName, h.tokens)
	optionalAuth := middleware.OptionalAuth(h.cfg.Security.CookieName, h.tokens)

	readGate := optionalAuth
	if !h.cfg.Listings.PublicRead {
		readGate = requireAuth
	}

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/profile", optionalAuth, h.Profile)

		listings := v1.Group("/listings")
		listings.GET("", readGate, h.ListListings)
		listings.GET("/:id", readGate, h.GetListing)
		listings.POST("", requireAuth, h.CreateListing)
		listings.PUT("/:id", requireAuth, h.UpdateListing)

		v1.GET("/account/listings", requireAuth, h.ListMyListings)

		bookings := v1.Group("/bookings", requireAuth)
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)

		uploads := v1.Group("/uploads", requireAuth)
		uploads.POST("/photos", h.UploadPhotos)
		uploads.POST("/by-link", h.UploadByLink)
	}
}
