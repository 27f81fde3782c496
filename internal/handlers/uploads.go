package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/middleware"
	"stayhub/internal/service"
)

type storedPhotoResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadPhotos accepts multipart form uploads under the "photos" field and
// answers with the stored object keys the client references when creating a
// listing.
func (h HandlerSet) UploadPhotos(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart_form_required"})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photos_required"})
		return
	}

	stored := make([]storedPhotoResponse, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_file"})
			return
		}

		data, err := io.ReadAll(io.LimitReader(file, h.cfg.Uploads.MaxBytes+1))
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_file"})
			return
		}

		photo, err := h.uploads.SavePhoto(c.Request.Context(), claims.UserID, data)
		if err != nil {
			h.respondUploadError(c, err)
			return
		}
		stored = append(stored, storedPhotoResponse(photo))
	}

	c.JSON(http.StatusOK, gin.H{"photos": stored})
}

type uploadByLinkRequest struct {
	Link string `json:"link" binding:"required,url"`
}

// UploadByLink fetches a remote image server-side and stores it like a
// direct upload.
func (h HandlerSet) UploadByLink(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req uploadByLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photo, err := h.uploads.SaveFromLink(c.Request.Context(), claims.UserID, req.Link)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, storedPhotoResponse(photo))
}

func (h HandlerSet) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPhotoTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo_too_large"})
	case errors.Is(err, service.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_photo_type"})
	case errors.Is(err, service.ErrFetchFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "fetch_failed"})
	default:
		h.log.Error().Err(err).Msg("upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
	}
}
