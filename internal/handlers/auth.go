package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/middleware"
	"stayhub/internal/models"
	"stayhub/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "email_taken",
				"field": "email",
			})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Msg("register failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		}
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown_email"})
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "wrong_password"})
		default:
			h.log.Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		}
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, toUserResponse(result.User))
}

// Logout clears the session cookie. Tokens are stateless so there is nothing
// to revoke server-side.
func (h HandlerSet) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.Security.CookieName, "", -1, "/", "", h.cfg.Environment == "production", true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Profile answers the authenticated identity's fresh profile, or JSON null
// for an anonymous caller.
func (h HandlerSet) Profile(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Token outlived the account.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown_user"})
			return
		}
		h.log.Error().Err(err).Msg("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h HandlerSet) setSessionCookie(c *gin.Context, token string) {
	maxAge := 0 // session cookie when tokens never expire
	if ttl := h.tokens.TTL(); ttl > 0 {
		maxAge = int(ttl.Seconds())
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.Security.CookieName,
		token,
		maxAge,
		"/",
		"",
		h.cfg.Environment == "production",
		true, // httpOnly
	)
}
