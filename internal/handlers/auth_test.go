package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"stayhub/internal/config"
	"stayhub/internal/models"
	"stayhub/internal/repository"
	"stayhub/internal/security"
	"stayhub/internal/service"
)

type memoryUserStore struct {
	byEmail map[string]models.User
	byID    map[string]models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{
		byEmail: make(map[string]models.User),
		byID:    make(map[string]models.User),
	}
}

func (s *memoryUserStore) Create(_ context.Context, user models.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *memoryUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			TokenSecret: "test-secret",
			TokenTTL:    time.Hour,
			CookieName:  "token",
		},
		Listings: config.ListingsConfig{PublicRead: true},
	}

	tokens := security.NewTokenService(cfg.Security.TokenSecret, cfg.Security.TokenTTL)
	h := HandlerSet{
		log:    zerolog.Nop(),
		cfg:    cfg,
		tokens: tokens,
		auth:   service.NewAuthService(newMemoryUserStore(), tokens, zerolog.Nop()),
	}

	r := gin.New()
	h.Register(r.Group("/api"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Jo","email":"jo@example.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var registered struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.ID)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"jo@example.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.True(t, cookie.HttpOnly)
	require.NotEmpty(t, cookie.Value)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/profile", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, registered.ID, profile.ID)
	require.Equal(t, "Jo", profile.Name)
	require.Equal(t, "jo@example.com", profile.Email)
}

func TestProfile_AnonymousIsNull(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Jo","email":"jo@example.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Imposter","email":"jo@example.com","password":"other1"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "email_taken")
}

func TestLogin_Failures(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Jo","email":"jo@example.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"nobody@example.com","password":"pw123"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"jo@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.Empty(t, cookie.Value)
	require.Less(t, cookie.MaxAge, 0)
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/listings", `{"title":"x"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/bookings", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/uploads/by-link", `{"link":"https://example.com/a.png"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
