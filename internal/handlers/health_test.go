package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"stayhub/internal/config"
)

type fakeDBPinger struct {
	err error
}

func (f fakeDBPinger) Ping(context.Context) error {
	return f.err
}

type fakeCachePinger struct {
	err error
}

func (f fakeCachePinger) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	}
	return cmd
}

func newHealthRouter(t *testing.T, dbErr, cacheErr error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := HandlerSet{
		log:   zerolog.Nop(),
		cfg:   &config.AppConfig{Environment: "test"},
		db:    fakeDBPinger{err: dbErr},
		cache: fakeCachePinger{err: cacheErr},
	}

	r := gin.New()
	r.GET("/healthz", h.Health)
	return r
}

func TestHealth_AllComponentsUp(t *testing.T) {
	r := newHealthRouter(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHealth_DegradedAnswers503(t *testing.T) {
	cases := []struct {
		name     string
		dbErr    error
		cacheErr error
	}{
		{"database down", errors.New("conn refused"), nil},
		{"cache down", nil, errors.New("conn refused")},
		{"both down", errors.New("conn refused"), errors.New("conn refused")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newHealthRouter(t, tc.dbErr, tc.cacheErr)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			require.Contains(t, w.Body.String(), `"status":"degraded"`)
		})
	}
}
