package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-absensi/internal/admin"
	"go-absensi/internal/middleware"
	"go-absensi/internal/shared/clock"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/i18n"
	"go-absensi/internal/shared/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Message
}

func TestAdminAuth(t *testing.T) {
	tokens := admin.NewTokenManager("secret", time.Hour, clock.System)
	acc := &admin.Admin{ID: uuid.New(), Username: "admin"}
	token, _, err := tokens.Issue(acc)
	assert.NoError(t, err)

	router := setupRouter()
	router.GET("/protected", middleware.AdminAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"gin": c.GetString(middleware.AdminIDKey),
			"ctx": contextutil.GetAdminID(c.Request.Context()),
		})
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, acc.ID.String(), body["gin"])
		assert.Equal(t, acc.ID.String(), body["ctx"])
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenName, Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token tidak ditemukan", errorMessage(t, w))
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLanguage(t *testing.T) {
	router := setupRouter()
	router.Use(middleware.Language())
	router.GET("/lang", func(c *gin.Context) {
		tag := contextutil.GetLanguage(c.Request.Context(), i18n.Default().Fallback())
		c.String(http.StatusOK, tag.String())
	})

	cases := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"default", "/lang", "", "id"},
		{"accept-language", "/lang", "en-US,en;q=0.9", "en"},
		{"query wins", "/lang?lang=id", "en-US", "id"},
		{"unsupported falls back", "/lang", "fr-FR", "id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Accept-Language", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	router := setupRouter()
	router.POST("/submit", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	// IP lain punya kuota sendiri
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestContextLogger(t *testing.T) {
	router := setupRouter()
	router.Use(middleware.ContextLogger(zap.NewNop()))
	router.GET("/ctx", func(c *gin.Context) {
		meta := contextutil.ExtractMetadata(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"rid": meta.RequestID, "ua": meta.UserAgent})
	})

	t.Run("propagates incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-123")
		req.Header.Set("User-Agent", "test-agent")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "rid-123", w.Header().Get(middleware.RequestIDHeader))
		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "rid-123", body["rid"])
		assert.Equal(t, "test-agent", body["ua"])
	})

	t.Run("generates request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Header().Get(middleware.RequestIDHeader))
		assert.NoError(t, err)
	})
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	router := setupRouter()
	router.Use(middleware.Metrics(m))
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodGet, "/items/"+id, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}
