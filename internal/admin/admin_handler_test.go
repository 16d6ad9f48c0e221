package admin_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-absensi/internal/admin"
	adminerrors "go-absensi/internal/admin/errors"
	adminMock "go-absensi/internal/admin/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := adminMock.NewMockService(ctrl)
	tokens := admin.NewTokenManager("secret", 24*time.Hour, nil)
	handler := admin.NewHandler(mockService, tokens, false)
	router := setupAdminRouter()
	router.POST("/login", handler.Login)

	t.Run("success sets cookie", func(t *testing.T) {
		body, _ := json.Marshal(admin.LoginRequest{Username: "admin", Password: "admin123"})

		mockService.EXPECT().
			Login(gomock.Any(), "admin", "admin123").
			Return(admin.LoginResponse{
				Admin:       admin.AdminSummary{ID: "a-1", Username: "admin"},
				AccessToken: "access-token",
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "access-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 86400, cookies[0].MaxAge)

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		data := res["data"].(map[string]any)
		assert.Equal(t, "access-token", data["accessToken"])
		assert.Equal(t, "admin", data["admin"].(map[string]any)["username"])
		assert.Equal(t, "Login berhasil", data["message"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(admin.LoginResponse{}, adminerrors.ErrInvalidCredentials)

		body, _ := json.Marshal(admin.LoginRequest{Username: "admin", Password: "nope"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "Username atau password salah", res["error"].(map[string]any)["message"])
	})

	t.Run("missing password", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"username": "admin"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	handler := admin.NewHandler(nil, nil, true)
	router := setupAdminRouter()
	router.POST("/logout", handler.Logout)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
}
