package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/auth"
	autherrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	loginFn func(ctx context.Context, email, password string) (auth.TokenPairResponse, error)
	getMeFn func(ctx context.Context, userID string) (auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (auth.TokenPairResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenPairResponse, error) {
	return auth.TokenPairResponse{}, nil
}

func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (auth.AuthResponse, error) {
	return f.getMeFn(ctx, userID)
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	return auth.AuthResponse{}, nil
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (auth.TokenPairResponse, error) {
			return auth.TokenPairResponse{
				User:         auth.AuthResponse{Email: email},
				AccessToken:  "access",
				RefreshToken: "refresh",
			}, nil
		},
	}
	handler := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(
		http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"asha@example.com","password":"correct horse"}`),
	)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ok   bool                   `json:"ok"`
		Data auth.TokenPairResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Equal(t, "access", body.Data.AccessToken)

	cookies := w.Result().Cookies()
	names := make([]string, len(cookies))
	for i, cookie := range cookies {
		names[i] = cookie.Name
	}
	assert.Contains(t, names, "access_token")
	assert.Contains(t, names, "refresh_token")
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (auth.TokenPairResponse, error) {
			return auth.TokenPairResponse{}, autherrors.ErrInvalidCredentials
		},
	}
	handler := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(
		http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"asha@example.com","password":"wrong"}`),
	)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_Me_MissingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := auth.NewHandler(&fakeAuthService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
