// internal/handlers/auth_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/services"
	"github.com/technomart/shop-backend/internal/utils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	db           *gorm.DB
	router       *gin.Engine
	refreshToken string
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.db = openTestDB(s.T())
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	authService := services.NewAuthService(s.db, cfg)
	handler := NewAuthHandler(authService)

	s.router = gin.New()
	s.router.POST("/auth/refresh", handler.Refresh)

	resp, err := authService.Register(&services.RegisterRequest{
		Username: "buyer",
		Email:    "buyer@example.com",
		Password: "Sup3rSecret!",
	})
	s.Require().NoError(err)
	s.refreshToken = resp.RefreshToken
}

func (s *AuthHandlerTestSuite) refresh(token string) *httptest.ResponseRecorder {
	body, err := json.Marshal(gin.H{"refresh_token": token})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) TestRefreshIssuesNewTokens() {
	w := s.refresh(s.refreshToken)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Auth struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
			} `json:"auth"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.NotEmpty(resp.Data.Auth.AccessToken)
	s.NotEmpty(resp.Data.Auth.RefreshToken)
}

func (s *AuthHandlerTestSuite) TestRefreshInvalidTokenIsUnauthorized() {
	w := s.refresh("not-a-token")
	s.Equal(http.StatusUnauthorized, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Success)
	s.Equal("UNAUTHORIZED", resp.Error.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
