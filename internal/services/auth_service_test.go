// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	s.svc = NewAuthService(s.db, cfg)
}

func (s *AuthServiceTestSuite) register(username string) *AuthResponse {
	resp, err := s.svc.Register(&RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "Sup3rSecret!",
	})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceTestSuite) TestRegisterProvisionsAccount() {
	resp := s.register("alice")
	s.NotEmpty(resp.AccessToken)
	s.NotEmpty(resp.RefreshToken)
	s.Equal("Bearer", resp.TokenType)

	// Profile, cart, and wishlist all exist right after registration
	var profile models.Profile
	s.Require().NoError(s.db.First(&profile, "user_id = ?", resp.User.ID).Error)
	var cart models.Cart
	s.Require().NoError(s.db.First(&cart, "user_id = ?", resp.User.ID).Error)
	var wishlist models.Wishlist
	s.Require().NoError(s.db.First(&wishlist, "user_id = ?", resp.User.ID).Error)

	s.False(resp.User.IsStaff)
	s.True(resp.User.IsActive)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateUsernameIsConflict() {
	s.register("alice")

	_, err := s.svc.Register(&RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "Sup3rSecret!",
	})
	s.Require().Error(err)
	s.True(apperrors.IsConflict(err))
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmailIsConflict() {
	s.register("alice")

	_, err := s.svc.Register(&RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "Sup3rSecret!",
	})
	s.Require().Error(err)
	s.True(apperrors.IsConflict(err))
}

func (s *AuthServiceTestSuite) TestRegisterRejectsWeakPassword() {
	_, err := s.svc.Register(&RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password",
	})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func (s *AuthServiceTestSuite) TestLogin() {
	s.register("alice")

	resp, err := s.svc.Login(&LoginRequest{Username: "alice", Password: "Sup3rSecret!"})
	s.Require().NoError(err)
	s.NotEmpty(resp.AccessToken)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	s.Require().NoError(err)
	s.Equal("alice", claims.Username)
	s.False(claims.IsStaff)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, "username = ?", "alice").Error)
	s.NotNil(stored.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	s.register("alice")

	_, err := s.svc.Login(&LoginRequest{Username: "alice", Password: "Wr0ngSecret!"})
	s.Require().Error(err)
	s.True(apperrors.IsPermission(err))
}

func (s *AuthServiceTestSuite) TestLoginUnknownUserLooksLikeBadPassword() {
	_, err := s.svc.Login(&LoginRequest{Username: "ghost", Password: "Sup3rSecret!"})
	s.Require().Error(err)
	s.True(apperrors.IsPermission(err))
}

func (s *AuthServiceTestSuite) TestLoginDeactivatedAccount() {
	resp := s.register("alice")
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("is_active", false).Error)

	_, err := s.svc.Login(&LoginRequest{Username: "alice", Password: "Sup3rSecret!"})
	s.Require().Error(err)
	s.True(apperrors.IsPermission(err))
}

func (s *AuthServiceTestSuite) TestRefreshToken() {
	resp := s.register("alice")

	refreshed, err := s.svc.RefreshToken(resp.RefreshToken)
	s.Require().NoError(err)
	s.NotEmpty(refreshed.AccessToken)
	s.Equal(resp.User.ID, refreshed.User.ID)

	_, err = s.svc.RefreshToken("not-a-token")
	s.Require().Error(err)
	s.True(apperrors.IsPermission(err))

	// An access token is not accepted as a refresh token
	_, err = s.svc.RefreshToken(resp.AccessToken)
	s.Require().Error(err)
	s.True(apperrors.IsPermission(err))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
