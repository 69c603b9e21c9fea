// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
)

type UserServiceTestSuite struct {
	suite.Suite
	db   *gorm.DB
	svc  *UserService
	user *models.User
}

func (s *UserServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.svc = NewUserService(s.db)
	s.user = createTestUser(s.T(), s.db, "alice", false)
}

func (s *UserServiceTestSuite) TestGetProfileIsLazy() {
	// No profile row yet; the first read creates one
	profile, err := s.svc.GetProfile(s.user.ID)
	s.Require().NoError(err)

	again, err := s.svc.GetProfile(s.user.ID)
	s.Require().NoError(err)
	s.Equal(profile.ID, again.ID)
}

func (s *UserServiceTestSuite) TestUpdateProfilePartial() {
	first := "Alice"
	address := "Main St 1"
	user, err := s.svc.UpdateProfile(s.user.ID, &UpdateProfileRequest{
		FirstName:       &first,
		DeliveryAddress: &address,
	})
	s.Require().NoError(err)
	s.Equal("Alice", user.FirstName)
	s.Equal("Main St 1", user.Profile.DeliveryAddress)

	// Untouched fields survive a later partial update
	phone := "+7 915 123-45-67"
	user, err = s.svc.UpdateProfile(s.user.ID, &UpdateProfileRequest{PhoneNumber: &phone})
	s.Require().NoError(err)
	s.Equal("Alice", user.FirstName)
	s.Equal("Main St 1", user.Profile.DeliveryAddress)
	s.Equal(phone, user.Profile.PhoneNumber)
}

func (s *UserServiceTestSuite) TestUpdateProfileRejectsBadPhone() {
	phone := "abc"
	_, err := s.svc.UpdateProfile(s.user.ID, &UpdateProfileRequest{PhoneNumber: &phone})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func (s *UserServiceTestSuite) TestSetAvatar() {
	s.Require().NoError(s.svc.SetAvatar(s.user.ID, "http://cdn/avatar.png"))

	profile, err := s.svc.GetProfile(s.user.ID)
	s.Require().NoError(err)
	s.Equal("http://cdn/avatar.png", profile.AvatarURL)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
