// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	svc      *ReviewService
	products *ProductService
	alice    *models.User
	bob      *models.User
	staff    *models.User
	product  *models.Product
}

func (s *ReviewServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.svc = NewReviewService(s.db)
	s.products = NewProductService(s.db, testConfig(), nil)
	s.alice = createTestUser(s.T(), s.db, "alice", false)
	s.bob = createTestUser(s.T(), s.db, "bob", false)
	s.staff = createTestUser(s.T(), s.db, "moderator", true)

	category, brand := createTestCatalog(s.T(), s.db)
	s.product = createTestProduct(s.T(), s.db, category, brand, "drill", "100.00", 10)
}

func (s *ReviewServiceTestSuite) TestCreateAndDuplicateConflict() {
	_, err := s.svc.Create(s.alice.ID, s.product.ID, &ReviewRequest{Rating: 4, Comment: "solid"})
	s.Require().NoError(err)

	_, err = s.svc.Create(s.alice.ID, s.product.ID, &ReviewRequest{Rating: 5})
	s.Require().Error(err)
	s.True(apperrors.IsConflict(err))
}

func (s *ReviewServiceTestSuite) TestRatingBounds() {
	_, err := s.svc.Create(s.alice.ID, s.product.ID, &ReviewRequest{Rating: 0})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))

	_, err = s.svc.Create(s.alice.ID, s.product.ID, &ReviewRequest{Rating: 6})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func (s *ReviewServiceTestSuite) TestAggregatesDerivedOnRead() {
	// No reviews yet: zero average, zero count
	product, err := s.products.GetByID(s.product.ID)
	s.Require().NoError(err)
	s.Zero(product.AverageRating)
	s.Zero(product.ReviewCount)

	_, err = s.svc.Create(s.alice.ID, s.product.ID, &ReviewRequest{Rating: 4})
	s.Require().NoError(err)
	_, err = s.svc.Create(s.bob.ID, s.product.ID, &ReviewRequest{Rating: 5})
	s.Require().NoError(err)

	product, err = s.products.GetByID(s.product.ID)
	s.Require().NoError(err)
	s.InDelta(4.5, product.AverageRating, 0.001)
	s.EqualValues(2, product.ReviewCount)
}

func (s *ReviewServiceTestSuite) TestVisibilityRules() {
	mine, err := s.svc.Create(s.alice.ID, s.product.ID, &ReviewRequest{Rating: 4, Comment: "mine"})
	s.Require().NoError(err)
	answered, err := s.svc.Create(s.bob.ID, s.product.ID, &ReviewRequest{Rating: 2, Comment: "noisy"})
	s.Require().NoError(err)
	_, err = s.svc.Respond(answered.ID, &AdminResponseRequest{AdminResponse: "we hear you"})
	s.Require().NoError(err)

	// Anonymous viewers see answered reviews only
	visible, err := s.svc.ListForProduct(s.product.ID, nil, false)
	s.Require().NoError(err)
	s.Len(visible, 1)
	s.Equal(answered.ID, visible[0].ID)

	// Authors additionally see their own unanswered review
	visible, err = s.svc.ListForProduct(s.product.ID, &s.alice.ID, false)
	s.Require().NoError(err)
	s.Len(visible, 2)
	_ = mine

	// Staff see everything
	visible, err = s.svc.ListForProduct(s.product.ID, nil, true)
	s.Require().NoError(err)
	s.Len(visible, 2)
}

func (s *ReviewServiceTestSuite) TestUpdatePermissions() {
	review, err := s.svc.Create(s.alice.ID, s.product.ID, &ReviewRequest{Rating: 3})
	s.Require().NoError(err)

	_, err = s.svc.Update(review.ID, s.bob.ID, false, &ReviewRequest{Rating: 1})
	s.Require().Error(err)
	s.True(apperrors.IsPermission(err))

	updated, err := s.svc.Update(review.ID, s.alice.ID, false, &ReviewRequest{Rating: 5, Comment: "upgraded"})
	s.Require().NoError(err)
	s.Equal(5, updated.Rating)
	// Authorship never moves
	s.Equal(s.alice.ID, updated.UserID)
	s.Equal(s.product.ID, updated.ProductID)
}

func (s *ReviewServiceTestSuite) TestDeletePermissions() {
	review, err := s.svc.Create(s.alice.ID, s.product.ID, &ReviewRequest{Rating: 3})
	s.Require().NoError(err)

	err = s.svc.Delete(review.ID, s.bob.ID, false)
	s.Require().Error(err)
	s.True(apperrors.IsPermission(err))

	s.NoError(s.svc.Delete(review.ID, s.staff.ID, true))
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
