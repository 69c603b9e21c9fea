// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *CartService
	user    *models.User
	product *models.Product
}

func (s *CartServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.svc = NewCartService(s.db)
	s.user = createTestUser(s.T(), s.db, "shopper", false)

	category, brand := createTestCatalog(s.T(), s.db)
	s.product = createTestProduct(s.T(), s.db, category, brand, "drill", "100.00", 10)
}

func (s *CartServiceTestSuite) TestGetOrCreateIsLazy() {
	// The fixture user already has a cart; a fresh user gets one created
	// on first access and keeps the same one afterwards.
	fresh := &models.User{Username: "fresh", Email: "fresh@example.com", IsActive: true}
	s.Require().NoError(fresh.SetPassword("Sup3rSecret!"))
	s.Require().NoError(s.db.Create(fresh).Error)

	first, err := s.svc.GetOrCreate(fresh.ID)
	s.Require().NoError(err)
	second, err := s.svc.GetOrCreate(fresh.ID)
	s.Require().NoError(err)
	s.Equal(first.Cart.ID, second.Cart.ID)
}

func (s *CartServiceTestSuite) TestAddItem() {
	resp, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 2})
	s.Require().NoError(err)
	s.Len(resp.Cart.Items, 1)
	s.Equal(2, resp.ItemCount)
	s.Equal("200", resp.TotalPrice.String())
}

func (s *CartServiceTestSuite) TestAddItemDuplicateIsValidationError() {
	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)

	_, err = s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
	s.False(apperrors.IsConflict(err))
}

func (s *CartServiceTestSuite) TestAddItemRejectsOverStock() {
	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 11})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func (s *CartServiceTestSuite) TestAddItemRejectsUnavailableProduct() {
	s.Require().NoError(s.db.Model(s.product).Update("is_available", false).Error)

	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func (s *CartServiceTestSuite) TestSetQuantityReplaces() {
	resp, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 2})
	s.Require().NoError(err)
	itemID := resp.Cart.Items[0].ID

	resp, err = s.svc.SetQuantity(s.user.ID, itemID, &UpdateQuantityRequest{Quantity: 5})
	s.Require().NoError(err)
	s.Equal(5, resp.Cart.Items[0].Quantity)

	_, err = s.svc.SetQuantity(s.user.ID, itemID, &UpdateQuantityRequest{Quantity: 11})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func (s *CartServiceTestSuite) TestSetQuantityOnForeignItemIsNotFound() {
	resp, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	itemID := resp.Cart.Items[0].ID

	other := createTestUser(s.T(), s.db, "other", false)
	_, err = s.svc.SetQuantity(other.ID, itemID, &UpdateQuantityRequest{Quantity: 2})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *CartServiceTestSuite) TestTotalTracksCurrentPrice() {
	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 2})
	s.Require().NoError(err)

	// Price change is reflected immediately: cart totals are live
	s.Require().NoError(s.db.Model(s.product).Update("price", "150.00").Error)

	resp, err := s.svc.GetOrCreate(s.user.ID)
	s.Require().NoError(err)
	s.Equal("300", resp.TotalPrice.String())
}

func (s *CartServiceTestSuite) TestRemoveAndClear() {
	resp, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	itemID := resp.Cart.Items[0].ID

	resp, err = s.svc.RemoveItem(s.user.ID, itemID)
	s.Require().NoError(err)
	s.Empty(resp.Cart.Items)
	s.True(resp.TotalPrice.IsZero())

	_, err = s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 3})
	s.Require().NoError(err)
	resp, err = s.svc.Clear(s.user.ID)
	s.Require().NoError(err)
	s.Empty(resp.Cart.Items)
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
