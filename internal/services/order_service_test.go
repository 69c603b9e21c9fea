// internal/services/order_service_test.go
package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/utils"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	svc   *OrderService
	carts *CartService
	user  *models.User
	staff *models.User

	drill *models.Product
	saw   *models.Product
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.svc = NewOrderService(s.db)
	s.carts = NewCartService(s.db)
	s.user = createTestUser(s.T(), s.db, "buyer", false)
	s.staff = createTestUser(s.T(), s.db, "manager", true)

	category, brand := createTestCatalog(s.T(), s.db)
	s.drill = createTestProduct(s.T(), s.db, category, brand, "drill", "100.00", 10)
	s.saw = createTestProduct(s.T(), s.db, category, brand, "saw", "50.00", 10)
}

func (s *OrderServiceTestSuite) fillCart() *CartResponse {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.drill.ID, Quantity: 2})
	s.Require().NoError(err)
	resp, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.saw.ID, Quantity: 1})
	s.Require().NoError(err)
	return resp
}

func (s *OrderServiceTestSuite) checkout() *models.Order {
	cart := s.fillCart()
	order, err := s.svc.CreateFromCart(s.user.ID, &CheckoutRequest{
		CartID:          cart.Cart.ID,
		ShippingAddress: "12 Forge Street",
		PhoneNumber:     "+7 900 123-45-67",
	})
	s.Require().NoError(err)
	return order
}

func (s *OrderServiceTestSuite) TestCheckoutCopiesItemsAndEmptiesCart() {
	order := s.checkout()

	s.Len(order.Items, 2)
	s.Equal("250", order.TotalAmount.String())
	s.Equal(models.OrderStatusPending, order.Status)

	// 2 x 100.00 + 1 x 50.00, frozen at checkout time
	cart, err := s.carts.GetOrCreate(s.user.ID)
	s.Require().NoError(err)
	s.Empty(cart.Cart.Items)
}

func (s *OrderServiceTestSuite) TestCheckoutFailureRollsBackOrderAndKeepsCart() {
	cart := s.fillCart()

	// Sabotage item insertion so the transaction fails after the order
	// row is written.
	s.Require().NoError(s.db.Migrator().DropTable(&models.OrderItem{}))

	_, err := s.svc.CreateFromCart(s.user.ID, &CheckoutRequest{
		CartID:          cart.Cart.ID,
		ShippingAddress: "12 Forge Street",
		PhoneNumber:     "+7 900 123-45-67",
	})
	s.Require().Error(err)

	var orderCount int64
	s.Require().NoError(s.db.Model(&models.Order{}).Count(&orderCount).Error)
	s.Zero(orderCount)

	var itemCount int64
	s.Require().NoError(s.db.Model(&models.CartItem{}).Where("cart_id = ?", cart.Cart.ID).Count(&itemCount).Error)
	s.EqualValues(2, itemCount)
}

func (s *OrderServiceTestSuite) TestCheckoutEmptyCartRejected() {
	cart, err := s.carts.GetOrCreate(s.user.ID)
	s.Require().NoError(err)

	_, err = s.svc.CreateFromCart(s.user.ID, &CheckoutRequest{
		CartID:          cart.Cart.ID,
		ShippingAddress: "12 Forge Street",
		PhoneNumber:     "+7 900 123-45-67",
	})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func (s *OrderServiceTestSuite) TestCheckoutForeignCartIsNotFound() {
	cart := s.fillCart()

	_, err := s.svc.CreateFromCart(s.staff.ID, &CheckoutRequest{
		CartID:          cart.Cart.ID,
		ShippingAddress: "12 Forge Street",
		PhoneNumber:     "+7 900 123-45-67",
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *OrderServiceTestSuite) TestOrderNumberFormat() {
	order := s.checkout()
	s.Regexp(regexp.MustCompile(`^ORD-\d{8}-[0-9a-f]{8}$`), order.OrderNumber)
}

func (s *OrderServiceTestSuite) TestFrozenPriceSurvivesProductPriceChange() {
	order := s.checkout()

	s.Require().NoError(s.db.Model(s.drill).Update("price", "999.99").Error)

	reloaded, err := s.svc.Get(order.ID, s.user.ID, false)
	s.Require().NoError(err)
	s.Equal("250", reloaded.TotalAmount.String())
	for _, item := range reloaded.Items {
		if item.ProductID == s.drill.ID {
			s.Equal("100", item.Price.String())
		}
	}

	// Recomputing uses the frozen line prices, not the live product
	recomputed, err := s.svc.RecomputeTotal(order.ID)
	s.Require().NoError(err)
	s.Equal("250", recomputed.TotalAmount.String())
}

func (s *OrderServiceTestSuite) TestCancelFromEachState() {
	cancellable := map[models.OrderStatus]bool{
		models.OrderStatusPending:    true,
		models.OrderStatusProcessing: true,
		models.OrderStatusShipped:    false,
		models.OrderStatusDelivered:  false,
		models.OrderStatusCancelled:  false,
		models.OrderStatusRefunded:   false,
	}

	for status, ok := range cancellable {
		order := s.checkout()
		s.Require().NoError(s.db.Model(order).Update("status", status).Error)

		_, err := s.svc.Cancel(order.ID, s.user.ID, false)
		if ok {
			s.NoError(err, "expected cancel from %s to succeed", status)
		} else {
			s.Error(err, "expected cancel from %s to fail", status)
			s.True(apperrors.IsInvalidTransition(err))
		}
	}
}

func (s *OrderServiceTestSuite) TestCancelByNonOwnerIsDenied() {
	order := s.checkout()
	other := createTestUser(s.T(), s.db, "stranger", false)

	_, err := s.svc.Cancel(order.ID, other.ID, false)
	s.Require().Error(err)
	s.True(apperrors.IsPermission(err))

	// Reading someone else's order still looks like a missing order
	_, err = s.svc.Get(order.ID, other.ID, false)
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))

	// Staff may cancel on the customer's behalf
	_, err = s.svc.Cancel(order.ID, s.staff.ID, true)
	s.NoError(err)
}

func (s *OrderServiceTestSuite) TestUpdateStatusValidatesEnumOnly() {
	order := s.checkout()

	_, err := s.svc.UpdateStatus(order.ID, &UpdateStatusRequest{Status: "teleported"})
	s.Require().Error(err)
	s.True(apperrors.IsInvalidStatus(err))

	// Any recognized value is accepted, including jumps
	updated, err := s.svc.UpdateStatus(order.ID, &UpdateStatusRequest{Status: models.OrderStatusDelivered})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusDelivered, updated.Status)

	// Even transitions out of terminal states are allowed for staff
	updated, err = s.svc.UpdateStatus(order.ID, &UpdateStatusRequest{Status: models.OrderStatusRefunded})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusRefunded, updated.Status)
}

func (s *OrderServiceTestSuite) TestListScoping() {
	s.checkout()

	otherBuyer := createTestUser(s.T(), s.db, "buyer2", false)
	_, err := s.carts.AddItem(otherBuyer.ID, &AddCartItemRequest{ProductID: s.saw.ID, Quantity: 1})
	s.Require().NoError(err)
	otherCart, err := s.carts.GetOrCreate(otherBuyer.ID)
	s.Require().NoError(err)
	_, err = s.svc.CreateFromCart(otherBuyer.ID, &CheckoutRequest{
		CartID:          otherCart.Cart.ID,
		ShippingAddress: "3 Mill Road",
		PhoneNumber:     "+7 900 222-33-44",
	})
	s.Require().NoError(err)

	params := utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}

	mine, err := s.svc.List(s.user.ID, false, OrderFilters{}, params)
	s.Require().NoError(err)
	s.EqualValues(1, mine.Total)

	all, err := s.svc.List(s.staff.ID, true, OrderFilters{}, params)
	s.Require().NoError(err)
	s.EqualValues(2, all.Total)

	pending := models.OrderStatusPending
	filtered, err := s.svc.List(s.staff.ID, true, OrderFilters{Status: &pending}, params)
	s.Require().NoError(err)
	s.EqualValues(2, filtered.Total)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
