// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartResponse carries the cart with its live total. Item totals use
// current product prices, so the sum drifts with price changes.
type CartResponse struct {
	Cart       *models.Cart    `json:"cart"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemCount  int             `json:"item_count"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreate returns the user's cart, creating it lazily. Every user
// has exactly one.
func (s *CartService) GetOrCreate(userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.loadCart(userID)
	if err != nil {
		return nil, err
	}
	return s.respond(cart), nil
}

func (s *CartService) loadCart(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at asc")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Images").
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	cart = models.Cart{UserID: userID}
	if err := s.db.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &cart, nil
}

func (s *CartService) respond(cart *models.Cart) *CartResponse {
	count := 0
	for i := range cart.Items {
		count += cart.Items[i].Quantity
	}
	return &CartResponse{
		Cart:       cart,
		TotalPrice: cart.TotalPrice(),
		ItemCount:  count,
	}
}

// AddItem puts a new line in the cart. A line for the same product
// already existing is rejected as invalid input; the caller adjusts
// its quantity instead.
func (s *CartService) AddItem(userID uuid.UUID, req *AddCartItemRequest) (*CartResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	cart, err := s.loadCart(userID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.IsAvailable {
		return nil, apperrors.Validation("product_id", "product is not available")
	}
	if req.Quantity > product.Stock {
		return nil, apperrors.Validation("quantity", "quantity exceeds available stock")
	}

	var existing models.CartItem
	err = s.db.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&existing).Error
	if err == nil {
		return nil, apperrors.Validation("product_id", "product is already in the cart")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.db.Create(item).Error; err != nil {
		// A lost race on the (cart_id, product_id) unique index is the same
		// client input error as the pre-check above.
		translated := translateUniqueViolation(err, "product is already in the cart")
		if apperrors.IsConflict(translated) {
			return nil, apperrors.Validation("product_id", "product is already in the cart")
		}
		return nil, translated
	}

	return s.GetOrCreate(userID)
}

// SetQuantity replaces the line's quantity; it never adds to it.
func (s *CartService) SetQuantity(userID, itemID uuid.UUID, req *UpdateQuantityRequest) (*CartResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", item.ProductID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if req.Quantity > product.Stock {
		return nil, apperrors.Validation("quantity", "quantity exceeds available stock")
	}

	if err := s.db.Model(item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return s.GetOrCreate(userID)
}

func (s *CartService) RemoveItem(userID, itemID uuid.UUID) (*CartResponse, error) {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}

	return s.GetOrCreate(userID)
}

func (s *CartService) Clear(userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.loadCart(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	return s.GetOrCreate(userID)
}

// ownedItem resolves the line through the actor's cart; other users'
// lines are indistinguishable from missing ones.
func (s *CartService) ownedItem(userID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &item, nil
}
