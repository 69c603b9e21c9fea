// internal/services/wishlist_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
)

type WishlistService struct {
	db *gorm.DB
}

// WishlistAddResult reports whether the product was newly added; adding
// an already-present product is a no-op, not an error.
type WishlistAddResult struct {
	Wishlist *models.Wishlist `json:"wishlist"`
	Added    bool             `json:"added"`
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

func (s *WishlistService) GetOrCreate(userID uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := s.db.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("wishlist_items.created_at desc")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Images").
		First(&wishlist).Error
	if err == nil {
		return &wishlist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	wishlist = models.Wishlist{UserID: userID}
	if err := s.db.Create(&wishlist).Error; err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}
	return &wishlist, nil
}

func (s *WishlistService) AddProduct(userID, productID uuid.UUID) (*WishlistAddResult, error) {
	wishlist, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !product.IsAvailable {
		return nil, apperrors.Validation("product_id", "product is not available")
	}

	var existing models.WishlistItem
	err = s.db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).First(&existing).Error
	if err == nil {
		return &WishlistAddResult{Wishlist: wishlist, Added: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	item := &models.WishlistItem{
		WishlistID: wishlist.ID,
		ProductID:  productID,
	}
	if err := s.db.Create(item).Error; err != nil {
		// Concurrent add of the same product stays idempotent
		if translated := translateUniqueViolation(err, ""); apperrors.IsConflict(translated) {
			wishlist, err = s.GetOrCreate(userID)
			if err != nil {
				return nil, err
			}
			return &WishlistAddResult{Wishlist: wishlist, Added: false}, nil
		}
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	wishlist, err = s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return &WishlistAddResult{Wishlist: wishlist, Added: true}, nil
}

func (s *WishlistService) RemoveProduct(userID, productID uuid.UUID) (*models.Wishlist, error) {
	wishlist, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	result := s.db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove from wishlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("wishlist item")
	}

	return s.GetOrCreate(userID)
}
