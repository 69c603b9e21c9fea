// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type AdminResponseRequest struct {
	AdminResponse string `json:"admin_response" validate:"required"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ListForProduct applies the moderation rule: staff see everything,
// everyone else sees admin-answered reviews plus their own.
func (s *ReviewService) ListForProduct(productID uuid.UUID, viewerID *uuid.UUID, isStaff bool) ([]models.Review, error) {
	query := s.db.Where("product_id = ?", productID).
		Preload("User").
		Order("created_at desc")

	if !isStaff {
		if viewerID != nil {
			query = query.Where("admin_response <> '' OR user_id = ?", *viewerID)
		} else {
			query = query.Where("admin_response <> ''")
		}
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) Get(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("User").First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &review, nil
}

// Create records the user's single review of a product. A second
// attempt is a conflict; the caller must update the existing one.
func (s *ReviewService) Create(userID, productID uuid.UUID, req *ReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.Review
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("you have already reviewed this product")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, translateUniqueViolation(err, "you have already reviewed this product")
	}

	s.db.Preload("User").First(review, "id = ?", review.ID)
	return review, nil
}

// Update edits rating and comment only; the author and product binding
// never changes.
func (s *ReviewService) Update(id, actorID uuid.UUID, isStaff bool, req *ReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if review.UserID != actorID && !isStaff {
		return nil, apperrors.Permission("update review")
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	if err := s.db.Save(review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) Delete(id, actorID uuid.UUID, isStaff bool) error {
	review, err := s.Get(id)
	if err != nil {
		return err
	}
	if review.UserID != actorID && !isStaff {
		return apperrors.Permission("delete review")
	}

	if err := s.db.Delete(&models.Review{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// Respond attaches the staff answer that makes a review publicly
// visible.
func (s *ReviewService) Respond(id uuid.UUID, req *AdminResponseRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	review.AdminResponse = req.AdminResponse
	if err := s.db.Save(review).Error; err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}
	return review, nil
}
