// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/cache"
	"github.com/technomart/shop-backend/internal/config"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/utils"
)

// CatalogService manages the taxonomy around products: categories,
// brands, tags, and the weighted product-tag links.
type CatalogService struct {
	db    *gorm.DB
	cfg   *config.Config
	cache *cache.Cache
}

type CategoryRequest struct {
	Name     string     `json:"name" validate:"required,max=80"`
	Slug     string     `json:"slug" validate:"required,slug"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type BrandRequest struct {
	Name            string `json:"name" validate:"required,max=80"`
	Slug            string `json:"slug" validate:"required,slug"`
	OfficialWebsite string `json:"official_website" validate:"omitempty,url"`
	Description     string `json:"description"`
}

type TagRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Description string `json:"description"`
}

type AttachTagRequest struct {
	TagID           uuid.UUID `json:"tag_id" validate:"required"`
	Weight          int       `json:"weight" validate:"omitempty,min=1,max=10"`
	IsAutoGenerated bool      `json:"is_auto_generated"`
}

// CategoryWithCount is the cached shape of the category list annotated
// with how many available products each category holds.
type CategoryWithCount struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	ParentID     *uuid.UUID `json:"parent_id"`
	ProductCount int64      `json:"product_count"`
}

func NewCatalogService(db *gorm.DB, cfg *config.Config, c *cache.Cache) *CatalogService {
	return &CatalogService{db: db, cfg: cfg, cache: c}
}

// --- Categories ---

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return categories, nil
}

// ListMainCategories returns the roots of the tree with their direct
// children preloaded.
func (s *CatalogService) ListMainCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("parent_id IS NULL").
		Preload("Children").
		Order("name asc").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return categories, nil
}

// ListCategoriesWithCounts serves the annotated category list through
// the cache; the entry expires after ten minutes or on product writes.
func (s *CatalogService) ListCategoriesWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	var cached []CategoryWithCount
	if s.cache.GetJSON(ctx, cache.KeyCategoriesWithCounts, &cached) {
		return cached, nil
	}

	var results []CategoryWithCount
	err := s.db.Model(&models.Category{}).
		Select(`categories.id, categories.name, categories.slug, categories.parent_id,
			(SELECT COUNT(*) FROM products
			 WHERE products.category_id = categories.id AND products.is_available = ?) AS product_count`, true).
		Order("categories.name asc").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.cache.SetJSON(ctx, cache.KeyCategoriesWithCounts, results, s.cfg.Cache.CategoriesWithCountsTTL)
	return results, nil
}

func (s *CatalogService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Children").First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	if req.ParentID != nil {
		if _, err := s.GetCategory(*req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, translateUniqueViolation(err, "category with this name or slug already exists")
	}

	s.cache.Delete(ctx, cache.KeyCategoriesWithCounts)
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, apperrors.Validation("parent_id", "category cannot be its own parent")
		}
		if _, err := s.GetCategory(*req.ParentID); err != nil {
			return nil, err
		}
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.ParentID = req.ParentID
	if err := s.db.Save(category).Error; err != nil {
		return nil, translateUniqueViolation(err, "category with this name or slug already exists")
	}

	s.cache.Delete(ctx, cache.KeyCategoriesWithCounts)
	return category, nil
}

// DeleteCategory removes the category together with its whole subtree.
// Products referencing any category in the subtree block the delete.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}

	var productCount int64
	subtree := s.collectSubtreeIDs(category)
	if err := s.db.Model(&models.Product{}).Where("category_id IN ?", subtree).Count(&productCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if productCount > 0 {
		return apperrors.Conflict("category still has products and cannot be deleted")
	}

	if err := s.db.Delete(&models.Category{}, "id IN ?", subtree).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.cache.Delete(ctx, cache.KeyCategoriesWithCounts)
	return nil
}

func (s *CatalogService) collectSubtreeIDs(root *models.Category) []uuid.UUID {
	ids := []uuid.UUID{root.ID}
	queue := []uuid.UUID{root.ID}
	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]

		var children []models.Category
		if err := s.db.Where("parent_id = ?", parentID).Find(&children).Error; err != nil {
			break
		}
		for _, child := range children {
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return ids
}

// --- Brands ---

func (s *CatalogService) ListBrands() ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.db.Order("name asc").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return brands, nil
}

func (s *CatalogService) GetBrand(id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("brand")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &brand, nil
}

func (s *CatalogService) CreateBrand(req *BrandRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	brand := &models.Brand{
		Name:            req.Name,
		Slug:            req.Slug,
		OfficialWebsite: req.OfficialWebsite,
		Description:     req.Description,
	}
	if err := s.db.Create(brand).Error; err != nil {
		return nil, translateUniqueViolation(err, "brand with this name or slug already exists")
	}
	return brand, nil
}

func (s *CatalogService) UpdateBrand(id uuid.UUID, req *BrandRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	brand, err := s.GetBrand(id)
	if err != nil {
		return nil, err
	}

	brand.Name = req.Name
	brand.Slug = req.Slug
	brand.OfficialWebsite = req.OfficialWebsite
	brand.Description = req.Description
	if err := s.db.Save(brand).Error; err != nil {
		return nil, translateUniqueViolation(err, "brand with this name or slug already exists")
	}
	return brand, nil
}

func (s *CatalogService) DeleteBrand(id uuid.UUID) error {
	if _, err := s.GetBrand(id); err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("brand_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if productCount > 0 {
		return apperrors.Conflict("brand still has products and cannot be deleted")
	}

	if err := s.db.Delete(&models.Brand{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return nil
}

// --- Tags ---

func (s *CatalogService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return tags, nil
}

func (s *CatalogService) GetTag(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tag")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tag, nil
}

func (s *CatalogService) CreateTag(req *TagRequest) (*models.Tag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	tag := &models.Tag{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Color != "" {
		tag.Color = req.Color
	}
	if err := s.db.Create(tag).Error; err != nil {
		return nil, translateUniqueViolation(err, "tag with this name already exists")
	}
	return tag, nil
}

func (s *CatalogService) UpdateTag(id uuid.UUID, req *TagRequest) (*models.Tag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	tag, err := s.GetTag(id)
	if err != nil {
		return nil, err
	}

	tag.Name = req.Name
	tag.Description = req.Description
	if req.Color != "" {
		tag.Color = req.Color
	}
	if err := s.db.Save(tag).Error; err != nil {
		return nil, translateUniqueViolation(err, "tag with this name already exists")
	}
	return tag, nil
}

func (s *CatalogService) DeleteTag(id uuid.UUID) error {
	if _, err := s.GetTag(id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Tag{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// --- Product tag relationships ---

// AttachTag links a tag to a product with a relevance weight. A product
// carries each tag at most once.
func (s *CatalogService) AttachTag(productID uuid.UUID, addedByID *uuid.UUID, req *AttachTagRequest) (*models.ProductTagRelationship, error) {
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
	if _, err := s.GetTag(req.TagID); err != nil {
		return nil, err
	}

	var existing models.ProductTagRelationship
	err := s.db.Where("product_id = ? AND tag_id = ?", productID, req.TagID).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("tag is already attached to this product")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	rel := &models.ProductTagRelationship{
		ProductID:       productID,
		TagID:           req.TagID,
		AddedByID:       addedByID,
		Weight:          req.Weight,
		IsAutoGenerated: req.IsAutoGenerated,
	}
	if rel.Weight == 0 {
		rel.Weight = 1
	}
	if err := s.db.Create(rel).Error; err != nil {
		return nil, translateUniqueViolation(err, "tag is already attached to this product")
	}

	s.db.Preload("Tag").First(rel, "id = ?", rel.ID)
	return rel, nil
}

func (s *CatalogService) UpdateTagWeight(productID, tagID uuid.UUID, weight int) (*models.ProductTagRelationship, error) {
	if weight < 1 || weight > 10 {
		return nil, apperrors.Validation("weight", "weight must be between 1 and 10")
	}

	var rel models.ProductTagRelationship
	if err := s.db.Where("product_id = ? AND tag_id = ?", productID, tagID).First(&rel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product tag")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	rel.Weight = weight
	if err := s.db.Save(&rel).Error; err != nil {
		return nil, fmt.Errorf("failed to update tag weight: %w", err)
	}
	return &rel, nil
}

func (s *CatalogService) DetachTag(productID, tagID uuid.UUID) error {
	result := s.db.Where("product_id = ? AND tag_id = ?", productID, tagID).
		Delete(&models.ProductTagRelationship{})
	if result.Error != nil {
		return fmt.Errorf("failed to detach tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("product tag")
	}
	return nil
}
