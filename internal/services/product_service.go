// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/cache"
	"github.com/technomart/shop-backend/internal/config"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/utils"
)

// ratingSelect annotates products with review aggregates derived on
// read. Products without reviews report a zero average.
const ratingSelect = `products.*,
	COALESCE((SELECT AVG(rating) FROM reviews WHERE reviews.product_id = products.id), 0) AS average_rating,
	(SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id) AS review_count`

type ProductService struct {
	db    *gorm.DB
	cfg   *config.Config
	cache *cache.Cache
}

type ProductRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	Slug           string          `json:"slug" validate:"required,slug"`
	Description    string          `json:"description"`
	CategoryID     uuid.UUID       `json:"category_id" validate:"required"`
	BrandID        uuid.UUID       `json:"brand_id" validate:"required"`
	Price          decimal.Decimal `json:"price" validate:"required"`
	Stock          int             `json:"stock" validate:"min=0"`
	WarrantyMonths int             `json:"warranty_months" validate:"min=0"`
	IsAvailable    *bool           `json:"is_available"`
	IsFeatured     *bool           `json:"is_featured"`
}

// ProductFilters narrows the catalog listing. Unavailable products are
// hidden unless a staff caller sets IncludeUnavailable or an explicit
// Available filter, which override the default clause.
type ProductFilters struct {
	CategoryID         *uuid.UUID
	CategorySlug       string
	BrandID            *uuid.UUID
	BrandSlug          string
	TagIDs             []uuid.UUID
	MinPrice           *decimal.Decimal
	MaxPrice           *decimal.Decimal
	Featured           *bool
	InStockOnly        bool
	Available          *bool
	IncludeUnavailable bool
}

// ProductListEntry is the lightweight projection for price lists.
type ProductListEntry struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Slug  string          `json:"slug"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type ProductFileRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	URL         string          `json:"url" validate:"required,max=512"`
	Key         string          `json:"key" validate:"max=512"`
	FileType    models.FileType `json:"file_type"`
	Description string          `json:"description"`
	Size        int64           `json:"size" validate:"min=0"`
	Checksum    string          `json:"checksum" validate:"omitempty,len=64,hexadecimal"`
}

type ProductImageRequest struct {
	URL       string `json:"url" validate:"required,max=512"`
	Key       string `json:"key" validate:"max=512"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

func NewProductService(db *gorm.DB, cfg *config.Config, c *cache.Cache) *ProductService {
	return &ProductService{db: db, cfg: cfg, cache: c}
}

func (s *ProductService) List(filters ProductFilters, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{})

	if filters.Available != nil {
		query = query.Where("products.is_available = ?", *filters.Available)
	} else if !filters.IncludeUnavailable {
		query = query.Where("products.is_available = ?", true)
	}
	if filters.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.BrandID != nil {
		query = query.Where("products.brand_id = ?", *filters.BrandID)
	}
	if filters.BrandSlug != "" {
		query = query.Joins("JOIN brands ON brands.id = products.brand_id").
			Where("brands.slug = ?", filters.BrandSlug)
	}
	if len(filters.TagIDs) > 0 {
		query = query.Where("products.id IN (?)",
			s.db.Model(&models.ProductTagRelationship{}).
				Select("product_id").
				Where("tag_id IN ?", filters.TagIDs))
	}
	if filters.MinPrice != nil {
		query = query.Where("products.price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filters.MaxPrice)
	}
	if filters.Featured != nil {
		query = query.Where("products.is_featured = ?", *filters.Featured)
	}
	if filters.InStockOnly {
		query = query.Where("products.stock > 0")
	}
	if params.Search != "" {
		search := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR products.brand_id IN (?) OR products.category_id IN (?)",
			search, search,
			s.db.Model(&models.Brand{}).Select("id").Where("LOWER(name) LIKE ?", search),
			s.db.Model(&models.Category{}).Select("id").Where("LOWER(name) LIKE ?", search),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var products []models.Product
	query = query.Select(ratingSelect).
		Preload("Category").
		Preload("Brand").
		Preload("Images")
	query = utils.ApplySort(query, params, []string{"created_at", "name", "price", "stock"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	return s.getOne("products.id = ?", id)
}

func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	return s.getOne("products.slug = ?", slug)
}

func (s *ProductService) getOne(condition string, value interface{}) (*models.Product, error) {
	var product models.Product
	err := s.db.Select(ratingSelect).
		Preload("Category").
		Preload("Brand").
		Preload("Tags.Tag").
		Preload("Images").
		Preload("Files").
		Where(condition, value).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// ListFeatured serves the featured shelf through the cache; the entry
// expires after five minutes or on any product write.
func (s *ProductService) ListFeatured(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if s.cache.GetJSON(ctx, cache.KeyFeaturedProducts, &cached) {
		return cached, nil
	}

	var products []models.Product
	err := s.db.Select(ratingSelect).
		Preload("Category").
		Preload("Brand").
		Preload("Images").
		Where("products.is_featured = ? AND products.is_available = ?", true, true).
		Order("products.created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.cache.SetJSON(ctx, cache.KeyFeaturedProducts, products, s.cfg.Cache.FeaturedProductsTTL)
	return products, nil
}

// PriceList is the cheap projection used for exports and quick lookups.
func (s *ProductService) PriceList() ([]ProductListEntry, error) {
	var entries []ProductListEntry
	err := s.db.Model(&models.Product{}).
		Select("id, name, slug, price, stock").
		Where("is_available = ?", true).
		Order("name asc").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return entries, nil
}

// ProductName is the minimal projection for autocomplete pickers.
type ProductName struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func (s *ProductService) NameList() ([]ProductName, error) {
	var entries []ProductName
	err := s.db.Model(&models.Product{}).
		Select("id, name, slug").
		Where("is_available = ?", true).
		Order("name asc").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return entries, nil
}

func (s *ProductService) Create(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price", "price cannot be negative")
	}
	if err := s.checkReferences(req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		BrandID:        req.BrandID,
		Price:          req.Price,
		Stock:          req.Stock,
		WarrantyMonths: req.WarrantyMonths,
		IsAvailable:    true,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, translateUniqueViolation(err, "product with this slug already exists")
	}

	s.cache.InvalidateProductCaches(ctx)
	return s.GetByID(product.ID)
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price", "price cannot be negative")
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":            req.Name,
		"slug":            req.Slug,
		"description":     req.Description,
		"category_id":     req.CategoryID,
		"brand_id":        req.BrandID,
		"price":           req.Price,
		"stock":           req.Stock,
		"warranty_months": req.WarrantyMonths,
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if err := s.db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
		return nil, translateUniqueViolation(err, "product with this slug already exists")
	}

	s.cache.InvalidateProductCaches(ctx)
	return s.GetByID(id)
}

// Delete removes the product; order lines referencing it block the
// delete so purchase history stays intact.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	var orderItemCount int64
	if err := s.db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&orderItemCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if orderItemCount > 0 {
		return apperrors.Conflict("product appears in orders and cannot be deleted")
	}

	if err := s.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.cache.InvalidateProductCaches(ctx)
	return nil
}

func (s *ProductService) checkReferences(categoryID, brandID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return apperrors.NotFound("category")
	}
	if err := s.db.Model(&models.Brand{}).Where("id = ?", brandID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return apperrors.NotFound("brand")
	}
	return nil
}

// --- Images ---

func (s *ProductService) AddImage(ctx context.Context, productID uuid.UUID, req *ProductImageRequest) (*models.ProductImage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}
	if _, err := s.GetByID(productID); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID: productID,
		URL:       req.URL,
		Key:       req.Key,
		IsPrimary: req.IsPrimary,
		SortOrder: req.SortOrder,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Only one image may be primary
		if req.IsPrimary {
			if err := tx.Model(&models.ProductImage{}).
				Where("product_id = ?", productID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(image).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add image: %w", err)
	}

	s.cache.InvalidateProductCaches(ctx)
	return image, nil
}

func (s *ProductService) RemoveImage(ctx context.Context, productID, imageID uuid.UUID) error {
	result := s.db.Where("id = ? AND product_id = ?", imageID, productID).Delete(&models.ProductImage{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("image")
	}
	s.cache.InvalidateProductCaches(ctx)
	return nil
}

// --- Files ---

func (s *ProductService) AddFile(productID uuid.UUID, req *ProductFileRequest) (*models.ProductFile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}
	if _, err := s.GetByID(productID); err != nil {
		return nil, err
	}

	fileType := req.FileType
	switch fileType {
	case models.FileTypeManual, models.FileTypeCertificate, models.FileTypeSpecification,
		models.FileTypeSoftware, models.FileTypeOther:
	case "":
		fileType = models.FileTypeOther
	default:
		return nil, apperrors.Validation("file_type", "unrecognized file type")
	}

	file := &models.ProductFile{
		ProductID:   productID,
		Name:        req.Name,
		URL:         req.URL,
		Key:         req.Key,
		FileType:    fileType,
		Description: req.Description,
		Size:        req.Size,
		Checksum:    req.Checksum,
	}
	if err := s.db.Create(file).Error; err != nil {
		return nil, fmt.Errorf("failed to add file: %w", err)
	}
	return file, nil
}

func (s *ProductService) RemoveFile(productID, fileID uuid.UUID) error {
	result := s.db.Where("id = ? AND product_id = ?", fileID, productID).Delete(&models.ProductFile{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove file: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("file")
	}
	return nil
}

// RecordDownload bumps the download counter atomically and returns the
// file so the caller can redirect to its URL.
func (s *ProductService) RecordDownload(fileID uuid.UUID) (*models.ProductFile, error) {
	var file models.ProductFile
	if err := s.db.First(&file, "id = ?", fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("file")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err := s.db.Model(&file).
		Update("downloads_count", gorm.Expr("downloads_count + 1")).Error
	if err != nil {
		return nil, fmt.Errorf("failed to record download: %w", err)
	}

	file.DownloadsCount++
	return &file, nil
}
