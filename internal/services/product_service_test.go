// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	svc      *ProductService
	ctx      context.Context
	category *models.Category
	brand    *models.Brand
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.svc = NewProductService(s.db, testConfig(), nil)
	s.ctx = context.Background()
	s.category, s.brand = createTestCatalog(s.T(), s.db)
}

func (s *ProductServiceTestSuite) listSlugs(filters ProductFilters) []string {
	result, err := s.svc.List(filters, defaultPagination())
	s.Require().NoError(err)
	products, ok := result.Data.([]models.Product)
	s.Require().True(ok)

	slugs := make([]string, 0, len(products))
	for _, p := range products {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

func (s *ProductServiceTestSuite) TestListFilters() {
	drill := createTestProduct(s.T(), s.db, s.category, s.brand, "drill", "120.00", 4)
	createTestProduct(s.T(), s.db, s.category, s.brand, "saw", "80.00", 0)
	hidden := createTestProduct(s.T(), s.db, s.category, s.brand, "grinder", "60.00", 2)
	s.Require().NoError(s.db.Model(hidden).Update("is_available", false).Error)

	s.ElementsMatch([]string{"drill", "saw"}, s.listSlugs(ProductFilters{}))
	s.ElementsMatch([]string{"drill", "saw", "grinder"}, s.listSlugs(ProductFilters{IncludeUnavailable: true}))
	s.ElementsMatch([]string{"drill"}, s.listSlugs(ProductFilters{InStockOnly: true}))
	s.ElementsMatch([]string{"drill", "saw"}, s.listSlugs(ProductFilters{CategorySlug: "power-tools"}))
	s.Empty(s.listSlugs(ProductFilters{CategorySlug: "garden"}))

	min := decimal.RequireFromString("100")
	s.ElementsMatch([]string{"drill"}, s.listSlugs(ProductFilters{MinPrice: &min}))
	max := decimal.RequireFromString("100")
	s.ElementsMatch([]string{"saw"}, s.listSlugs(ProductFilters{MaxPrice: &max}))

	s.Require().NoError(s.db.Model(drill).Update("is_featured", true).Error)
	featured := true
	s.ElementsMatch([]string{"drill"}, s.listSlugs(ProductFilters{Featured: &featured}))
}

func (s *ProductServiceTestSuite) TestListTagFilter() {
	drill := createTestProduct(s.T(), s.db, s.category, s.brand, "drill", "120.00", 4)
	createTestProduct(s.T(), s.db, s.category, s.brand, "saw", "80.00", 3)

	tag := &models.Tag{Name: "cordless"}
	s.Require().NoError(s.db.Create(tag).Error)
	s.Require().NoError(s.db.Create(&models.ProductTagRelationship{
		ProductID: drill.ID,
		TagID:     tag.ID,
		Weight:    1,
	}).Error)

	s.ElementsMatch([]string{"drill"}, s.listSlugs(ProductFilters{TagIDs: []uuid.UUID{tag.ID}}))
}

func (s *ProductServiceTestSuite) TestListSearch() {
	createTestProduct(s.T(), s.db, s.category, s.brand, "impact-driver", "150.00", 2)
	createTestProduct(s.T(), s.db, s.category, s.brand, "saw", "80.00", 3)

	params := defaultPagination()
	params.Search = "DRIVER"
	result, err := s.svc.List(ProductFilters{}, params)
	s.Require().NoError(err)
	products := result.Data.([]models.Product)
	s.Require().Len(products, 1)
	s.Equal("impact-driver", products[0].Slug)

	// Brand names are searched too
	params.Search = "makita"
	result, err = s.svc.List(ProductFilters{}, params)
	s.Require().NoError(err)
	s.Len(result.Data.([]models.Product), 2)
}

func (s *ProductServiceTestSuite) TestGetBySlug() {
	created := createTestProduct(s.T(), s.db, s.category, s.brand, "drill", "120.00", 4)

	product, err := s.svc.GetBySlug("drill")
	s.Require().NoError(err)
	s.Equal(created.ID, product.ID)
	s.Equal("Makita", product.Brand.Name)

	_, err = s.svc.GetBySlug("missing")
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *ProductServiceTestSuite) TestListFeatured() {
	drill := createTestProduct(s.T(), s.db, s.category, s.brand, "drill", "120.00", 4)
	createTestProduct(s.T(), s.db, s.category, s.brand, "saw", "80.00", 3)
	s.Require().NoError(s.db.Model(drill).Update("is_featured", true).Error)

	featured, err := s.svc.ListFeatured(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(featured, 1)
	s.Equal("drill", featured[0].Slug)
}

func (s *ProductServiceTestSuite) TestCreateRejectsUnknownCategory() {
	_, err := s.svc.Create(s.ctx, &ProductRequest{
		Name:       "Drill",
		Slug:       "drill",
		CategoryID: uuid.New(),
		BrandID:    s.brand.ID,
		Price:      decimal.RequireFromString("120.00"),
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *ProductServiceTestSuite) TestCreateAndUpdate() {
	product, err := s.svc.Create(s.ctx, &ProductRequest{
		Name:       "Drill",
		Slug:       "drill",
		CategoryID: s.category.ID,
		BrandID:    s.brand.ID,
		Price:      decimal.RequireFromString("120.00"),
		Stock:      4,
	})
	s.Require().NoError(err)
	s.True(product.IsAvailable)

	unavailable := false
	updated, err := s.svc.Update(s.ctx, product.ID, &ProductRequest{
		Name:        "Drill XR",
		Slug:        "drill",
		CategoryID:  s.category.ID,
		BrandID:     s.brand.ID,
		Price:       decimal.RequireFromString("140.00"),
		Stock:       2,
		IsAvailable: &unavailable,
	})
	s.Require().NoError(err)
	s.Equal("Drill XR", updated.Name)
	s.Equal("140", updated.Price.String())
	s.False(updated.IsAvailable)
}

func (s *ProductServiceTestSuite) TestDeleteBlockedByOrderHistory() {
	product := createTestProduct(s.T(), s.db, s.category, s.brand, "drill", "120.00", 4)
	user := createTestUser(s.T(), s.db, "alice", false)

	order := &models.Order{
		UserID:          user.ID,
		OrderNumber:     "ORD-20250101-deadbeef",
		Status:          models.OrderStatusPending,
		ShippingAddress: "Somewhere 1",
		TotalAmount:     decimal.RequireFromString("120.00"),
	}
	s.Require().NoError(s.db.Create(order).Error)
	s.Require().NoError(s.db.Create(&models.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     product.Price,
	}).Error)

	err := s.svc.Delete(s.ctx, product.ID)
	s.Require().Error(err)
	s.True(apperrors.IsConflict(err))

	fresh := createTestProduct(s.T(), s.db, s.category, s.brand, "saw", "80.00", 3)
	s.NoError(s.svc.Delete(s.ctx, fresh.ID))
}

func (s *ProductServiceTestSuite) TestAddImagePrimaryIsExclusive() {
	product := createTestProduct(s.T(), s.db, s.category, s.brand, "drill", "120.00", 4)

	first, err := s.svc.AddImage(s.ctx, product.ID, &ProductImageRequest{URL: "http://img/1.jpg", IsPrimary: true})
	s.Require().NoError(err)
	second, err := s.svc.AddImage(s.ctx, product.ID, &ProductImageRequest{URL: "http://img/2.jpg", IsPrimary: true})
	s.Require().NoError(err)

	var primaries []models.ProductImage
	s.Require().NoError(s.db.Where("product_id = ? AND is_primary = ?", product.ID, true).Find(&primaries).Error)
	s.Require().Len(primaries, 1)
	s.Equal(second.ID, primaries[0].ID)

	var demoted models.ProductImage
	s.Require().NoError(s.db.First(&demoted, "id = ?", first.ID).Error)
	s.False(demoted.IsPrimary)
}

func (s *ProductServiceTestSuite) TestFilesAndDownloads() {
	product := createTestProduct(s.T(), s.db, s.category, s.brand, "drill", "120.00", 4)

	_, err := s.svc.AddFile(product.ID, &ProductFileRequest{
		Name:     "manual.pdf",
		URL:      "http://files/manual.pdf",
		FileType: models.FileType("blueprint"),
	})
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))

	file, err := s.svc.AddFile(product.ID, &ProductFileRequest{
		Name: "manual.pdf",
		URL:  "http://files/manual.pdf",
	})
	s.Require().NoError(err)
	s.Equal(models.FileTypeOther, file.FileType)

	for i := 0; i < 3; i++ {
		_, err = s.svc.RecordDownload(file.ID)
		s.Require().NoError(err)
	}
	var stored models.ProductFile
	s.Require().NoError(s.db.First(&stored, "id = ?", file.ID).Error)
	s.EqualValues(3, stored.DownloadsCount)

	s.Require().NoError(s.svc.RemoveFile(product.ID, file.ID))
	err = s.svc.RemoveFile(product.ID, file.ID)
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *ProductServiceTestSuite) TestPriceList() {
	createTestProduct(s.T(), s.db, s.category, s.brand, "drill", "120.00", 4)
	hidden := createTestProduct(s.T(), s.db, s.category, s.brand, "grinder", "60.00", 2)
	s.Require().NoError(s.db.Model(hidden).Update("is_available", false).Error)

	entries, err := s.svc.PriceList()
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("drill", entries[0].Slug)

	names, err := s.svc.NameList()
	s.Require().NoError(err)
	s.Require().Len(names, 1)
	s.Equal("Product drill", names[0].Name)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
