// internal/handlers/testutil_test.go
package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/technomart/shop-backend/internal/config"
	"github.com/technomart/shop-backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Brand{},
		&models.Tag{},
		&models.ProductTagRelationship{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductFile{},
		&models.Review{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			FeaturedProductsTTL:     5 * time.Minute,
			CategoriesWithCountsTTL: 10 * time.Minute,
		},
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
}

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Category, *models.Brand) {
	t.Helper()

	category := &models.Category{Name: "Power Tools", Slug: "power-tools"}
	require.NoError(t, db.Create(category).Error)
	brand := &models.Brand{Name: "Makita", Slug: "makita"}
	require.NoError(t, db.Create(brand).Error)
	return category, brand
}

func seedProduct(t *testing.T, db *gorm.DB, category *models.Category, brand *models.Brand, slug string, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        "Product " + slug,
		Slug:        slug,
		CategoryID:  category.ID,
		BrandID:     brand.ID,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
