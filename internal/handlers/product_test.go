// internal/handlers/product_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/middleware"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/services"
	"github.com/technomart/shop-backend/internal/utils"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	staffToken string
}

func (s *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.db = openTestDB(s.T())
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	productService := services.NewProductService(s.db, cfg, nil)
	catalogService := services.NewCatalogService(s.db, cfg, nil)
	handler := NewProductHandler(productService, catalogService, nil)

	s.router = gin.New()
	s.router.GET("/products", middleware.OptionalAuth(), handler.GetProducts)

	category, brand := seedCatalog(s.T(), s.db)
	featured := seedProduct(s.T(), s.db, category, brand, "drill", "100.00", 5)
	s.Require().NoError(s.db.Model(featured).Update("is_featured", true).Error)
	seedProduct(s.T(), s.db, category, brand, "saw", "50.00", 5)
	hidden := seedProduct(s.T(), s.db, category, brand, "grinder", "80.00", 5)
	s.Require().NoError(s.db.Model(hidden).Update("is_available", false).Error)

	staff := &models.User{Username: "manager", Email: "manager@example.com", IsStaff: true, IsActive: true}
	s.Require().NoError(staff.SetPassword("Sup3rSecret!"))
	s.Require().NoError(s.db.Create(staff).Error)
	token, err := utils.GenerateJWT(staff.ID, staff.Username, true, cfg.JWT.AccessTokenTTL)
	s.Require().NoError(err)
	s.staffToken = token
}

func (s *ProductHandlerTestSuite) listSlugs(query, token string) []string {
	req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Slug string `json:"slug"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().True(resp.Success)

	slugs := make([]string, 0, len(resp.Data))
	for _, p := range resp.Data {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

func (s *ProductHandlerTestSuite) TestFeaturedFilterAcceptsBothParamNames() {
	s.Equal([]string{"drill"}, s.listSlugs("?is_featured=true", ""))
	s.Equal([]string{"drill"}, s.listSlugs("?featured=true", ""))
}

func (s *ProductHandlerTestSuite) TestAvailabilityFilter() {
	s.ElementsMatch([]string{"drill", "saw"}, s.listSlugs("?is_available=true", ""))
	s.ElementsMatch([]string{"drill", "saw"}, s.listSlugs("?is_available=true", s.staffToken))
	s.Equal([]string{"grinder"}, s.listSlugs("?is_available=false", s.staffToken))
}

func (s *ProductHandlerTestSuite) TestAvailabilityFilterIgnoredForAnonymous() {
	// An anonymous caller cannot use the flag to surface hidden products
	s.ElementsMatch([]string{"drill", "saw"}, s.listSlugs("?is_available=false", ""))
}

func TestProductHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
