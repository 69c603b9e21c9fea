// internal/handlers/product.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/technomart/shop-backend/internal/i18n"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/services"
	"github.com/technomart/shop-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	catalogService *services.CatalogService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, catalogService *services.CatalogService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		catalogService: catalogService,
		storageService: storageService,
	}
}

// GET /products, GET /products/search
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	if params.Search == "" {
		params.Search = c.Query("q")
	}

	filters := services.ProductFilters{
		IncludeUnavailable: utils.IsStaffFromContext(c) && c.Query("include_unavailable") == "true",
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			filters.CategoryID = &categoryID
		}
	}
	if slug := c.Query("category"); slug != "" {
		filters.CategorySlug = slug
	}
	if brandIDStr := c.Query("brand_id"); brandIDStr != "" {
		if brandID, err := uuid.Parse(brandIDStr); err == nil {
			filters.BrandID = &brandID
		}
	}
	if slug := c.Query("brand"); slug != "" {
		filters.BrandSlug = slug
	}
	if tags := c.Query("tags"); tags != "" {
		for _, part := range strings.Split(tags, ",") {
			if tagID, err := uuid.Parse(strings.TrimSpace(part)); err == nil {
				filters.TagIDs = append(filters.TagIDs, tagID)
			}
		}
	}
	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := decimal.NewFromString(priceMinStr); err == nil {
			filters.MinPrice = &priceMin
		}
	}
	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := decimal.NewFromString(priceMaxStr); err == nil {
			filters.MaxPrice = &priceMax
		}
	}
	featuredStr := c.Query("is_featured")
	if featuredStr == "" {
		featuredStr = c.Query("featured")
	}
	if featuredStr != "" {
		if featured, err := strconv.ParseBool(featuredStr); err == nil {
			filters.Featured = &featured
		}
	}
	if inStockStr := c.Query("in_stock"); inStockStr != "" {
		if inStock, err := strconv.ParseBool(inStockStr); err == nil {
			filters.InStockOnly = inStock
		}
	}
	if availableStr := c.Query("is_available"); availableStr != "" {
		if available, err := strconv.ParseBool(availableStr); err == nil {
			// Anonymous callers never see unavailable products, so only
			// staff may flip the filter to false.
			if available || utils.IsStaffFromContext(c) {
				filters.Available = &available
			}
		}
	}

	result, err := h.productService.List(filters, params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /products/featured
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	products, err := h.productService.ListFeatured(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"products": products})
}

// GET /products/price_list
func (h *ProductHandler) GetPriceList(c *gin.Context) {
	entries, err := h.productService.PriceList()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"products": entries})
}

// GET /products/names
func (h *ProductHandler) GetNames(c *gin.Context) {
	entries, err := h.productService.NameList()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"products": entries})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	idStr := c.Param("id")

	// Detail lookups accept either the UUID or the slug
	var (
		product interface{}
		err     error
	)
	if id, parseErr := uuid.Parse(idStr); parseErr == nil {
		product, err = h.productService.GetByID(id)
	} else {
		product, err = h.productService.GetBySlug(idStr)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"product": product})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyProductDeleted)})
}

// --- Tags on a product ---

// POST /products/:id/tags
func (h *ProductHandler) AttachTag(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.AttachTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	var addedByID *uuid.UUID
	if userID, exists := currentUserID(c); exists {
		addedByID = &userID
	}

	rel, err := h.catalogService.AttachTag(productID, addedByID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"tag": rel})
}

// PUT /products/:id/tags/:tagId
func (h *ProductHandler) UpdateTagWeight(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathUUID(c, "tagId")
	if !ok {
		return
	}

	var req struct {
		Weight int `json:"weight" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	rel, err := h.catalogService.UpdateTagWeight(productID, tagID, req.Weight)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"tag": rel})
}

// DELETE /products/:id/tags/:tagId
func (h *ProductHandler) DetachTag(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathUUID(c, "tagId")
	if !ok {
		return
	}

	if err := h.catalogService.DetachTag(productID, tagID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"detached": true})
}

// --- Images ---

// POST /products/:id/images
func (h *ProductHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
		return
	}

	result, err := h.storageService.UploadFile(file, header, h.storageService.GetDefaultUploadOptions("product_images"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	isPrimary, _ := strconv.ParseBool(c.PostForm("is_primary"))
	sortOrder, _ := strconv.Atoi(c.PostForm("sort_order"))

	image, err := h.productService.AddImage(c.Request.Context(), productID, &services.ProductImageRequest{
		URL:       result.URL,
		Key:       result.Key,
		IsPrimary: isPrimary,
		SortOrder: sortOrder,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"image":   image,
	})
}

// DELETE /products/:id/images/:imageId
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	imageID, ok := pathUUID(c, "imageId")
	if !ok {
		return
	}

	if err := h.productService.RemoveImage(c.Request.Context(), productID, imageID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// --- Files ---

// POST /products/:id/files
func (h *ProductHandler) UploadFile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, h.storageService.GetDefaultUploadOptions("product_files"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	productFile, err := h.productService.AddFile(productID, &services.ProductFileRequest{
		Name:        name,
		URL:         result.URL,
		Key:         result.Key,
		FileType:    models.FileType(c.PostForm("file_type")),
		Description: c.PostForm("description"),
		Size:        result.Size,
		Checksum:    result.Checksum,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"file":    productFile,
	})
}

// DELETE /products/:id/files/:fileId
func (h *ProductHandler) DeleteFile(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	fileID, ok := pathUUID(c, "fileId")
	if !ok {
		return
	}

	if err := h.productService.RemoveFile(productID, fileID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /files/:id/download
func (h *ProductHandler) DownloadFile(c *gin.Context) {
	fileID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	file, err := h.productService.RecordDownload(fileID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Redirect(302, file.URL)
}
