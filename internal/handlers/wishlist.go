// internal/handlers/wishlist.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/technomart/shop-backend/internal/i18n"
	"github.com/technomart/shop-backend/internal/services"
	"github.com/technomart/shop-backend/internal/utils"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GET /wishlists/my_wishlist
func (h *WishlistHandler) GetMyWishlist(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	wishlist, err := h.wishlistService.GetOrCreate(userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"wishlist": wishlist})
}

// POST /wishlists/my_wishlist/products/:productId
func (h *WishlistHandler) AddProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}

	userID, exists := currentUserID(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	result, err := h.wishlistService.AddProduct(userID, productID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := i18n.T(lang, i18n.KeyWishlistItemAdded)
	if !result.Added {
		message = i18n.T(lang, i18n.KeyWishlistItemExists)
	}

	utils.SuccessResponse(c, gin.H{
		"message":  message,
		"added":    result.Added,
		"wishlist": result.Wishlist,
	})
}

// DELETE /wishlists/my_wishlist/products/:productId
func (h *WishlistHandler) RemoveProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}

	userID, exists := currentUserID(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	wishlist, err := h.wishlistService.RemoveProduct(userID, productID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyWishlistItemRemoved),
		"wishlist": wishlist,
	})
}
