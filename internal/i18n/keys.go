// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyStaffAccessDenied      = "auth.staff_access_denied"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"

	// Catalog
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryInUse    = "category.in_use"
	KeyBrandCreated     = "brand.created"
	KeyBrandUpdated     = "brand.updated"
	KeyBrandDeleted     = "brand.deleted"
	KeyBrandNotFound    = "brand.not_found"
	KeyBrandInUse       = "brand.in_use"
	KeyTagCreated       = "tag.created"
	KeyTagUpdated       = "tag.updated"
	KeyTagDeleted       = "tag.deleted"
	KeyTagNotFound      = "tag.not_found"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductOutOfStock = "product.out_of_stock"

	// Reviews
	KeyReviewCreated   = "review.created"
	KeyReviewUpdated   = "review.updated"
	KeyReviewDeleted   = "review.deleted"
	KeyReviewNotFound  = "review.not_found"
	KeyReviewDuplicate = "review.duplicate"

	// Cart
	KeyCartItemAdded     = "cart.item_added"
	KeyCartItemUpdated   = "cart.item_updated"
	KeyCartItemRemoved   = "cart.item_removed"
	KeyCartItemDuplicate = "cart.item_duplicate"
	KeyCartCleared       = "cart.cleared"
	KeyCartEmpty         = "cart.empty"
	KeyCartNotFound      = "cart.not_found"

	// Wishlist
	KeyWishlistItemAdded   = "wishlist.item_added"
	KeyWishlistItemExists  = "wishlist.item_exists"
	KeyWishlistItemRemoved = "wishlist.item_removed"

	// Orders
	KeyOrderCreated           = "order.created"
	KeyOrderNotFound          = "order.not_found"
	KeyOrderCancelled         = "order.cancelled"
	KeyOrderNotCancellable    = "order.not_cancellable"
	KeyOrderStatusUpdated     = "order.status_updated"
	KeyOrderInvalidStatus     = "order.invalid_status"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationPassword = "validation.invalid_password"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
	KeyFileNotFound      = "file.not_found"
)
