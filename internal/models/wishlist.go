// internal/models/wishlist.go
package models

import "github.com/google/uuid"

type Wishlist struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`

	User  *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items []WishlistItem `json:"items,omitempty" gorm:"foreignKey:WishlistID"`
}

// WishlistItem records presence only; no quantity or price.
type WishlistItem struct {
	BaseModel
	WishlistID uuid.UUID `json:"wishlist_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_product"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_product"`

	Wishlist *Wishlist `json:"-" gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
	Product  *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
