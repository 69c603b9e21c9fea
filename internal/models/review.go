// internal/models/review.go
package models

import "github.com/google/uuid"

// Review carries a 1-5 rating; one review per (user, product) pair.
// The product's average rating is derived from these rows on read.
type Review struct {
	BaseModel
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_product_review"`
	ProductID     uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_product_review"`
	Rating        int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment       string    `json:"comment" gorm:"type:text"`
	AdminResponse string    `json:"admin_response" gorm:"type:text"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Product *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
