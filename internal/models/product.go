// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name           string          `json:"name" gorm:"size:255;not null"`
	Slug           string          `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description    string          `json:"description" gorm:"type:text"`
	CategoryID     uuid.UUID       `json:"category_id" gorm:"type:uuid;not null;index"`
	BrandID        uuid.UUID       `json:"brand_id" gorm:"type:uuid;not null;index"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock          int             `json:"stock" gorm:"default:0;check:stock >= 0"`
	WarrantyMonths int             `json:"warranty_months" gorm:"default:0"`
	IsAvailable    bool            `json:"is_available" gorm:"default:true;index"`
	IsFeatured     bool            `json:"is_featured" gorm:"default:false"`

	// Derived on read via subquery annotations, never stored.
	AverageRating float64 `json:"average_rating" gorm:"->;-:migration"`
	ReviewCount   int64   `json:"review_count" gorm:"->;-:migration"`

	// Relationships
	Category *Category                `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Brand    *Brand                   `json:"brand,omitempty" gorm:"foreignKey:BrandID;constraint:OnDelete:RESTRICT"`
	Tags     []ProductTagRelationship `json:"tags,omitempty" gorm:"foreignKey:ProductID"`
	Images   []ProductImage           `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Files    []ProductFile            `json:"files,omitempty" gorm:"foreignKey:ProductID"`
	Reviews  []Review                 `json:"-" gorm:"foreignKey:ProductID"`
}
