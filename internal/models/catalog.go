// internal/models/catalog.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category forms a tree: deleting a parent cascades to its children,
// while products referencing a category block its deletion.
type Category struct {
	BaseModel
	Name     string     `json:"name" gorm:"uniqueIndex;size:80;not null"`
	Slug     string     `json:"slug" gorm:"uniqueIndex;size:80;not null"`
	ParentID *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`

	Parent   *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Products []Product  `json:"-" gorm:"foreignKey:CategoryID"`
}

type Brand struct {
	BaseModel
	Name            string `json:"name" gorm:"uniqueIndex;size:80;not null"`
	Slug            string `json:"slug" gorm:"uniqueIndex;size:80;not null"`
	OfficialWebsite string `json:"official_website" gorm:"size:255"`
	Description     string `json:"description" gorm:"type:text"`

	Products []Product `json:"-" gorm:"foreignKey:BrandID"`
}

type Tag struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Color       string `json:"color" gorm:"size:7;default:'#000000'"`
	Description string `json:"description" gorm:"type:text"`
}

// ProductTagRelationship joins products and tags, carrying how strongly
// the tag applies (weight 1-10) and who attached it.
type ProductTagRelationship struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	ProductID       uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_tag"`
	TagID           uuid.UUID  `json:"tag_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_tag"`
	AddedByID       *uuid.UUID `json:"added_by_id" gorm:"type:uuid"`
	Weight          int        `json:"weight" gorm:"default:1;check:weight >= 1 AND weight <= 10"`
	IsAutoGenerated bool       `json:"is_auto_generated" gorm:"default:false"`
	AddedAt         time.Time  `json:"added_at" gorm:"autoCreateTime"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Tag     *Tag     `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	AddedBy *User    `json:"added_by,omitempty" gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL"`
}

func (r *ProductTagRelationship) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"size:512;not null"`
	Key       string    `json:"key" gorm:"size:512"`
	IsPrimary bool      `json:"is_primary" gorm:"default:false"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductFile struct {
	BaseModel
	ProductID      uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	URL            string    `json:"url" gorm:"size:512;not null"`
	Key            string    `json:"key" gorm:"size:512"`
	FileType       FileType  `json:"file_type" gorm:"type:varchar(20);default:'other';index"`
	Description    string    `json:"description" gorm:"type:text"`
	Size           int64     `json:"size" gorm:"default:0"`
	Checksum       string    `json:"checksum" gorm:"size:64"`
	DownloadsCount int64     `json:"downloads_count" gorm:"default:0"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
