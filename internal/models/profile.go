// internal/models/profile.go
package models

import "github.com/google/uuid"

// Profile is the user's delivery details, one row per user.
type Profile struct {
	BaseModel
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	DeliveryAddress string    `json:"delivery_address" gorm:"type:text"`
	PhoneNumber     string    `json:"phone_number" gorm:"size:20"`
	AvatarURL       string    `json:"avatar_url" gorm:"size:512"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
