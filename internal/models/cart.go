// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the user's staging area of unpurchased lines; exactly one per
// user, created lazily on first access.
type Cart struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`

	User  *User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
}

// TotalPrice sums quantity x current product price over loaded items.
// Prices are live: the total drifts with product price changes.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	return total
}

type CartItem struct {
	BaseModel
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Quantity  int       `json:"quantity" gorm:"default:1;check:quantity >= 1"`

	Cart    *Cart    `json:"-" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TotalPrice is quantity x the product's current price. Requires the
// Product association to be loaded.
func (i *CartItem) TotalPrice() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
