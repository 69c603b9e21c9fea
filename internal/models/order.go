// internal/models/order.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is an immutable purchase record with a mutable status. The total
// is stored, not computed on read, and must be recomputed explicitly
// after any item mutation.
type Order struct {
	BaseModel
	UserID          uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;size:100;not null"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);default:0"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:text;not null"`
	PhoneNumber     string          `json:"phone_number" gorm:"size:20;not null"`
	CustomerNotes   string          `json:"customer_notes" gorm:"type:text"`

	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// BeforeCreate assigns the order number once at first save; it is never
// regenerated. Collisions are treated as negligible and not retried.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if err := o.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if o.OrderNumber == "" {
		o.OrderNumber = fmt.Sprintf("ORD-%s-%s",
			time.Now().Format("20060102"), uuid.New().String()[:8])
	}
	return nil
}

// CanBeCancelled reports whether the cancel transition is open.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int             `json:"quantity" gorm:"default:1;check:quantity >= 1"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);default:0"`

	Order   *Order   `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// BeforeCreate freezes the price snapshot: if no price was supplied the
// product's current price is copied in, and once set it is never
// re-derived from the live product.
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if err := i.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if i.Price.IsZero() {
		var product Product
		if err := tx.Select("price").First(&product, "id = ?", i.ProductID).Error; err != nil {
			return err
		}
		i.Price = product.Price
	}
	return nil
}

// TotalPrice is quantity x the frozen snapshot price.
func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
