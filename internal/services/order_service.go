// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
	"github.com/technomart/shop-backend/internal/models"
	"github.com/technomart/shop-backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

type CheckoutRequest struct {
	CartID          uuid.UUID `json:"cart_id" validate:"required"`
	ShippingAddress string    `json:"shipping_address" validate:"required"`
	PhoneNumber     string    `json:"phone_number" validate:"required,phone"`
	CustomerNotes   string    `json:"customer_notes"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type OrderFilters struct {
	Status *models.OrderStatus
	UserID *uuid.UUID
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateFromCart converts the user's cart into an order in one
// transaction: items are copied with their current product price frozen
// into the line, the cart is emptied, and the stored total is computed
// from the frozen prices. Stock is not re-validated here; a check at
// add-to-cart time is the only gate.
func (s *OrderService) CreateFromCart(userID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("", err.Error())
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Where("id = ? AND user_id = ?", req.CartID, userID).
			Preload("Items").
			Preload("Items.Product").
			First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("cart")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if len(cart.Items) == 0 {
			return apperrors.Validation("cart", "cart is empty")
		}

		order = &models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			ShippingAddress: req.ShippingAddress,
			PhoneNumber:     req.PhoneNumber,
			CustomerNotes:   req.CustomerNotes,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		total := decimal.Zero
		for i := range cart.Items {
			line := cart.Items[i]
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			}
			if line.Product != nil {
				item.Price = line.Product.Price
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			total = total.Add(item.TotalPrice())
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		order.TotalAmount = total
		if err := tx.Model(order).Update("total_amount", total).Error; err != nil {
			return fmt.Errorf("failed to store order total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.load(order.ID)
}

func (s *OrderService) load(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").
		Preload("Items.Product").
		Preload("User").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// Get returns the order to its owner or to staff; anyone else gets a
// not-found, not a forbidden, to avoid leaking order existence.
func (s *OrderService) Get(id, actorID uuid.UUID, isStaff bool) (*models.Order, error) {
	order, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != actorID && !isStaff {
		return nil, apperrors.NotFound("order")
	}
	return order, nil
}

func (s *OrderService) List(actorID uuid.UUID, isStaff bool, filters OrderFilters, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Order{})

	if isStaff {
		if filters.UserID != nil {
			query = query.Where("user_id = ?", *filters.UserID)
		}
	} else {
		query = query.Where("user_id = ?", actorID)
	}
	if filters.Status != nil {
		if !models.ValidOrderStatus(*filters.Status) {
			return nil, &apperrors.InvalidStatusError{Status: string(*filters.Status)}
		}
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var orders []models.Order
	query = query.Preload("Items").Preload("Items.Product")
	query = utils.ApplySort(query, params, []string{"created_at", "total_amount", "status"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

// Cancel is the single customer-facing transition; it is open only
// while the order is pending or processing.
// Cancel closes an order from pending or processing. Unlike Get, a
// non-owner is told about the order's existence with a permission error,
// not a not-found.
func (s *OrderService) Cancel(id, actorID uuid.UUID, isStaff bool) (*models.Order, error) {
	order, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != actorID && !isStaff {
		return nil, apperrors.Permission("only the order owner or staff may cancel an order")
	}

	if !order.CanBeCancelled() {
		return nil, &apperrors.InvalidTransitionError{
			From: string(order.Status),
			To:   string(models.OrderStatusCancelled),
		}
	}

	order.Status = models.OrderStatusCancelled
	if err := s.db.Model(order).Update("status", models.OrderStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	return order, nil
}

// UpdateStatus is the staff transition. Only membership in the status
// enum is enforced; staff may move an order between any two states,
// including out of terminal ones.
func (s *OrderService) UpdateStatus(id uuid.UUID, req *UpdateStatusRequest) (*models.Order, error) {
	if !models.ValidOrderStatus(req.Status) {
		return nil, &apperrors.InvalidStatusError{Status: string(req.Status)}
	}

	order, err := s.load(id)
	if err != nil {
		return nil, err
	}

	order.Status = req.Status
	if err := s.db.Model(order).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return order, nil
}

// RecomputeTotal re-derives the stored total from the frozen line
// prices. Item mutations do not trigger this implicitly.
func (s *OrderService) RecomputeTotal(id uuid.UUID) (*models.Order, error) {
	order, err := s.load(id)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range order.Items {
		total = total.Add(order.Items[i].TotalPrice())
	}

	order.TotalAmount = total
	if err := s.db.Model(order).Update("total_amount", total).Error; err != nil {
		return nil, fmt.Errorf("failed to store order total: %w", err)
	}
	return order, nil
}
