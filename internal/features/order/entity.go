package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}

	return false
}

// IsCancellable reports whether an order in this status may still be
// cancelled. Once preparation starts the order is committed.
func (s OrderStatus) IsCancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Order struct {
	OrderID   uuid.UUID       `json:"order_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"-"`

	User  *OrderOwner  `json:"user,omitempty"`
	Items []*OrderItem `json:"order_items"`
}

// OrderOwner carries the owner's public fields for hydrated reads. The
// password never leaves the users table through this path.
type OrderOwner struct {
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
}

// OrderItem is immutable after creation. Price is the product price
// snapshotted at order time; the Product* fields are denormalized display
// fields from the products join and reflect the product's current state.
type OrderItem struct {
	OrderItemID uuid.UUID       `json:"order_item_id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`

	ProductName     string          `json:"product_name"`
	ProductImageURL string          `json:"product_image_url"`
	ProductPrice    decimal.Decimal `json:"product_price"`
}

// lineSnapshot is what the engine persists per requested line after
// validating the product and snapshotting its price.
type lineSnapshot struct {
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}
