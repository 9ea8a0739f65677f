package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Requests

type OrderLineRequest struct {
	ProductID uuid.UUID `json:"productID" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	OrderItems []OrderLineRequest `json:"orderItems" validate:"required,min=1,dive"`
	Notes      string             `json:"notes" validate:"max=350"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED PREPARING SHIPPED DELIVERED CANCELLED"`
}

// Responses

// OrderStats is the admin snapshot of platform totals.
type OrderStats struct {
	TotalOrders   int             `json:"total_orders"`
	TotalProducts int             `json:"total_products"`
	TotalUsers    int             `json:"total_users"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	Timestamp     time.Time       `json:"timestamp"`
}
