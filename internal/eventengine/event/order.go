package event

import "github.com/google/uuid"

const (
	OrderCreatedEventName       EventName = "order.created"
	OrderStatusUpdatedEventName EventName = "order.status.updated"
	OrderCancelledEventName     EventName = "order.cancelled"
)

type OrderCreatedEvent struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Total   string
}

func (e *OrderCreatedEvent) GetEventName() EventName {
	return OrderCreatedEventName
}

type OrderStatusUpdatedEvent struct {
	OrderID   uuid.UUID
	OldStatus string
	NewStatus string
}

func (e *OrderStatusUpdatedEvent) GetEventName() EventName {
	return OrderStatusUpdatedEventName
}

type OrderCancelledEvent struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
}

func (e *OrderCancelledEvent) GetEventName() EventName {
	return OrderCancelledEventName
}
