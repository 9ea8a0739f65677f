package audit

import (
	"time"

	"github.com/google/uuid"
)

// OrderEvent is one row of the order trail, written asynchronously by the
// event subscriber.
type OrderEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	OrderID   uuid.UUID `json:"order_id"`
	EventType string    `json:"event_type"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
