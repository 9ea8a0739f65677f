package order

import (
	"context"
	"fmt"
	"log"

	"github.com/Dario0076/GestionPedidos/internal/eventengine"
	"github.com/Dario0076/GestionPedidos/internal/eventengine/event"
	"github.com/Dario0076/GestionPedidos/internal/features/product"
	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Storer interface {
	createOne(ctx context.Context, userID uuid.UUID, total decimal.Decimal, notes string, lines []*lineSnapshot) (uuid.UUID, error)
	findAll(ctx context.Context, ownerID *uuid.UUID) ([]*Order, error)
	findByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	updateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error
	cancelOne(ctx context.Context, existing *Order) error
	stats(ctx context.Context) (*OrderStats, error)
}

type productReader interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*product.Product, error)
	InvalidateCache(ctx context.Context)
}

type service struct {
	store          Storer
	productService productReader
	eventEngine    eventengine.RegisterPublisher
}

func NewService(
	store Storer,
	productService productReader,
	eventEngine eventengine.RegisterPublisher,
) *service {
	if eventEngine != nil {
		eventEngine.RegisterEvents(
			event.OrderCreatedEventName,
			event.OrderStatusUpdatedEventName,
			event.OrderCancelledEventName,
		)
	}

	return &service{
		store:          store,
		productService: productService,
		eventEngine:    eventEngine,
	}
}

// createOrder validates every line against the current catalog, snapshots
// prices, and persists the order, its items and the stock decrements as one
// transaction. The per-line reads here are non-mutating; the conditional
// decrement inside the store transaction is what actually reserves stock,
// so a concurrent order racing past these checks still cannot drive stock
// negative.
func (s *service) createOrder(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, servererrors.ErrEmptyOrder
	}

	total := decimal.Zero
	lines := make([]*lineSnapshot, 0, len(req.OrderItems))

	for _, line := range req.OrderItems {
		p, err := s.productService.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		if p.Stock < line.Quantity {
			return nil, fmt.Errorf(
				"%w: product %q has %d unit(s) left",
				servererrors.ErrInsufficientStock,
				p.Name,
				p.Stock,
			)
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		lines = append(lines, &lineSnapshot{
			ProductID: p.ProductID,
			Quantity:  line.Quantity,
			Price:     p.Price,
		})
	}

	orderID, err := s.store.createOne(ctx, userID, total, req.Notes, lines)
	if err != nil {
		return nil, err
	}

	s.productService.InvalidateCache(ctx)

	created, err := s.store.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.publish(&event.Event{
		Name: event.OrderCreatedEventName,
		Payload: &event.OrderCreatedEvent{
			OrderID: created.OrderID,
			UserID:  created.UserID,
			Total:   created.Total.String(),
		},
	})

	return created, nil
}

// getAllOrders returns hydrated orders, newest first. A nil ownerID is the
// admin view across all users; otherwise only the owner's orders are
// returned.
func (s *service) getAllOrders(ctx context.Context, ownerID *uuid.UUID) ([]*Order, error) {
	return s.store.findAll(ctx, ownerID)
}

func (s *service) getOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	return s.store.findByID(ctx, orderID)
}

// updateStatus overwrites the order's status with no transition table:
// any status may be set from any other, matching the permissive
// admin-facing behavior this endpoint has always had.
func (s *service) updateStatus(ctx context.Context, orderID uuid.UUID, newStatus OrderStatus) (*Order, error) {
	existing, err := s.store.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.store.updateStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}

	s.publish(&event.Event{
		Name: event.OrderStatusUpdatedEventName,
		Payload: &event.OrderStatusUpdatedEvent{
			OrderID:   orderID,
			OldStatus: string(existing.Status),
			NewStatus: string(newStatus),
		},
	})

	return s.store.findByID(ctx, orderID)
}

// cancel restores each line's quantity to its product's stock and marks the
// order CANCELLED, atomically. A second cancel fails the status check, so
// stock is never restored twice. requestingUserID is nil for admin callers;
// otherwise it must match the order's owner.
func (s *service) cancel(ctx context.Context, orderID uuid.UUID, requestingUserID *uuid.UUID) (*Order, error) {
	existing, err := s.store.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if requestingUserID != nil && *requestingUserID != existing.UserID {
		return nil, servererrors.ErrOrderNotOwned
	}

	if !existing.Status.IsCancellable() {
		return nil, servererrors.ErrOrderNotCancellable
	}

	if err := s.store.cancelOne(ctx, existing); err != nil {
		return nil, err
	}

	s.productService.InvalidateCache(ctx)

	s.publish(&event.Event{
		Name: event.OrderCancelledEventName,
		Payload: &event.OrderCancelledEvent{
			OrderID: existing.OrderID,
			UserID:  existing.UserID,
		},
	})

	return s.store.findByID(ctx, orderID)
}

// getStats returns order/product/user counts and the revenue sum across all
// orders, read in one consistent snapshot.
func (s *service) getStats(ctx context.Context) (*OrderStats, error) {
	return s.store.stats(ctx)
}

func (s *service) publish(newEvent *event.Event) {
	if s.eventEngine == nil {
		return
	}

	if err := s.eventEngine.Publish(newEvent); err != nil {
		log.Println("failed to publish order event:", err)
	}
}
