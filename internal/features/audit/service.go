package audit

import (
	"context"

	"github.com/google/uuid"
)

type storer interface {
	createOne(ctx context.Context, orderID uuid.UUID, eventType, detail string) error
	findByOrderID(ctx context.Context, orderID uuid.UUID) ([]*OrderEvent, error)
}

type service struct {
	store storer
}

func NewService(auditStore storer) *service {
	return &service{
		store: auditStore,
	}
}

func (s *service) recordEvent(ctx context.Context, orderID uuid.UUID, eventType, detail string) error {
	return s.store.createOne(ctx, orderID, eventType, detail)
}

func (s *service) getOrderTrail(ctx context.Context, orderID uuid.UUID) ([]*OrderEvent, error) {
	return s.store.findByOrderID(ctx, orderID)
}
