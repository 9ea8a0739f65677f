package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, orderID uuid.UUID, eventType, detail string) error {
	query := `INSERT INTO order_events(order_id, event_type, detail) VALUES($1, $2, $3)`

	_, err := s.db.ExecContext(ctx, query, orderID, eventType, detail)
	if err != nil {
		return fmt.Errorf(
			"failed to insert order event in audit store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) findByOrderID(ctx context.Context, orderID uuid.UUID) ([]*OrderEvent, error) {
	query := `SELECT event_id, order_id, event_type, detail, created_at
		FROM order_events
		WHERE order_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get order events from audit store: %w",
			err,
		)
	}
	defer rows.Close()

	events := []*OrderEvent{}
	for rows.Next() {
		var orderEvent OrderEvent
		err := rows.Scan(
			&orderEvent.EventID,
			&orderEvent.OrderID,
			&orderEvent.EventType,
			&orderEvent.Detail,
			&orderEvent.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan order event from audit store: %w",
				err,
			)
		}

		events = append(events, &orderEvent)
	}

	return events, rows.Err()
}
