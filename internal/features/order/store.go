package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dario0076/GestionPedidos/internal/features/product"
	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// createOne inserts the order, its items and the per-line stock decrements
// in a single transaction. The decrement is conditional (stock must not go
// negative), so a concurrent order for the same product makes this
// transaction fail with ErrInsufficientStock instead of overselling; the
// rollback then leaves no order, no items and no stock change behind.
func (s *Store) createOne(
	ctx context.Context,
	userID uuid.UUID,
	total decimal.Decimal,
	notes string,
	lines []*lineSnapshot,
) (uuid.UUID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed to begin transaction in order store: %w",
			err,
		)
	}
	defer tx.Rollback()

	orderQuery := `INSERT INTO orders(user_id, total, notes)
		VALUES($1, $2, $3)
		RETURNING order_id`

	var orderID uuid.UUID
	err = tx.QueryRowContext(
		ctx,
		orderQuery,
		userID,
		total,
		notes,
	).Scan(&orderID)
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed to insert new order in order store: %w",
			err,
		)
	}

	itemQuery := `INSERT INTO order_items(order_id, product_id, quantity, price)
		VALUES($1, $2, $3, $4)`

	for _, line := range lines {
		_, err = tx.ExecContext(
			ctx,
			itemQuery,
			orderID,
			line.ProductID,
			line.Quantity,
			line.Price,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf(
				"failed to insert order item in order store: %w",
				err,
			)
		}

		err = product.AdjustStockTx(ctx, tx, line.ProductID, -line.Quantity)
		if err != nil {
			if errors.Is(err, servererrors.ErrInsufficientStock) {
				return uuid.Nil, err
			}

			return uuid.Nil, fmt.Errorf(
				"failed to decrement stock in order store: %w",
				err,
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed to commit order transaction in order store: %w",
			err,
		)
	}

	return orderID, nil
}

func (s *Store) findAll(ctx context.Context, ownerID *uuid.UUID) ([]*Order, error) {
	query := `SELECT o.order_id, o.user_id, o.total, o.status, o.notes, o.created_at, o.updated_at,
			u.user_id, u.name, u.email, u.phone, u.address
		FROM orders o
		JOIN users u ON u.user_id = o.user_id`

	queryParams := []any{}
	if ownerID != nil {
		query += ` WHERE o.user_id = $1`
		queryParams = append(queryParams, *ownerID)
	}

	query += ` ORDER BY o.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all orders from order store: %w",
			err,
		)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan order from order store: %w",
				err,
			)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.OrderID)
	}

	itemsByOrder, err := s.findItemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		o.Items = itemsByOrder[o.OrderID]
		if o.Items == nil {
			o.Items = []*OrderItem{}
		}
	}

	return orders, nil
}

func (s *Store) findByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	query := `SELECT o.order_id, o.user_id, o.total, o.status, o.notes, o.created_at, o.updated_at,
			u.user_id, u.name, u.email, u.phone, u.address
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		WHERE o.order_id = $1`

	o, err := scanOrder(s.db.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrOrderNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan order from order store: %w",
			err,
		)
	}

	o.Items, err = s.findItems(ctx, o.OrderID)
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Store) findItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	itemsByOrder, err := s.findItemsForOrders(ctx, []uuid.UUID{orderID})
	if err != nil {
		return nil, err
	}

	items := itemsByOrder[orderID]
	if items == nil {
		items = []*OrderItem{}
	}

	return items, nil
}

// findItemsForOrders hydrates the items of every given order in one query,
// so listing N orders costs two queries rather than N+1.
func (s *Store) findItemsForOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*OrderItem, error) {
	placeholders := make([]string, 0, len(orderIDs))
	queryParams := make([]any, 0, len(orderIDs))
	for i, orderID := range orderIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		queryParams = append(queryParams, orderID)
	}

	query := fmt.Sprintf(
		`SELECT i.order_item_id, i.order_id, i.product_id, i.quantity, i.price,
			p.name, p.image_url, p.price
		FROM order_items i
		JOIN products p ON p.product_id = i.product_id
		WHERE i.order_id IN (%s)
		ORDER BY i.order_id, i.order_item_id`,
		strings.Join(placeholders, ", "),
	)

	rows, err := s.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get order items from order store: %w",
			err,
		)
	}
	defer rows.Close()

	itemsByOrder := make(map[uuid.UUID][]*OrderItem, len(orderIDs))
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.OrderItemID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&item.ProductName,
			&item.ProductImageURL,
			&item.ProductPrice,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan order item from order store: %w",
				err,
			)
		}

		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], &item)
	}

	return itemsByOrder, rows.Err()
}

func (s *Store) updateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE order_id = $1`

	if _, err := s.db.ExecContext(ctx, query, orderID, status); err != nil {
		return fmt.Errorf(
			"failed to update order status in order store: %w",
			err,
		)
	}

	return nil
}

// cancelOne restores every item's quantity to its product and flips the
// order to CANCELLED, all in one transaction. The status update is guarded
// so a cancel racing another cancel (or a status change) past the service
// check rolls back instead of restoring stock twice.
func (s *Store) cancelOne(ctx context.Context, existing *Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf(
			"failed to begin transaction in order store: %w",
			err,
		)
	}
	defer tx.Rollback()

	for _, item := range existing.Items {
		err = product.AdjustStockTx(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf(
				"failed to restore stock in order store: %w",
				err,
			)
		}
	}

	statusQuery := `UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE order_id = $1 AND status IN ('PENDING', 'CONFIRMED')`

	result, err := tx.ExecContext(ctx, statusQuery, existing.OrderID, StatusCancelled)
	if err != nil {
		return fmt.Errorf(
			"failed to cancel order in order store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read affected rows in order store: %w",
			err,
		)
	}

	if affected == 0 {
		return servererrors.ErrOrderNotCancellable
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf(
			"failed to commit cancel transaction in order store: %w",
			err,
		)
	}

	return nil
}

// stats runs its counts and the revenue sum inside one read transaction so
// the snapshot is internally consistent.
func (s *Store) stats(ctx context.Context) (*OrderStats, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf(
			"failed to begin transaction in order store: %w",
			err,
		)
	}
	defer tx.Rollback()

	orderStats := &OrderStats{
		Timestamp: time.Now(),
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM orders`, &orderStats.TotalOrders},
		{`SELECT COUNT(*) FROM products`, &orderStats.TotalProducts},
		{`SELECT COUNT(*) FROM users`, &orderStats.TotalUsers},
	}

	for _, count := range counts {
		if err := tx.QueryRowContext(ctx, count.query).Scan(count.dest); err != nil {
			return nil, fmt.Errorf(
				"failed to count rows in order store: %w",
				err,
			)
		}
	}

	err = tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders`,
	).Scan(&orderStats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to sum revenue in order store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf(
			"failed to commit stats transaction in order store: %w",
			err,
		)
	}

	return orderStats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var owner OrderOwner

	err := row.Scan(
		&o.OrderID,
		&o.UserID,
		&o.Total,
		&o.Status,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
		&owner.UserID,
		&owner.Name,
		&owner.Email,
		&owner.Phone,
		&owner.Address,
	)
	if err != nil {
		return nil, err
	}

	o.User = &owner

	return &o, nil
}
