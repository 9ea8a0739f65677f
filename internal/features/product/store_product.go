package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const productColumns = `p.product_id, p.category_id, p.name, p.description, p.image_url,
	p.price, p.stock, p.is_active, p.created_at, p.updated_at, c.name`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newProduct *CreateProductRequest, price decimal.Decimal) (*Product, error) {
	query := `INSERT INTO products(category_id, name, description, image_url, price, stock)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING product_id`

	var productID uuid.UUID
	err := s.db.QueryRowContext(
		ctx,
		query,
		newProduct.CategoryID,
		newProduct.Name,
		newProduct.Description,
		newProduct.ImageURL,
		price,
		newProduct.Stock,
	).Scan(&productID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	return s.findByID(ctx, productID)
}

func (s *Store) findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) (products []*Product, count int, err error) {
	query, countQuery, queryParams := generateQueryAndParams(queryItems)

	err = s.db.QueryRowContext(
		ctx,
		countQuery,
		queryParams[:len(queryParams)-2]..., // exclude limit and offset
	).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products count from product store: %w",
			err,
		)
	}

	rows, err := s.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}

		products = append(products, product)
	}

	return products, count, rows.Err()
}

func (s *Store) findByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE p.product_id = $1`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrProductNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) findByName(ctx context.Context, name string) (*Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE p.name = $1`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) updateOne(ctx context.Context, productID uuid.UUID, updates *UpdateProductRequest) (*Product, error) {
	setClauses := []string{}
	queryParams := []any{}

	appendSet := func(column string, value any) {
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(queryParams)+1),
		)
		queryParams = append(queryParams, value)
	}

	if updates.CategoryID != nil {
		appendSet("category_id", *updates.CategoryID)
	}

	if updates.Name != nil {
		appendSet("name", strings.TrimSpace(*updates.Name))
	}

	if updates.Description != nil {
		appendSet("description", strings.TrimSpace(*updates.Description))
	}

	if updates.ImageURL != nil {
		appendSet("image_url", strings.TrimSpace(*updates.ImageURL))
	}

	if updates.Price != nil {
		appendSet("price", decimal.NewFromFloat(*updates.Price))
	}

	if updates.IsActive != nil {
		appendSet("is_active", *updates.IsActive)
	}

	if len(setClauses) == 0 {
		return s.findByID(ctx, productID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE product_id = $%d`,
		strings.Join(setClauses, ", "),
		len(queryParams)+1,
	)
	queryParams = append(queryParams, productID)

	if _, err := s.db.ExecContext(ctx, query, queryParams...); err != nil {
		return nil, fmt.Errorf(
			"failed to update product in product store: %w",
			err,
		)
	}

	return s.findByID(ctx, productID)
}

func (s *Store) deactivateOne(ctx context.Context, productID uuid.UUID) error {
	query := `UPDATE products SET is_active = false, updated_at = NOW() WHERE product_id = $1`

	if _, err := s.db.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf(
			"failed to deactivate product in product store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) adjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	return AdjustStockTx(ctx, s.db, productID, delta)
}

// transferStock moves quantity units from one product to another in a single
// transaction. The conditional decrement on the origin makes the whole
// transfer roll back when the origin does not hold enough stock.
func (s *Store) transferStock(ctx context.Context, fromProductID, toProductID uuid.UUID, quantity int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf(
			"failed to begin transaction in product store: %w",
			err,
		)
	}
	defer tx.Rollback()

	if err := AdjustStockTx(ctx, tx, fromProductID, -quantity); err != nil {
		return err
	}

	if err := AdjustStockTx(ctx, tx, toProductID, quantity); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf(
			"failed to commit transfer transaction in product store: %w",
			err,
		)
	}

	return nil
}

// AdjustStockTx applies a signed stock delta as a single conditional update.
// Zero affected rows means the decrement would have gone negative (callers
// verify the product exists beforehand). Accepts any execer so the order
// engine can run it inside its own transaction.
func AdjustStockTx(ctx context.Context, db execer, productID uuid.UUID, delta int) error {
	query := `UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE product_id = $1 AND stock + $2 >= 0`

	result, err := db.ExecContext(ctx, query, productID, delta)
	if err != nil {
		return fmt.Errorf(
			"failed to adjust stock in product store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read affected rows in product store: %w",
			err,
		)
	}

	if affected == 0 {
		return servererrors.ErrInsufficientStock
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var product Product
	err := row.Scan(
		&product.ProductID,
		&product.CategoryID,
		&product.Name,
		&product.Description,
		&product.ImageURL,
		&product.Price,
		&product.Stock,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.CategoryName,
	)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func generateQueryAndParams(queryItems *GetAllProductsRequestQuery) (string, string, []any) {
	defaultQuery := `SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.category_id = p.category_id`
	defaultCountQuery := `SELECT COUNT(*)
		FROM products p
		JOIN categories c ON c.category_id = p.category_id`

	whereClauses := []string{"p.is_active = true"}
	queryParams := []any{}

	if queryItems.FilterOpts.Search != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"(p.name ILIKE $%d OR p.description ILIKE $%d)",
				len(queryParams)+1, len(queryParams)+2,
			),
		)

		searchPattern := fmt.Sprintf("%%%s%%", queryItems.FilterOpts.Search)
		queryParams = append(queryParams, searchPattern, searchPattern)
	}

	if queryItems.FilterOpts.CategoryID != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("p.category_id = $%d", len(queryParams)+1),
		)

		queryParams = append(queryParams, queryItems.FilterOpts.CategoryID)
	}

	whereStr := strings.Join(whereClauses, " AND ")
	defaultQuery += fmt.Sprintf(" WHERE %s", whereStr)
	defaultCountQuery += fmt.Sprintf(" WHERE %s", whereStr)

	defaultQuery += " ORDER BY p.created_at DESC"

	defaultQuery += fmt.Sprintf(
		" LIMIT $%d OFFSET $%d",
		len(queryParams)+1,
		len(queryParams)+2,
	)
	queryParams = append(
		queryParams,
		queryItems.PageOpts.Limit,
		(queryItems.PageOpts.Page-1)*queryItems.PageOpts.Limit,
	)

	return defaultQuery, defaultCountQuery, queryParams
}
