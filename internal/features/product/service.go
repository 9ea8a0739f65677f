package product

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Dario0076/GestionPedidos/internal/cache"
	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Storer interface {
	createOne(ctx context.Context, newProduct *CreateProductRequest, price decimal.Decimal) (*Product, error)
	findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error)
	findByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	findByName(ctx context.Context, name string) (*Product, error)
	updateOne(ctx context.Context, productID uuid.UUID, updates *UpdateProductRequest) (*Product, error)
	deactivateOne(ctx context.Context, productID uuid.UUID) error
	adjustStock(ctx context.Context, productID uuid.UUID, delta int) error
	transferStock(ctx context.Context, fromProductID, toProductID uuid.UUID, quantity int) error
}

type categoryChecker interface {
	Exists(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

type service struct {
	store           Storer
	categoryService categoryChecker
	cache           *cache.Cache
}

func NewService(store Storer, categoryService categoryChecker, productCache *cache.Cache) *service {
	return &service{
		store:           store,
		categoryService: categoryService,
		cache:           productCache,
	}
}

func (s *service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	newProduct.Name = strings.TrimSpace(newProduct.Name)
	newProduct.Description = strings.TrimSpace(newProduct.Description)
	newProduct.ImageURL = strings.TrimSpace(newProduct.ImageURL)

	exists, err := s.categoryService.Exists(ctx, newProduct.CategoryID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, servererrors.ErrCategoryNotFound
	}

	existing, err := s.store.findByName(ctx, newProduct.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrProductAlreadyExists
	}

	created, err := s.store.createOne(
		ctx,
		newProduct,
		decimal.NewFromFloat(newProduct.Price),
	)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return created, nil
}

func (s *service) getAllProducts(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error) {
	cacheKey := fmt.Sprintf(
		"all:%s:%s:%d:%d",
		queryItems.FilterOpts.CategoryID,
		queryItems.FilterOpts.Search,
		queryItems.PageOpts.Page,
		queryItems.PageOpts.Limit,
	)

	var cached struct {
		Products []*Product `json:"products"`
		Count    int        `json:"count"`
	}

	hit, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Println("product cache read failed:", err)
	}

	if hit {
		return cached.Products, cached.Count, nil
	}

	products, count, err := s.store.findAll(ctx, queryItems)
	if err != nil {
		return nil, 0, err
	}

	cached.Products = products
	cached.Count = count
	if err := s.cache.Set(ctx, cacheKey, cached); err != nil {
		log.Println("product cache write failed:", err)
	}

	return products, count, nil
}

func (s *service) getProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	cacheKey := "one:" + productID.String()

	var cached Product
	hit, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Println("product cache read failed:", err)
	}

	if hit {
		return &cached, nil
	}

	found, err := s.store.findByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, found); err != nil {
		log.Println("product cache write failed:", err)
	}

	return found, nil
}

func (s *service) updateProduct(ctx context.Context, productID uuid.UUID, updates *UpdateProductRequest) (*Product, error) {
	if _, err := s.store.findByID(ctx, productID); err != nil {
		return nil, err
	}

	if updates.CategoryID != nil {
		exists, err := s.categoryService.Exists(ctx, *updates.CategoryID)
		if err != nil {
			return nil, err
		}

		if !exists {
			return nil, servererrors.ErrCategoryNotFound
		}
	}

	updated, err := s.store.updateOne(ctx, productID, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return updated, nil
}

// deleteProduct soft-deletes: the row stays so order items keep a valid
// product reference.
func (s *service) deleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.store.findByID(ctx, productID); err != nil {
		return err
	}

	if err := s.store.deactivateOne(ctx, productID); err != nil {
		return err
	}

	s.invalidateCache(ctx)

	return nil
}

// AdjustStock applies a signed delta to a product's stock, failing with
// ErrInsufficientStock when the result would go negative. Exported for the
// admin restock endpoint and cross-feature callers.
func (s *service) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*Product, error) {
	if _, err := s.store.findByID(ctx, productID); err != nil {
		return nil, err
	}

	if err := s.store.adjustStock(ctx, productID, delta); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return s.store.findByID(ctx, productID)
}

// transferStock moves stock between two products atomically. The origin must
// hold at least quantity units; the conditional decrement inside the store
// transaction enforces that against concurrent writers too.
func (s *service) transferStock(ctx context.Context, req *TransferStockRequest) (*TransferStockResponse, error) {
	fromProduct, err := s.store.findByID(ctx, req.FromProductID)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.findByID(ctx, req.ToProductID); err != nil {
		return nil, err
	}

	if fromProduct.Stock < req.Quantity {
		return nil, fmt.Errorf(
			"%w: product %q has %d unit(s) left",
			servererrors.ErrInsufficientStock,
			fromProduct.Name,
			fromProduct.Stock,
		)
	}

	if err := s.store.transferStock(ctx, req.FromProductID, req.ToProductID, req.Quantity); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	fromProduct, err = s.store.findByID(ctx, req.FromProductID)
	if err != nil {
		return nil, err
	}

	toProduct, err := s.store.findByID(ctx, req.ToProductID)
	if err != nil {
		return nil, err
	}

	return &TransferStockResponse{
		FromProduct:         fromProduct,
		ToProduct:           toProduct,
		TransferredQuantity: req.Quantity,
	}, nil
}

// GetProduct is the read used by the order engine to validate lines and
// snapshot prices.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	return s.store.findByID(ctx, productID)
}

// InvalidateCache drops all cached catalog reads. The order engine calls
// this after transactions that change stock.
func (s *service) InvalidateCache(ctx context.Context) {
	s.invalidateCache(ctx)
}

func (s *service) invalidateCache(ctx context.Context) {
	if err := s.cache.InvalidatePrefix(ctx, ""); err != nil {
		log.Println("product cache invalidation failed:", err)
	}
}
