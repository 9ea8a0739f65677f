package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductStore struct {
	products map[uuid.UUID]*Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[uuid.UUID]*Product)}
}

func (f *fakeProductStore) createOne(_ context.Context, newProduct *CreateProductRequest, price decimal.Decimal) (*Product, error) {
	p := &Product{
		ProductID:   uuid.New(),
		CategoryID:  newProduct.CategoryID,
		Name:        newProduct.Name,
		Description: newProduct.Description,
		ImageURL:    newProduct.ImageURL,
		Price:       price,
		Stock:       newProduct.Stock,
		IsActive:    true,
	}

	f.products[p.ProductID] = p
	return p, nil
}

func (f *fakeProductStore) findAll(_ context.Context, _ *GetAllProductsRequestQuery) ([]*Product, int, error) {
	out := make([]*Product, 0, len(f.products))
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, p)
		}
	}

	return out, len(out), nil
}

func (f *fakeProductStore) findByID(_ context.Context, productID uuid.UUID) (*Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, servererrors.ErrProductNotFound
	}

	cpy := *p
	return &cpy, nil
}

func (f *fakeProductStore) findByName(_ context.Context, name string) (*Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			return p, nil
		}
	}

	return nil, nil
}

func (f *fakeProductStore) updateOne(_ context.Context, productID uuid.UUID, updates *UpdateProductRequest) (*Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, servererrors.ErrProductNotFound
	}

	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Price != nil {
		p.Price = decimal.NewFromFloat(*updates.Price)
	}
	if updates.IsActive != nil {
		p.IsActive = *updates.IsActive
	}

	cpy := *p
	return &cpy, nil
}

func (f *fakeProductStore) deactivateOne(_ context.Context, productID uuid.UUID) error {
	p, ok := f.products[productID]
	if !ok {
		return servererrors.ErrProductNotFound
	}

	p.IsActive = false
	return nil
}

func (f *fakeProductStore) adjustStock(_ context.Context, productID uuid.UUID, delta int) error {
	p, ok := f.products[productID]
	if !ok {
		return servererrors.ErrProductNotFound
	}

	if p.Stock+delta < 0 {
		return fmt.Errorf(
			"%w: product %s has %d unit(s) left",
			servererrors.ErrInsufficientStock,
			p.Name,
			p.Stock,
		)
	}

	p.Stock += delta
	return nil
}

func (f *fakeProductStore) transferStock(_ context.Context, fromProductID, toProductID uuid.UUID, quantity int) error {
	// all-or-nothing, like the real transaction
	if err := f.adjustStock(nil, fromProductID, -quantity); err != nil {
		return err
	}

	if err := f.adjustStock(nil, toProductID, quantity); err != nil {
		f.products[fromProductID].Stock += quantity
		return err
	}

	return nil
}

type fakeCategoryChecker struct {
	known map[uuid.UUID]bool
}

func (f *fakeCategoryChecker) Exists(_ context.Context, categoryID uuid.UUID) (bool, error) {
	return f.known[categoryID], nil
}

func newTestService() (*service, *fakeProductStore, uuid.UUID) {
	store := newFakeProductStore()
	categoryID := uuid.New()
	checker := &fakeCategoryChecker{known: map[uuid.UUID]bool{categoryID: true}}

	// nil cache disables caching
	return NewService(store, checker, nil), store, categoryID
}

func createRequest(categoryID uuid.UUID) *CreateProductRequest {
	return &CreateProductRequest{
		CategoryID:  categoryID,
		Name:        "Lámpara de Mesa",
		Description: "Lámpara LED regulable para escritorio",
		ImageURL:    "https://example.com/images/lampara.jpg",
		Price:       45.50,
		Stock:       30,
	}
}

func TestCreateProduct(t *testing.T) {
	svc, _, categoryID := newTestService()

	created, err := svc.createProduct(context.Background(), createRequest(categoryID))
	require.NoError(t, err)

	assert.Equal(t, "Lámpara de Mesa", created.Name)
	assert.True(t, created.Price.Equal(decimal.NewFromFloat(45.50)))
	assert.Equal(t, 30, created.Stock)
	assert.True(t, created.IsActive)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc, store, _ := newTestService()

	req := createRequest(uuid.New())
	_, err := svc.createProduct(context.Background(), req)

	require.ErrorIs(t, err, servererrors.ErrCategoryNotFound)
	assert.Empty(t, store.products)
}

func TestCreateProductDuplicateName(t *testing.T) {
	svc, _, categoryID := newTestService()

	_, err := svc.createProduct(context.Background(), createRequest(categoryID))
	require.NoError(t, err)

	_, err = svc.createProduct(context.Background(), createRequest(categoryID))
	require.ErrorIs(t, err, servererrors.ErrProductAlreadyExists)
}

func TestAdjustStock(t *testing.T) {
	svc, _, categoryID := newTestService()

	created, err := svc.createProduct(context.Background(), createRequest(categoryID))
	require.NoError(t, err)

	t.Run("restock", func(t *testing.T) {
		updated, err := svc.AdjustStock(context.Background(), created.ProductID, 20)
		require.NoError(t, err)
		assert.Equal(t, 50, updated.Stock)
	})

	t.Run("draw down", func(t *testing.T) {
		updated, err := svc.AdjustStock(context.Background(), created.ProductID, -50)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Stock)
	})

	t.Run("below zero refused", func(t *testing.T) {
		_, err := svc.AdjustStock(context.Background(), created.ProductID, -1)
		require.ErrorIs(t, err, servererrors.ErrInsufficientStock)

		current, err := svc.GetProduct(context.Background(), created.ProductID)
		require.NoError(t, err)
		assert.Equal(t, 0, current.Stock)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AdjustStock(context.Background(), uuid.New(), 5)
		require.ErrorIs(t, err, servererrors.ErrProductNotFound)
	})
}

func TestTransferStock(t *testing.T) {
	svc, store, categoryID := newTestService()

	from, err := svc.createProduct(context.Background(), createRequest(categoryID))
	require.NoError(t, err)

	toReq := createRequest(categoryID)
	toReq.Name = "Lámpara de Pie"
	toReq.Stock = 5
	to, err := svc.createProduct(context.Background(), toReq)
	require.NoError(t, err)

	transferred, err := svc.transferStock(context.Background(), &TransferStockRequest{
		FromProductID: from.ProductID,
		ToProductID:   to.ProductID,
		Quantity:      12,
	})
	require.NoError(t, err)

	assert.Equal(t, 18, transferred.FromProduct.Stock)
	assert.Equal(t, 17, transferred.ToProduct.Stock)
	assert.Equal(t, 12, transferred.TransferredQuantity)
	assert.Equal(t, 18, store.products[from.ProductID].Stock)
	assert.Equal(t, 17, store.products[to.ProductID].Stock)
}

func TestTransferStockInsufficientOrigin(t *testing.T) {
	svc, store, categoryID := newTestService()

	from, err := svc.createProduct(context.Background(), createRequest(categoryID))
	require.NoError(t, err)

	toReq := createRequest(categoryID)
	toReq.Name = "Lámpara de Pie"
	to, err := svc.createProduct(context.Background(), toReq)
	require.NoError(t, err)

	_, err = svc.transferStock(context.Background(), &TransferStockRequest{
		FromProductID: from.ProductID,
		ToProductID:   to.ProductID,
		Quantity:      31,
	})
	require.ErrorIs(t, err, servererrors.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Lámpara de Mesa")

	// neither side moved
	assert.Equal(t, 30, store.products[from.ProductID].Stock)
	assert.Equal(t, 30, store.products[to.ProductID].Stock)
}

func TestTransferStockUnknownDestination(t *testing.T) {
	svc, store, categoryID := newTestService()

	from, err := svc.createProduct(context.Background(), createRequest(categoryID))
	require.NoError(t, err)

	_, err = svc.transferStock(context.Background(), &TransferStockRequest{
		FromProductID: from.ProductID,
		ToProductID:   uuid.New(),
		Quantity:      5,
	})
	require.ErrorIs(t, err, servererrors.ErrProductNotFound)
	assert.Equal(t, 30, store.products[from.ProductID].Stock)
}

func TestUpdateProductRejectsUnknownCategory(t *testing.T) {
	svc, _, categoryID := newTestService()

	created, err := svc.createProduct(context.Background(), createRequest(categoryID))
	require.NoError(t, err)

	bogus := uuid.New()
	_, err = svc.updateProduct(context.Background(), created.ProductID, &UpdateProductRequest{
		CategoryID: &bogus,
	})
	require.ErrorIs(t, err, servererrors.ErrCategoryNotFound)
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	svc, store, categoryID := newTestService()

	created, err := svc.createProduct(context.Background(), createRequest(categoryID))
	require.NoError(t, err)

	require.NoError(t, svc.deleteProduct(context.Background(), created.ProductID))

	// the row survives for order item references, it just stops listing
	assert.False(t, store.products[created.ProductID].IsActive)

	listed, count, err := svc.getAllProducts(context.Background(), &GetAllProductsRequestQuery{
		PageOpts: PageOpts{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, listed)
}
