package category

import (
	"context"
	"testing"

	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryStore struct {
	categories map[uuid.UUID]*Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[uuid.UUID]*Category)}
}

func (f *fakeCategoryStore) createOne(_ context.Context, newCategory *CreateCategoryRequest) (*Category, error) {
	c := &Category{
		CategoryID:  uuid.New(),
		Name:        newCategory.Name,
		Description: newCategory.Description,
	}

	f.categories[c.CategoryID] = c
	return c, nil
}

func (f *fakeCategoryStore) findAll(_ context.Context) ([]*Category, error) {
	out := make([]*Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}

	return out, nil
}

func (f *fakeCategoryStore) findByID(_ context.Context, categoryID uuid.UUID) (*Category, error) {
	c, ok := f.categories[categoryID]
	if !ok {
		return nil, servererrors.ErrCategoryNotFound
	}

	return c, nil
}

func (f *fakeCategoryStore) findByName(_ context.Context, name string) (*Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}

	return nil, nil
}

func TestCreateCategory(t *testing.T) {
	svc := NewService(newFakeCategoryStore())

	created, err := svc.createCategory(context.Background(), &CreateCategoryRequest{
		Name:        "  Electrónicos ",
		Description: "Dispositivos electrónicos y gadgets",
	})
	require.NoError(t, err)
	assert.Equal(t, "Electrónicos", created.Name)

	_, err = svc.createCategory(context.Background(), &CreateCategoryRequest{
		Name: "Electrónicos",
	})
	require.ErrorIs(t, err, servererrors.ErrCategoryAlreadyExists)
}

func TestCategoryExists(t *testing.T) {
	svc := NewService(newFakeCategoryStore())

	created, err := svc.createCategory(context.Background(), &CreateCategoryRequest{
		Name: "Hogar",
	})
	require.NoError(t, err)

	exists, err := svc.Exists(context.Background(), created.CategoryID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}
