package category

import (
	"context"
	"errors"
	"strings"

	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error)
	findAll(ctx context.Context) ([]*Category, error)
	findByID(ctx context.Context, categoryID uuid.UUID) (*Category, error)
	findByName(ctx context.Context, name string) (*Category, error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error) {
	newCategory.Name = strings.TrimSpace(newCategory.Name)
	newCategory.Description = strings.TrimSpace(newCategory.Description)

	existing, err := s.store.findByName(ctx, newCategory.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrCategoryAlreadyExists
	}

	return s.store.createOne(ctx, newCategory)
}

func (s *service) getAllCategories(ctx context.Context) ([]*Category, error) {
	return s.store.findAll(ctx)
}

func (s *service) getCategory(ctx context.Context, categoryID uuid.UUID) (*Category, error) {
	return s.store.findByID(ctx, categoryID)
}

// Exists reports whether a category id resolves. Used by the product feature
// to validate references before insert.
func (s *service) Exists(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	_, err := s.store.findByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, servererrors.ErrCategoryNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
