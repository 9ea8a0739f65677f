package category

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Dario0076/GestionPedidos/internal/handlerutils"
	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/Dario0076/GestionPedidos/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error)
	getAllCategories(ctx context.Context) ([]*Category, error)
	getCategory(ctx context.Context, categoryID uuid.UUID) (*Category, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(categoryService servicer, middleware middleware) *handler {
	return &handler{
		service:    categoryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/categories",
		handlerutils.MakeHandler(
			h.getAllCategoriesHandler,
		),
	)

	router.Get(
		"/categories/{categoryID}",
		handlerutils.MakeHandler(
			h.getCategoryHandler,
		),
	)

	// protected routes
	router.Post(
		"/categories",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createCategoryHandler,
				"admin",
			),
		),
	)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateCategoryRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	category, err := h.service.createCategory(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCategoryAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrCategoryAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"category created",
		category,
	)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.service.getAllCategories(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all categories retrieved",
		categories,
	)
}

func (h *handler) getCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	categoryIDStr := chi.URLParam(r, "categoryID")

	categoryID, err := uuid.Parse(categoryIDStr)
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	category, err := h.service.getCategory(r.Context(), categoryID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCategoryNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category found",
		category,
	)
}
