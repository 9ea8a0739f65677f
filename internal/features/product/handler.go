package product

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Dario0076/GestionPedidos/internal/handlerutils"
	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/Dario0076/GestionPedidos/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	getAllProducts(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error)
	getProduct(ctx context.Context, productID uuid.UUID) (*Product, error)
	updateProduct(ctx context.Context, productID uuid.UUID, updates *UpdateProductRequest) (*Product, error)
	deleteProduct(ctx context.Context, productID uuid.UUID) error
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*Product, error)
	transferStock(ctx context.Context, req *TransferStockRequest) (*TransferStockResponse, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(productService servicer, middleware middleware) *handler {
	return &handler{
		service:    productService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.getAllProductsHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)

	// protected routes
	router.Post(
		"/products",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createProductHandler,
				"admin",
			),
		),
	)

	router.Patch(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateProductHandler,
				"admin",
			),
		),
	)

	router.Delete(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteProductHandler,
				"admin",
			),
		),
	)

	router.Patch(
		"/products/{productID}/stock",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.adjustStockHandler,
				"admin",
			),
		),
	)

	router.Post(
		"/products/stock/transfer",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.transferStockHandler,
				"admin",
			),
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateProductRequest
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

	created, err := h.service.createProduct(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrProductAlreadyExists.Error(),
				nil,
			)

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
		http.StatusCreated,
		"product created",
		created,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queryItems := getQueryItems(r.URL.Query())

	if err := validate.StructFields(queryItems); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrURLQueryParams.Error(),
			err,
		)
	}

	products, totalCount, err := h.service.getAllProducts(ctx, queryItems)
	if err != nil {
		return err
	}

	limit := int(queryItems.PageOpts.Limit)
	totalPagesCount := (totalCount + limit - 1) / limit

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		GetAllProductsResponse{
			AllProductsCount:    totalCount,
			RetrievedItemsCount: len(products),
			TotalPagesCount:     totalPagesCount,
			Products:            products,
		},
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	found, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		return mapProductError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		found,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	var payload *UpdateProductRequest
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

	updated, err := h.service.updateProduct(ctx, productID, payload)
	if err != nil {
		return mapProductError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product updated",
		updated,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	if err := h.service.deleteProduct(r.Context(), productID); err != nil {
		return mapProductError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product deleted",
		nil,
	)
}

func (h *handler) adjustStockHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	var payload *AdjustStockRequest
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

	adjusted, err := h.service.AdjustStock(r.Context(), productID, payload.Delta)
	if err != nil {
		return mapProductError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stock adjusted",
		adjusted,
	)
}

func (h *handler) transferStockHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *TransferStockRequest
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

	transferred, err := h.service.transferStock(ctx, payload)
	if err != nil {
		return mapProductError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stock transferred",
		transferred,
	)
}

func mapProductError(err error) error {
	switch {
	case errors.Is(err, servererrors.ErrProductNotFound):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrCategoryNotFound):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrCategoryNotFound.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrInsufficientStock):
		// keep the wrapped detail, e.g. which product ran short
		return servererrors.New(
			http.StatusBadRequest,
			err.Error(),
			nil,
		)

	default:
		return err
	}
}

func parseProductID(r *http.Request) (uuid.UUID, error) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return uuid.Nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	return productID, nil
}

func getQueryItems(queriesParams url.Values) *GetAllProductsRequestQuery {
	query := new(GetAllProductsRequestQuery)

	query.FilterOpts.CategoryID = queriesParams.Get("categoryID")
	query.FilterOpts.Search = queriesParams.Get("search")

	query.PageOpts.Page = stringToUint64(1, queriesParams.Get("page"))
	query.PageOpts.Limit = stringToUint64(20, queriesParams.Get("limit"))

	return query
}

func stringToUint64(defaultValue uint64, field string) uint64 {
	num, err := strconv.ParseUint(field, 10, 0)
	if err != nil || num == 0 {
		return defaultValue
	}

	return num
}
