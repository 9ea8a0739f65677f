package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Dario0076/GestionPedidos/internal/handlerutils"
	"github.com/Dario0076/GestionPedidos/internal/middlewares"
	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/Dario0076/GestionPedidos/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	createOrder(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*Order, error)
	getAllOrders(ctx context.Context, ownerID *uuid.UUID) ([]*Order, error)
	getOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	updateStatus(ctx context.Context, orderID uuid.UUID, newStatus OrderStatus) (*Order, error)
	cancel(ctx context.Context, orderID uuid.UUID, requestingUserID *uuid.UUID) (*Order, error)
	getStats(ctx context.Context) (*OrderStats, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/orders",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createOrderHandler,
				"user", "admin",
			),
		),
	)

	router.Get(
		"/orders",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getAllOrdersHandler,
				"user", "admin",
			),
		),
	)

	router.Get(
		"/orders/stats",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getStatsHandler,
				"admin",
			),
		),
	)

	router.Get(
		"/orders/{orderID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getOrderHandler,
				"user", "admin",
			),
		),
	)

	router.Patch(
		"/orders/{orderID}/status",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateStatusHandler,
				"admin",
			),
		),
	)

	router.Patch(
		"/orders/{orderID}/cancel",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.cancelOrderHandler,
				"user", "admin",
			),
		),
	)
}

func (h *handler) createOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	userID := middlewares.GetEntityIDFromContextKey(ctx)
	if userID == uuid.Nil {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrUnauthorized.Error(),
			nil,
		)
	}

	var payload *CreateOrderRequest
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

	created, err := h.service.createOrder(ctx, userID, payload)
	if err != nil {
		return mapOrderError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"order created",
		created,
	)
}

func (h *handler) getAllOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	userID := middlewares.GetEntityIDFromContextKey(ctx)
	entityType := middlewares.GetEntityTypeFromContextKey(ctx)

	// admins may request the unfiltered view with ?all=true; everyone else
	// only ever sees their own orders.
	var ownerID *uuid.UUID
	if entityType != "admin" || r.URL.Query().Get("all") != "true" {
		ownerID = &userID
	}

	orders, err := h.service.getAllOrders(ctx, ownerID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all orders retrieved",
		orders,
	)
}

func (h *handler) getOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	found, err := h.service.getOrder(r.Context(), orderID)
	if err != nil {
		return mapOrderError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order found",
		found,
	)
}

func (h *handler) updateStatusHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	var payload *UpdateOrderStatusRequest
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

	updated, err := h.service.updateStatus(ctx, orderID, OrderStatus(payload.Status))
	if err != nil {
		return mapOrderError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order status updated",
		updated,
	)
}

func (h *handler) cancelOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	// admins may cancel any order; users only their own.
	var requestingUserID *uuid.UUID
	if middlewares.GetEntityTypeFromContextKey(ctx) != "admin" {
		userID := middlewares.GetEntityIDFromContextKey(ctx)
		requestingUserID = &userID
	}

	cancelled, err := h.service.cancel(ctx, orderID, requestingUserID)
	if err != nil {
		return mapOrderError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order cancelled",
		cancelled,
	)
}

func (h *handler) getStatsHandler(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.getStats(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stats retrieved",
		stats,
	)
}

func mapOrderError(err error) error {
	switch {
	case errors.Is(err, servererrors.ErrOrderNotFound):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrOrderNotFound.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrProductNotFound):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrInsufficientStock):
		return servererrors.New(
			http.StatusBadRequest,
			err.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrOrderNotOwned):
		return servererrors.New(
			http.StatusForbidden,
			servererrors.ErrOrderNotOwned.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrOrderNotCancellable):
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrOrderNotCancellable.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrEmptyOrder):
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrEmptyOrder.Error(),
			nil,
		)

	default:
		return err
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return uuid.Nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	return orderID, nil
}
