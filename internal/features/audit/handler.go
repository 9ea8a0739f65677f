package audit

import (
	"net/http"

	"github.com/Dario0076/GestionPedidos/internal/handlerutils"
	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(auditService servicer, middleware middleware) *handler {
	return &handler{
		service:    auditService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/orders/{orderID}/events",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getOrderTrailHandler,
				"admin",
			),
		),
	)
}

func (h *handler) getOrderTrailHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	events, err := h.service.getOrderTrail(r.Context(), orderID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order events retrieved",
		events,
	)
}
