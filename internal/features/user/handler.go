package user

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
	register(ctx context.Context, newUser *RegisterUserRequest) (*AuthResponse, string, error)
	login(ctx context.Context, req *LoginUserRequest) (*AuthResponse, string, error)
	getProfile(ctx context.Context, userID uuid.UUID) (*User, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service            servicer
	middleware         middleware
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

func NewHandler(
	userService servicer,
	middleware middleware,
	accessTokenExpiry time.Duration,
	refreshTokenExpiry time.Duration,
) *handler {
	return &handler{
		service:            userService,
		middleware:         middleware,
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/auth/register",
		handlerutils.MakeHandler(
			h.registerHandler,
		),
	)

	router.Post(
		"/auth/login",
		handlerutils.MakeHandler(
			h.loginHandler,
		),
	)

	// protected routes
	router.Get(
		"/users/profile",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getProfileHandler,
				"user", "admin",
			),
		),
	)
}

func (h *handler) registerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *RegisterUserRequest
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

	authResponse, refreshToken, err := h.service.register(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrEmailAlreadyTaken):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrEmailAlreadyTaken.Error(),
				nil,
			)

		default:
			return err
		}
	}

	h.setAuthCookies(w, authResponse.AccessToken, refreshToken)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"user registered",
		authResponse,
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *LoginUserRequest
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

	authResponse, refreshToken, err := h.service.login(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidCredentials):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)

		default:
			return err
		}
	}

	h.setAuthCookies(w, authResponse.AccessToken, refreshToken)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"login successful",
		authResponse,
	)
}

func (h *handler) getProfileHandler(w http.ResponseWriter, r *http.Request) error {
	userID := middlewares.GetEntityIDFromContextKey(r.Context())
	if userID == uuid.Nil {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrUnauthorized.Error(),
			nil,
		)
	}

	profile, err := h.service.getProfile(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUserNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"profile retrieved",
		profile,
	)
}

func (h *handler) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.accessTokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshTokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
