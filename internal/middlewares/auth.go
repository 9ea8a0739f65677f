package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dario0076/GestionPedidos/internal/handlerutils"
	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
)

type entityIDContextKey struct{}
type entityTypeContextKey struct{}

var (
	EntityIDKey   entityIDContextKey   = entityIDContextKey{}
	EntityTypeKey entityTypeContextKey = entityTypeContextKey{}
)

// AuthWithContext guards h behind a valid access token. authEntityTypes lists
// the entity types allowed through; the authenticated entity's id and type
// are placed on the request context.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		tokenStr, err := extractAccessToken(r)
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				err.Error(),
				nil,
			)
		}

		isValid, claims, err := mw.jwtManager.ValidateAccessToken(tokenStr)
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		if !isValid {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		allowed := false
		for _, entityType := range authEntityTypes {
			if claims.EntityType == entityType {
				allowed = true
				break
			}
		}

		if !allowed {
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrUnauthorizedAccess.Error(),
				nil,
			)
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, EntityIDKey, claims.EntityID)
		ctx = context.WithValue(ctx, EntityTypeKey, claims.EntityType)
		r = r.WithContext(ctx)

		return h(w, r)
	}
}

// extractAccessToken reads the token from the accessToken cookie, falling
// back to a bearer Authorization header for non-browser clients.
func extractAccessToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie("accessToken")
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok && token != "" {
		return token, nil
	}

	return "", servererrors.ErrNoAccessTokenCookie
}

func GetEntityIDFromContextKey(ctx context.Context) uuid.UUID {
	entityIDStr, ok := ctx.Value(EntityIDKey).(string)
	if !ok {
		return uuid.Nil
	}

	entityID, err := uuid.Parse(entityIDStr)
	if err != nil {
		return uuid.Nil
	}

	return entityID
}

func GetEntityTypeFromContextKey(ctx context.Context) string {
	entityType, ok := ctx.Value(EntityTypeKey).(string)
	if !ok {
		return ""
	}

	return entityType
}
