package middlewares

import "github.com/Dario0076/GestionPedidos/internal/auth"

type tokenManager interface {
	ValidateAccessToken(tokenStr string) (isValid bool, claims *auth.TokenClaims, err error)
}

type middleware struct {
	jwtManager tokenManager
}

func NewMiddleware(tokenManager tokenManager) *middleware {
	return &middleware{
		jwtManager: tokenManager,
	}
}
