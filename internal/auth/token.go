package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims are the custom claims carried by both access and refresh
// tokens. EntityType distinguishes admin tokens from user tokens.
type TokenClaims struct {
	EntityID   string `json:"entityID"`
	EntityType string `json:"entityType"`
	TokenType  string `json:"tokenType"`
	jwt.RegisteredClaims
}

type TokenService struct {
	accessTokenSecret  []byte
	refreshTokenSecret []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

func NewTokenService(
	accessTokenSecret string,
	refreshTokenSecret string,
	accessTokenExpiryInSecs int64,
	refreshTokenExpiryInSecs int64,
) *TokenService {
	return &TokenService{
		accessTokenSecret:  []byte(accessTokenSecret),
		refreshTokenSecret: []byte(refreshTokenSecret),
		accessTokenExpiry:  time.Duration(accessTokenExpiryInSecs) * time.Second,
		refreshTokenExpiry: time.Duration(refreshTokenExpiryInSecs) * time.Second,
	}
}

func (ts *TokenService) GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error) {
	return ts.generateToken(
		entityID,
		entityType,
		"access",
		ts.accessTokenExpiry,
		ts.accessTokenSecret,
	)
}

func (ts *TokenService) GenerateRefreshToken(entityID uuid.UUID, entityType string) (string, error) {
	return ts.generateToken(
		entityID,
		entityType,
		"refresh",
		ts.refreshTokenExpiry,
		ts.refreshTokenSecret,
	)
}

func (ts *TokenService) generateToken(
	entityID uuid.UUID,
	entityType string,
	tokenType string,
	expiry time.Duration,
	secret []byte,
) (string, error) {
	now := time.Now()

	claims := &TokenClaims{
		EntityID:   entityID.String(),
		EntityType: entityType,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   entityID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return token, nil
}

func (ts *TokenService) ValidateAccessToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	return ts.validateToken(tokenStr, "access", ts.accessTokenSecret)
}

func (ts *TokenService) ValidateRefreshToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	return ts.validateToken(tokenStr, "refresh", ts.refreshTokenSecret)
}

func (ts *TokenService) validateToken(tokenStr, tokenType string, secret []byte) (bool, *TokenClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&TokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}

			return secret, nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return false, nil, ErrExpiredToken
		}

		return false, nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return false, nil, nil
	}

	return true, claims, nil
}

func (ts *TokenService) AccessTokenExpiry() time.Duration {
	return ts.accessTokenExpiry
}

func (ts *TokenService) RefreshTokenExpiry() time.Duration {
	return ts.refreshTokenExpiry
}
