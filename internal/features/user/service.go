package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type Storer interface {
	createOne(ctx context.Context, newUser *RegisterUserRequest, hashedPassword string) (*User, error)
	findByEmail(ctx context.Context, email string) (*User, error)
	findByID(ctx context.Context, userID uuid.UUID) (*User, error)
}

type tokenGenerator interface {
	GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error)
	GenerateRefreshToken(entityID uuid.UUID, entityType string) (string, error)
}

type service struct {
	store        Storer
	tokenManager tokenGenerator
}

func NewService(store Storer, tokenManager tokenGenerator) *service {
	return &service{
		store:        store,
		tokenManager: tokenManager,
	}
}

func (s *service) register(ctx context.Context, newUser *RegisterUserRequest) (*AuthResponse, string, error) {
	newUser.Email = strings.ToLower(strings.TrimSpace(newUser.Email))
	newUser.Name = strings.TrimSpace(newUser.Name)

	existing, err := s.store.findByEmail(ctx, newUser.Email)
	if err != nil {
		return nil, "", err
	}

	if existing != nil {
		return nil, "", servererrors.ErrEmailAlreadyTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(newUser.Password),
		bcryptCost,
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	createdUser, err := s.store.createOne(ctx, newUser, string(hashedPassword))
	if err != nil {
		return nil, "", err
	}

	return s.issueTokens(createdUser)
}

func (s *service) login(ctx context.Context, req *LoginUserRequest) (*AuthResponse, string, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.store.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}

	if existing == nil || !existing.IsActive {
		return nil, "", servererrors.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(existing.Password),
		[]byte(req.Password),
	)
	if err != nil {
		return nil, "", servererrors.ErrInvalidCredentials
	}

	return s.issueTokens(existing)
}

func (s *service) getProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.store.findByID(ctx, userID)
}

// issueTokens returns the auth response with the access token and,
// separately, the refresh token destined for an http-only cookie.
func (s *service) issueTokens(u *User) (*AuthResponse, string, error) {
	accessToken, err := s.tokenManager.GenerateAccessToken(
		u.UserID,
		u.EntityType(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenManager.GenerateRefreshToken(
		u.UserID,
		u.EntityType(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:        u,
		AccessToken: accessToken,
	}, refreshToken, nil
}
