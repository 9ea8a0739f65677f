package user

import (
	"context"
	"testing"

	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	usersByEmail map[string]*User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{usersByEmail: make(map[string]*User)}
}

func (f *fakeUserStore) createOne(_ context.Context, newUser *RegisterUserRequest, hashedPassword string) (*User, error) {
	u := &User{
		UserID:   uuid.New(),
		Email:    newUser.Email,
		Password: hashedPassword,
		Name:     newUser.Name,
		Phone:    newUser.Phone,
		Address:  newUser.Address,
		Role:     RoleUser,
		IsActive: true,
	}

	f.usersByEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserStore) findByEmail(_ context.Context, email string) (*User, error) {
	return f.usersByEmail[email], nil
}

func (f *fakeUserStore) findByID(_ context.Context, userID uuid.UUID) (*User, error) {
	for _, u := range f.usersByEmail {
		if u.UserID == userID {
			return u, nil
		}
	}

	return nil, servererrors.ErrUserNotFound
}

type fakeTokenManager struct{}

func (fakeTokenManager) GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error) {
	return "access." + entityType + "." + entityID.String(), nil
}

func (fakeTokenManager) GenerateRefreshToken(entityID uuid.UUID, entityType string) (string, error) {
	return "refresh." + entityType + "." + entityID.String(), nil
}

func registerRequest() *RegisterUserRequest {
	return &RegisterUserRequest{
		Email:    "user@user.com",
		Password: "user123pass",
		Name:     "Usuario Demo",
		Phone:    "+34 666 123 456",
		Address:  "Calle Usuario 456",
	}
}

func TestRegisterHashesPasswordAndIssuesTokens(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeTokenManager{})

	resp, refreshToken, err := svc.register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.User)
	assert.Equal(t, "user@user.com", resp.User.Email)
	assert.Equal(t, RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, resp.AccessToken, refreshToken)

	// the stored password must be a bcrypt hash of the plaintext
	stored := store.usersByEmail["user@user.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "user123pass", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(stored.Password),
		[]byte("user123pass"),
	))
}

func TestRegisterNormalizesEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeTokenManager{})

	req := registerRequest()
	req.Email = "  User@USER.com "

	resp, _, err := svc.register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "user@user.com", resp.User.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeTokenManager{})

	_, _, err := svc.register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, _, err = svc.register(context.Background(), registerRequest())
	require.ErrorIs(t, err, servererrors.ErrEmailAlreadyTaken)
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeTokenManager{})

	_, _, err := svc.register(context.Background(), registerRequest())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, refreshToken, err := svc.login(context.Background(), &LoginUserRequest{
			Email:    "user@user.com",
			Password: "user123pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, refreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.login(context.Background(), &LoginUserRequest{
			Email:    "user@user.com",
			Password: "not-the-password",
		})
		require.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.login(context.Background(), &LoginUserRequest{
			Email:    "nobody@user.com",
			Password: "user123pass",
		})
		require.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		store.usersByEmail["user@user.com"].IsActive = false
		defer func() { store.usersByEmail["user@user.com"].IsActive = true }()

		_, _, err := svc.login(context.Background(), &LoginUserRequest{
			Email:    "user@user.com",
			Password: "user123pass",
		})
		require.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
	})
}

func TestEntityTypeFollowsRole(t *testing.T) {
	assert.Equal(t, "admin", (&User{Role: RoleAdmin}).EntityType())
	assert.Equal(t, "user", (&User{Role: RoleUser}).EntityType())
	assert.Equal(t, "user", (&User{}).EntityType())
}
