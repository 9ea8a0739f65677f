package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dario0076/GestionPedidos/internal/servererrors"
	"github.com/google/uuid"
)

const userColumns = `user_id, email, password, name, phone, address, role, is_active, created_at, updated_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newUser *RegisterUserRequest, hashedPassword string) (*User, error) {
	query := `INSERT INTO users(email, password, name, phone, address)
		VALUES($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	u, err := scanUserRow(s.db.QueryRowContext(
		ctx,
		query,
		newUser.Email,
		hashedPassword,
		newUser.Name,
		newUser.Phone,
		newUser.Address,
	))
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new user in user store: %w",
			err,
		)
	}

	return u, nil
}

func (s *Store) findByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUserRow(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to scan user from user store: %w",
			err,
		)
	}

	return u, nil
}

func (s *Store) findByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	u, err := scanUserRow(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan user from user store: %w",
			err,
		)
	}

	return u, nil
}

func scanUserRow(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.Password,
		&u.Name,
		&u.Phone,
		&u.Address,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}
