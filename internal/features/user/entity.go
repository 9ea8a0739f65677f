package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// EntityType maps the stored role onto the entity type carried in tokens.
func (u *User) EntityType() string {
	if u.Role == RoleAdmin {
		return "admin"
	}

	return "user"
}
