package user

// Requests

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72,noAllRepeatingChars"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"max=30"`
	Address  string `json:"address" validate:"max=200"`
}

type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Responses

type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}
