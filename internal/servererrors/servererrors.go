package servererrors

import "errors"

// Domain sentinel errors. Services return these; handlers translate them into
// [ServerError] values with the right status code.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnauthorizedAccess  = errors.New("unauthorized access")
	ErrNoAccessTokenCookie = errors.New("no access token cookie")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyTaken = errors.New("email already registered")

	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")

	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists")
	ErrInsufficientStock    = errors.New("insufficient stock")

	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotOwned       = errors.New("order does not belong to requesting user")
	ErrOrderNotCancellable = errors.New("order is already in preparation or shipped and can not be cancelled")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
)

// ServerError carries an http status code alongside the message so the
// handler layer can write a response without re-deriving it.
type ServerError struct {
	StatusCode int
	Message    string
	Errors     any // optional per-field details, e.g. validation errors
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}
