package handlerutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Dario0076/GestionPedidos/internal/servererrors"
)

// APIHandler is an http handler that returns an error so error handling can
// be centralized in [MakeHandler].
type APIHandler func(w http.ResponseWriter, r *http.Request) error

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// MakeHandler converts an [APIHandler] into a [http.HandlerFunc], logging and
// writing any returned error. Errors that are not a [servererrors.ServerError]
// are masked with a generic 500 response.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			log.Println(err)

			var serverError *servererrors.ServerError
			if errors.As(err, &serverError) {
				WriteErrorJSON(
					w,
					serverError.StatusCode,
					serverError.Error(),
					serverError.Errors,
				)
				return
			}

			WriteErrorJSON(
				w,
				http.StatusInternalServerError,
				"something went wrong",
				nil,
			)
		}
	}
}

// ParseJSON decodes the request body into v. Unknown fields are rejected so
// typos surface as 400s instead of silently dropped fields.
func ParseJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return writeJSON(w, statusCode, successResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) error {
	return writeJSON(w, statusCode, errorResponse{
		Status:  "error",
		Message: message,
		Errors:  errs,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}
