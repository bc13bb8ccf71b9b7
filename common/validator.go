package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeAndValidate decodes the JSON request body into payload and runs the
// struct validation tags against it. The message is what the client sees when
// required fields are missing; field-level detail stays server-side.
func DecodeAndValidate(r *http.Request, payload interface{}, message string) *AppError {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return NewAppError(http.StatusBadRequest, "Invalid request body", nil)
	}

	if err := validate.Struct(payload); err != nil {
		return NewAppError(http.StatusBadRequest, message, nil)
	}

	return nil
}
