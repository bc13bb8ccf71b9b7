package common

import (
	"encoding/json"
	"net/http"

	"jewel-studio-api/logger"

	"github.com/sirupsen/logrus"
)

// AppError carries the HTTP status for a failed request along with the
// client-facing message. The wrapped internal error is logged, never sent.
type AppError struct {
	Code    int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Success: false,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
