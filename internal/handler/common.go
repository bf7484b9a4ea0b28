package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/google/uuid"

	"account-ledger/internal/errors"
)

type Response struct {
	RequestID string      `json:"request_id"`
	Data      interface{} `json:"data,omitempty"`
	Error     *Error      `json:"error,omitempty"`
}

type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	AccountID string `json:"account_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{RequestID: uuid.NewString(), Data: data}
	json.NewEncoder(w).Encode(response)
}

func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")

	statusCode := appErr.HTTPStatus()
	errResponse := Error{
		Code:      string(appErr.Code),
		Message:   appErr.Message,
		Details:   appErr.Details,
		AccountID: appErr.AccountID,
	}

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{RequestID: uuid.NewString(), Error: &errResponse})
}

// handleError writes err, hiding anything that is not an AppError behind a
// generic internal error.
func handleError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		writeError(w, appErr)
		return
	}
	writeError(w, errors.NewAppError(errors.InternalError, "an unexpected error occurred"))
}
