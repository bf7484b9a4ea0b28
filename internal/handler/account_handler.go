package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"account-ledger/internal/errors"
	"account-ledger/internal/service"
)

type AccountHandler struct {
	ledger *service.LedgerService
}

func NewAccountHandler(ledger *service.LedgerService) *AccountHandler {
	return &AccountHandler{
		ledger: ledger,
	}
}

type CreateAccountRequest struct {
	AccountID string           `json:"account_id"`
	Balance   *decimal.Decimal `json:"balance"`
}

func (r CreateAccountRequest) validate() *errors.AppError {
	if strings.TrimSpace(r.AccountID) == "" {
		return errors.NewAppError(errors.InvalidInput, "account_id must not be empty")
	}
	if r.Balance == nil {
		return errors.NewAppError(errors.InvalidInput, "balance is required")
	}
	if r.Balance.IsNegative() {
		return errors.NewAppError(errors.InvalidAmount, "initial balance must not be negative")
	}
	return nil
}

type AccountResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	if appErr := req.validate(); appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.ledger.CreateAccount(r.Context(), req.AccountID, *req.Balance)
	if err != nil {
		handleError(w, err)
		return
	}

	response := AccountResponse{
		AccountID: account.ID,
		Balance:   account.Balance.String(),
	}

	writeJSON(w, http.StatusCreated, response)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accountID := vars["account_id"]

	account, err := h.ledger.GetAccount(r.Context(), accountID)
	if err != nil {
		handleError(w, err)
		return
	}

	response := AccountResponse{
		AccountID: account.ID,
		Balance:   account.Balance.String(),
	}

	writeJSON(w, http.StatusOK, response)
}
