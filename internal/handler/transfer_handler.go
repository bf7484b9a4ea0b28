package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"account-ledger/internal/errors"
	"account-ledger/internal/service"
)

type TransferHandler struct {
	ledger *service.LedgerService
}

func NewTransferHandler(ledger *service.LedgerService) *TransferHandler {
	return &TransferHandler{
		ledger: ledger,
	}
}

type TransferRequest struct {
	SourceAccountID      string           `json:"source_account_id"`
	DestinationAccountID string           `json:"destination_account_id"`
	Amount               *decimal.Decimal `json:"amount"`
}

func (r TransferRequest) validate() *errors.AppError {
	if strings.TrimSpace(r.SourceAccountID) == "" || strings.TrimSpace(r.DestinationAccountID) == "" {
		return errors.NewAppError(errors.InvalidInput, "source_account_id and destination_account_id are required")
	}
	if r.Amount == nil {
		return errors.NewAppError(errors.InvalidInput, "amount is required")
	}
	return nil
}

type TransferResponse struct {
	TransferID           string `json:"transfer_id"`
	SourceAccountID      string `json:"source_account_id"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               string `json:"amount"`
	Message              string `json:"message"`
}

func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	if appErr := req.validate(); appErr != nil {
		writeError(w, appErr)
		return
	}

	// The ledger re-validates the amount itself.
	transfer, err := h.ledger.TransferMoney(r.Context(), req.SourceAccountID, req.DestinationAccountID, *req.Amount)
	if err != nil {
		handleError(w, err)
		return
	}

	response := TransferResponse{
		TransferID:           transfer.ID.String(),
		SourceAccountID:      transfer.SourceAccountID,
		DestinationAccountID: transfer.DestinationAccountID,
		Amount:               transfer.Amount.String(),
		Message: fmt.Sprintf("Transferring %s from account %s to account %s",
			transfer.Amount, transfer.SourceAccountID, transfer.DestinationAccountID),
	}

	writeJSON(w, http.StatusOK, response)
}
