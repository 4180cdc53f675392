package handlers

import (
	"net/http"

	"github.com/digibank/backend/internal/api/httpx"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req services.TransferMoneyInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	res, err := h.payments.TransferMoney(r.Context(), uid, req)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{
		"payment":      res.Payment,
		"transactions": res.Transactions,
	})
}

func (h *PaymentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req services.WithdrawalInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	wr, err := h.payments.RequestWithdrawal(r.Context(), uid, req)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, map[string]any{"withdrawal": wr})
}

func (h *PaymentHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	limit, offset := pageParams(r)

	list, err := h.payments.ListWithdrawals(r.Context(), uid, limit, offset)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"withdrawals": list})
}
