package handlers

import (
	"net/http"

	"github.com/digibank/backend/internal/api/httpx"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/services"
)

type DepositHandler struct {
	deposits *services.DepositService
}

func NewDepositHandler(deposits *services.DepositService) *DepositHandler {
	return &DepositHandler{deposits: deposits}
}

type depositReq struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req depositReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	d, err := h.deposits.Request(r.Context(), uid, req.Amount, req.Method)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, map[string]any{"deposit": d})
}

func (h *DepositHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	limit, offset := pageParams(r)

	list, err := h.deposits.ListByUser(r.Context(), uid, limit, offset)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"deposits": list})
}
