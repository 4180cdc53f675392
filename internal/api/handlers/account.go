package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digibank/backend/internal/api/httpx"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type openAccountReq struct {
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req openAccountReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	a, err := h.accounts.Open(r.Context(), uid, models.AccountType(req.Type), req.Currency)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, map[string]any{"account": a})
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	a, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"), uid)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"account": a})
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	accounts, err := h.accounts.List(r.Context(), uid)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	limit, offset := pageParams(r)

	txns, err := h.accounts.Transactions(r.Context(), chi.URLParam(r, "id"), uid, limit, offset)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"transactions": txns})
}
