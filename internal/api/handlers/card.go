package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digibank/backend/internal/api/httpx"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/services"
)

type CardHandler struct {
	cards *services.CardService
}

func NewCardHandler(cards *services.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type requestCardReq struct {
	AccountID string `json:"account_id"`
	Brand     string `json:"brand"`
}

func (h *CardHandler) Request(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req requestCardReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	c, err := h.cards.Request(r.Context(), uid, req.AccountID, req.Brand)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, map[string]any{"card": c})
}

func (h *CardHandler) Fund(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req services.FundCardInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	c, txn, err := h.cards.Fund(r.Context(), uid, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{
		"card":        c,
		"transaction": txn,
	})
}

func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	list, err := h.cards.List(r.Context(), uid)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"cards": list})
}
