package handlers

import (
	"net/http"

	"github.com/digibank/backend/internal/api/httpx"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/services"
)

type KYCHandler struct {
	kyc *services.KYCService
}

func NewKYCHandler(kyc *services.KYCService) *KYCHandler {
	return &KYCHandler{kyc: kyc}
}

type kycSubmitReq struct {
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
}

func (h *KYCHandler) Submit(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req kycSubmitReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	k, err := h.kyc.Submit(r.Context(), uid, req.DocumentType, req.DocumentNumber)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, map[string]any{"submission": k})
}
