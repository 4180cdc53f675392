package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digibank/backend/internal/api/httpx"
	"github.com/digibank/backend/internal/export"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/services"
)

// AdminHandler exposes the approval gate and back-office tooling. Every
// route behind it is wrapped in RequireRole("admin").
type AdminHandler struct {
	admin     *services.AdminService
	transfers *services.TransferService
	users     *services.UserService
	reconcile *services.ReconcileService
}

func NewAdminHandler(admin *services.AdminService, transfers *services.TransferService, users *services.UserService, reconcile *services.ReconcileService) *AdminHandler {
	return &AdminHandler{admin: admin, transfers: transfers, users: users, reconcile: reconcile}
}

type reasonReq struct {
	Reason string `json:"reason"`
}

// decodeReason tolerates an empty body; a reason is optional on declines.
func decodeReason(r *http.Request) string {
	var req reasonReq
	_ = httpx.Decode(r, &req)
	return req.Reason
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"users": users})
}

func (h *AdminHandler) CreditDebit(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())

	var req services.CreditDebitInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	account, txn, err := h.admin.CreditDebit(r.Context(), adminID, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{
		"account":     account,
		"transaction": txn,
	})
}

func (h *AdminHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	status := models.RequestStatus(r.URL.Query().Get("status"))

	list, err := h.transfers.List(r.Context(), status)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"transfers": list})
}

func (h *AdminHandler) ExportTransfers(w http.ResponseWriter, r *http.Request) {
	status := models.RequestStatus(r.URL.Query().Get("status"))

	list, err := h.transfers.List(r.Context(), status)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transfers.csv"`)
	if err := export.WriteTransfers(w, list); err != nil {
		// headers are already out; nothing useful left to send
		return
	}
}

func (h *AdminHandler) ApproveTransfer(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	tr, err := h.transfers.Approve(r.Context(), chi.URLParam(r, "id"), adminID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"transfer": tr})
}

func (h *AdminHandler) DeclineTransfer(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	tr, err := h.transfers.Decline(r.Context(), chi.URLParam(r, "id"), adminID, decodeReason(r))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"transfer": tr})
}

func (h *AdminHandler) ReverseTransfer(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	tr, err := h.transfers.Reverse(r.Context(), chi.URLParam(r, "id"), adminID, decodeReason(r))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"transfer": tr})
}

func (h *AdminHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	d, err := h.admin.ApproveDeposit(r.Context(), chi.URLParam(r, "id"), adminID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"deposit": d})
}

func (h *AdminHandler) DeclineDeposit(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	d, err := h.admin.DeclineDeposit(r.Context(), chi.URLParam(r, "id"), adminID, decodeReason(r))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"deposit": d})
}

func (h *AdminHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	wr, err := h.admin.ApproveWithdrawal(r.Context(), chi.URLParam(r, "id"), adminID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"withdrawal": wr})
}

func (h *AdminHandler) DeclineWithdrawal(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	wr, err := h.admin.DeclineWithdrawal(r.Context(), chi.URLParam(r, "id"), adminID, decodeReason(r))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"withdrawal": wr})
}

func (h *AdminHandler) ApproveCard(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	c, err := h.admin.ApproveCard(r.Context(), chi.URLParam(r, "id"), adminID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"card": c})
}

func (h *AdminHandler) DeclineCard(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	c, err := h.admin.DeclineCard(r.Context(), chi.URLParam(r, "id"), adminID, decodeReason(r))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"card": c})
}

func (h *AdminHandler) ApproveKYC(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	k, err := h.admin.ApproveKYC(r.Context(), chi.URLParam(r, "id"), adminID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"submission": k})
}

func (h *AdminHandler) DeclineKYC(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	k, err := h.admin.DeclineKYC(r.Context(), chi.URLParam(r, "id"), adminID, decodeReason(r))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"submission": k})
}

func (h *AdminHandler) ReconcileAccount(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reconcile.Recompute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"report": rep})
}
