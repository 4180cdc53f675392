package handlers

import (
	"net/http"

	"github.com/digibank/backend/internal/api/httpx"
	"github.com/digibank/backend/internal/api/validate"
	"github.com/digibank/backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if err := validate.Collect(
		validate.Required("username", req.Username),
		validate.Required("email", req.Email),
		validate.Required("password", req.Password),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", err.Error(), err)
		return
	}

	u, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, map[string]any{"user": u})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	pair, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{
		"tokens": pair,
		"user":   u,
	})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "refresh_token is required", nil)
		return
	}

	pair, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"tokens": pair})
}
