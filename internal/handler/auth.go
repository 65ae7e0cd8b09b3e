package handler

import (
	"net/http"

	"github.com/mementoapp/memento/internal/ctxkeys"
	"github.com/mementoapp/memento/internal/metrics"
	"github.com/mementoapp/memento/internal/respond"
	"github.com/mementoapp/memento/internal/service"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"` // bcrypt ignores bytes past 72
	Name     string `json:"name" validate:"required,notblank,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{
		authService: authService,
	}
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name)
	metrics.RecordAuthEvent("register", err == nil)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, user)
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	metrics.RecordAuthEvent("login", err == nil)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, ctxkeys.User(r.Context()))
}
