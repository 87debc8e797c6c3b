package authhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffpay/internal/domain/auth"
	"staffpay/internal/requestctx"
	"staffpay/internal/transport/http/api"
	"staffpay/internal/transport/http/middleware"
	"staffpay/internal/transport/http/shared"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, auth.User, error)
}

type Handler struct {
	Auth        Authenticator
	LoginLimit  int
	LoginWindow time.Duration
}

func NewHandler(authenticator Authenticator, loginLimit int) *Handler {
	return &Handler{Auth: authenticator, LoginLimit: loginLimit, LoginWindow: time.Minute}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.LoginRateLimit(h.LoginLimit, h.LoginWindow)).Post("/auth/login", h.HandleLogin)
	r.With(middleware.RequireAuth).Get("/auth/me", h.HandleMe)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailBadBody(w, r, err)
		return
	}

	token, user, err := h.Auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, loginResponse{
		Token: token,
		User:  userView{ID: user.ID, Username: user.Username, Role: user.Role},
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := requestctx.GetUser(r.Context())
	api.Success(w, userView{ID: user.UserID, Username: user.Username, Role: user.Role}, requestctx.GetRequestID(r.Context()))
}
