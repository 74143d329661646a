// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	secure    bool
}

// NewHandler builds the auth endpoints. secure controls the cookie flag
// and is false only in local development.
func NewHandler(service *Service, secure bool) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		secure:    secure,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.GetMe)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(
				w,
				core.UnauthorizedError("Invalid email or password"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	SetSessionCookie(w, token, h.service.SessionTTL(), h.secure)

	core.OK(w, AuthResponse{User: toUserResponse(user)})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, token, err := h.service.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	SetSessionCookie(w, token, h.service.SessionTTL(), h.secure)

	core.Created(w, AuthResponse{User: toUserResponse(user)})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w, h.secure)
	core.NoContent(w)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractSessionToken(r)

	user := h.service.CurrentUser(r.Context(), token)
	if user == nil {
		core.Unauthorized(w, "")
		return
	}

	core.OK(w, toUserResponse(user))
}
