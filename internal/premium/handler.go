// AngelaMos | 2026
// handler.go

package premium

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
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the member-facing premium pages. Gating happens in
// the service per item; a gated member still gets a 200 with a paywall
// notice, never a 403.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/premium", func(r chi.Router) {
		r.Get("/", h.Overview)
		r.Get("/quizzes", h.ListQuizzes)
		r.Get("/quizzes/{quizID}", h.StartQuiz)
		r.Post("/quizzes/{quizID}/complete", h.CompleteQuiz)
		r.Get("/anatomy", h.ListAnatomy)
		r.Get("/anatomy/{itemID}", h.GetAnatomy)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/quizzes", func(r chi.Router) {
		r.Use(adminOnly)

		r.Post("/", h.UpsertQuiz)
	})

	r.Route("/admin/anatomy", func(r chi.Router) {
		r.Use(adminOnly)

		r.Post("/", h.UpsertAnatomy)
	})
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.service.Overview(
		ctx,
		middleware.GetUserID(ctx),
		middleware.GetUserPremium(ctx),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, overview)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListQuizzes(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, summaries)
}

func (h *Handler) ListAnatomy(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAnatomy(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	quizID := chi.URLParam(r, "quizID")

	quiz, gated, err := h.service.StartQuiz(
		ctx,
		middleware.GetUserID(ctx),
		middleware.GetUserPremium(ctx),
		quizID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "quiz")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	if gated {
		core.OK(w, NewGatedResponse())
		return
	}

	core.OK(w, quiz)
}

func (h *Handler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	quizID := chi.URLParam(r, "quizID")

	var req CompleteQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	gated, err := h.service.CompleteQuiz(
		ctx,
		middleware.GetUserID(ctx),
		middleware.GetUserPremium(ctx),
		quizID,
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "quiz")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	if gated {
		core.OK(w, NewGatedResponse())
		return
	}

	core.NoContent(w)
}

func (h *Handler) GetAnatomy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "itemID")

	item, gated, err := h.service.GetAnatomy(
		ctx,
		middleware.GetUserID(ctx),
		middleware.GetUserPremium(ctx),
		itemID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "anatomy content")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	if gated {
		core.OK(w, NewGatedResponse())
		return
	}

	core.OK(w, item)
}

func (h *Handler) UpsertQuiz(w http.ResponseWriter, r *http.Request) {
	var req UpsertQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	quiz, err := h.service.UpsertQuiz(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "correctOptionIndex is out of range")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, quiz)
}

func (h *Handler) UpsertAnatomy(w http.ResponseWriter, r *http.Request) {
	var req UpsertAnatomyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	item, err := h.service.UpsertAnatomy(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, item)
}
