// AngelaMos | 2026
// handler.go

package library

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

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

// RegisterRoutes mounts the member-facing library pages. The request gate
// already requires a session for these paths.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/library", func(r chi.Router) {
		r.Get("/", h.Browse)
		r.Get("/diseases", h.ListDiseases)
		r.Get("/{imageID}", h.GetImage)
	})

	r.Get("/compare", h.Compare)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/images", func(r chi.Router) {
		r.Use(adminOnly)

		r.Post("/", h.UpsertImage)
		r.Put("/{imageID}/approval", h.SetImageApproval)
	})

	r.Route("/admin/diseases", func(r chi.Router) {
		r.Use(adminOnly)

		r.Post("/", h.UpsertDisease)
	})
}

func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := BrowseParams{
		Query:     q.Get("q"),
		Species:   q.Get("species"),
		Organ:     q.Get("organ"),
		Severity:  q.Get("severity"),
		DiseaseID: q.Get("disease"),
	}

	images, err := h.service.Browse(
		r.Context(),
		middleware.GetUserID(r.Context()),
		params,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, images)
}

func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageID")

	image, err := h.service.GetImage(
		r.Context(),
		middleware.GetUserID(r.Context()),
		imageID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "image")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, image)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ids := splitIDs(r.URL.Query().Get("ids"))

	images, err := h.service.Compare(
		r.Context(),
		middleware.GetUserID(r.Context()),
		ids,
	)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "ids must name at least two approved images")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, images)
}

func (h *Handler) ListDiseases(w http.ResponseWriter, r *http.Request) {
	diseases, err := h.service.ListDiseases(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, diseases)
}

func (h *Handler) UpsertImage(w http.ResponseWriter, r *http.Request) {
	var req UpsertImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	image, err := h.service.UpsertImage(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, image)
}

func (h *Handler) SetImageApproval(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageID")

	var req ApproveImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	image, err := h.service.SetImageApproval(r.Context(), imageID, *req.IsApproved)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "image")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, image)
}

func (h *Handler) UpsertDisease(w http.ResponseWriter, r *http.Request) {
	var req UpsertDiseaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	disease, err := h.service.UpsertDisease(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, disease)
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}

	return ids
}
