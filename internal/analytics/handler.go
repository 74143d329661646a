// AngelaMos | 2026
// handler.go

package analytics

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/adlib/internal/auth"
	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/middleware"
	"github.com/carterperez-dev/adlib/internal/user"
)

type UserResolver interface {
	GetByID(ctx context.Context, id string) (*auth.UserInfo, error)
}

type Handler struct {
	recorder *Recorder
	users    UserResolver
}

func NewHandler(recorder *Recorder, users UserResolver) *Handler {
	return &Handler{
		recorder: recorder,
		users:    users,
	}
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/analytics", func(r chi.Router) {
		r.Use(adminOnly)

		r.Get("/", h.GetSummary)
		r.Get("/export/csv", h.ExportCSV)
		r.Get("/export/json", h.ExportJSON)
	})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.recorder.Summarize(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, summary)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if !h.requireLiveAdmin(w, r) {
		return
	}

	events, err := h.recorder.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set(
		"Content-Disposition",
		`attachment; filename="analytics.csv"`,
	)

	cw := csv.NewWriter(w)
	//nolint:errcheck // header write shares the flush error path below
	_ = cw.Write([]string{"id", "type", "userId", "timestamp", "metadata"})

	for _, evt := range events {
		metadata := "{}"
		if evt.Metadata != nil {
			if raw, mErr := json.Marshal(evt.Metadata); mErr == nil {
				metadata = string(raw)
			}
		}

		//nolint:errcheck // flush below surfaces any write error
		_ = cw.Write([]string{
			evt.ID,
			evt.Type,
			evt.UserID,
			evt.Timestamp.Format(time.RFC3339),
			metadata,
		})
	}

	cw.Flush()
}

func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	if !h.requireLiveAdmin(w, r) {
		return
	}

	events, err := h.recorder.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(
		"Content-Disposition",
		`attachment; filename="analytics.json"`,
	)

	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(events)
}

// requireLiveAdmin re-resolves the acting user from the store instead of
// trusting the role baked into the token, so a role downgrade takes effect
// on the next export request.
func (h *Handler) requireLiveAdmin(
	w http.ResponseWriter,
	r *http.Request,
) bool {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return false
	}

	info, err := h.users.GetByID(r.Context(), userID)
	if err != nil || info.Role != user.RoleAdmin {
		core.Unauthorized(w, "")
		return false
	}

	return true
}
