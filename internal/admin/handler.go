// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/adlib/internal/core"
)

type Handler struct {
	storeStats func(ctx context.Context) (map[string]int, error)
	storePing  func(ctx context.Context) error
	redisPing  func(ctx context.Context) error
}

type HandlerConfig struct {
	StoreStats func(ctx context.Context) (map[string]int, error)
	StorePing  func(ctx context.Context) error
	RedisPing  func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		storeStats: cfg.StoreStats,
		storePing:  cfg.StorePing,
		redisPing:  cfg.RedisPing,
	}
}

// RegisterRoutes mounts the admin dashboard endpoints. The request gate
// already guards the /admin prefix; adminOnly is the page-level re-check.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/stats", func(r chi.Router) {
		r.Use(adminOnly)

		r.Get("/", h.GetSystemStats)
		r.Get("/store", h.GetStoreStats)
		r.Get("/runtime", h.GetRuntimeStats)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeHealthy := true
	if h.storePing != nil {
		if err := h.storePing(ctx); err != nil {
			storeHealthy = false
		}
	}

	var redisHealthy *bool
	if h.redisPing != nil {
		healthy := h.redisPing(ctx) == nil
		redisHealthy = &healthy
	}

	response := SystemStatsResponse{
		Store: StoreStatus{
			Healthy:     storeHealthy,
			Collections: h.getStoreStats(ctx),
		},
		RedisHealthy: redisHealthy,
		Runtime:      readRuntimeStats(),
	}

	core.OK(w, response)
}

func (h *Handler) GetStoreStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getStoreStats(r.Context()))
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, readRuntimeStats())
}

func (h *Handler) getStoreStats(ctx context.Context) map[string]int {
	if h.storeStats == nil {
		return nil
	}

	stats, err := h.storeStats(ctx)
	if err != nil {
		return nil
	}

	return stats
}

func readRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

type SystemStatsResponse struct {
	Store        StoreStatus  `json:"store"`
	RedisHealthy *bool        `json:"redis_healthy,omitempty"`
	Runtime      RuntimeStats `json:"runtime"`
}

type StoreStatus struct {
	Healthy     bool           `json:"healthy"`
	Collections map[string]int `json:"collections,omitempty"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
