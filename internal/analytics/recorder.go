// AngelaMos | 2026
// recorder.go

package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/adlib/internal/store"
)

const recentLimit = 50

type Recorder struct {
	events *store.Collection[Event]
}

func NewRecorder(st *store.Store) *Recorder {
	return &Recorder{
		events: store.NewCollection[Event](st, store.AnalyticsFile),
	}
}

// Record appends one event. It is deliberately best-effort: page renders
// must not fail because the analytics file could not be written.
func (r *Recorder) Record(
	ctx context.Context,
	eventType string,
	userID string,
	metadata map[string]any,
) {
	event := Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      eventType,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	}

	err := r.events.Update(ctx, func(events []Event) ([]Event, error) {
		return append(events, event), nil
	})
	if err != nil {
		slog.Error("record analytics event",
			"type", eventType,
			"error", err,
		)
	}
}

func (r *Recorder) List(ctx context.Context) ([]Event, error) {
	return r.events.Load(ctx)
}

func (r *Recorder) Summarize(ctx context.Context) (*Summary, error) {
	events, err := r.events.Load(ctx)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int)
	for _, evt := range events {
		byType[evt.Type]++
	}

	// Most recent first.
	start := len(events) - recentLimit
	if start < 0 {
		start = 0
	}
	recent := make([]Event, 0, len(events)-start)
	for i := len(events) - 1; i >= start; i-- {
		recent = append(recent, events[i])
	}

	return &Summary{
		TotalEvents: len(events),
		ByType:      byType,
		Recent:      recent,
	}, nil
}
