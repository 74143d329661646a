// AngelaMos | 2026
// entity.go

package analytics

import (
	"time"
)

const (
	EventLogin              = "LOGIN"
	EventImageView          = "IMAGE_VIEW"
	EventSearch             = "SEARCH"
	EventFilterUse          = "FILTER_USE"
	EventImageCompare       = "IMAGE_COMPARE"
	EventQuizStart          = "QUIZ_START"
	EventQuizComplete       = "QUIZ_COMPLETE"
	EventPremiumContentView = "PREMIUM_CONTENT_VIEW"
)

// Event is one line of the append-only log in analytics.json.
type Event struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId,omitempty"`
	Type      string         `json:"type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Summary struct {
	TotalEvents int            `json:"total_events"`
	ByType      map[string]int `json:"by_type"`
	Recent      []Event        `json:"recent"`
}
