// AngelaMos | 2026
// entity.go

package library

import (
	"time"
)

const (
	SeverityNormal   = "NORMAL"
	SeverityMild     = "MILD"
	SeverityModerate = "MODERATE"
	SeveritySevere   = "SEVERE"
)

const (
	StatusNotifiable    = "NOTIFIABLE"
	StatusNonNotifiable = "NON_NOTIFIABLE"
	StatusEAD           = "EAD"
)

// Image is the catalogue record for one clinical image, persisted to
// images.json. New uploads stay invisible to members until an admin
// approves them.
type Image struct {
	ID                    string    `json:"id"`
	FileName              string    `json:"fileName"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Species               string    `json:"species"`
	Organ                 string    `json:"organ"`
	Severity              string    `json:"severity"`
	ConditionDiseaseID    string    `json:"conditionDiseaseId"`
	UsageRights           string    `json:"usageRights"`
	Source                string    `json:"source"`
	GeographicalIncidence string    `json:"geographicalIncidence,omitempty"`
	NotifiableStatus      string    `json:"notifiableStatus,omitempty"`
	IsApproved            bool      `json:"isApproved"`
	CreatedByUserID       string    `json:"createdByUserId"`
	CreatedAt             time.Time `json:"createdAt"`
}

type Disease struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Relevance             string   `json:"relevance"`
	NotifiableStatus      string   `json:"notifiableStatus"`
	Species               []string `json:"species"`
	GeographicalIncidence string   `json:"geographicalIncidence,omitempty"`
}
