// AngelaMos | 2026
// dto.go

package library

type BrowseParams struct {
	Query     string
	Species   string
	Organ     string
	Severity  string
	DiseaseID string
}

// Filtered reports whether any structured filter is set, independent
// of the free-text query.
func (p BrowseParams) Filtered() bool {
	return p.Species != "" || p.Organ != "" || p.Severity != "" || p.DiseaseID != ""
}

type UpsertImageRequest struct {
	ID                    string `json:"id" validate:"omitempty,max=64"`
	FileName              string `json:"fileName" validate:"required,max=255"`
	Title                 string `json:"title" validate:"required,max=200"`
	Description           string `json:"description" validate:"required,max=2000"`
	Species               string `json:"species" validate:"required,max=100"`
	Organ                 string `json:"organ" validate:"required,max=100"`
	Severity              string `json:"severity" validate:"required,oneof=NORMAL MILD MODERATE SEVERE"`
	ConditionDiseaseID    string `json:"conditionDiseaseId" validate:"required,max=64"`
	UsageRights           string `json:"usageRights" validate:"required,max=500"`
	Source                string `json:"source" validate:"required,max=500"`
	GeographicalIncidence string `json:"geographicalIncidence" validate:"omitempty,max=500"`
	NotifiableStatus      string `json:"notifiableStatus" validate:"omitempty,oneof=NOTIFIABLE NON_NOTIFIABLE EAD"`
}

type ApproveImageRequest struct {
	IsApproved *bool `json:"isApproved" validate:"required"`
}

type UpsertDiseaseRequest struct {
	ID                    string   `json:"id" validate:"omitempty,max=64"`
	Name                  string   `json:"name" validate:"required,max=200"`
	Description           string   `json:"description" validate:"required,max=2000"`
	Relevance             string   `json:"relevance" validate:"required,max=2000"`
	NotifiableStatus      string   `json:"notifiableStatus" validate:"required,oneof=NOTIFIABLE NON_NOTIFIABLE EAD"`
	Species               []string `json:"species" validate:"required,min=1,dive,required,max=100"`
	GeographicalIncidence string   `json:"geographicalIncidence" validate:"omitempty,max=500"`
}
