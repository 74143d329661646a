// AngelaMos | 2026
// service.go

package library

import (
	"context"
	"errors"

	"github.com/carterperez-dev/adlib/internal/analytics"
	"github.com/carterperez-dev/adlib/internal/auth"
	"github.com/carterperez-dev/adlib/internal/core"
)

type Service struct {
	repo   Repository
	events auth.EventRecorder
}

func NewService(repo Repository, events auth.EventRecorder) *Service {
	return &Service{repo: repo, events: events}
}

// Browse returns approved images matching the given filters. A non-empty
// free-text query records a SEARCH event; any structured filter records
// FILTER_USE.
func (s *Service) Browse(
	ctx context.Context,
	userID string,
	params BrowseParams,
) ([]Image, error) {
	images, err := s.repo.ListImages(ctx, true, params)
	if err != nil {
		return nil, err
	}

	if params.Query != "" {
		s.events.Record(ctx, analytics.EventSearch, userID, map[string]any{
			"query":   params.Query,
			"results": len(images),
		})
	}
	if params.Filtered() {
		s.events.Record(ctx, analytics.EventFilterUse, userID, map[string]any{
			"species":   params.Species,
			"organ":     params.Organ,
			"severity":  params.Severity,
			"diseaseId": params.DiseaseID,
		})
	}

	return images, nil
}

func (s *Service) GetImage(
	ctx context.Context,
	userID string,
	imageID string,
) (*Image, error) {
	image, err := s.repo.GetImage(ctx, imageID, true)
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, analytics.EventImageView, userID, map[string]any{
		"imageId": image.ID,
	})

	return image, nil
}

// Compare resolves the requested images for side-by-side viewing. Unknown
// or unapproved IDs are silently dropped; fewer than two resolvable images
// is an input error.
func (s *Service) Compare(
	ctx context.Context,
	userID string,
	imageIDs []string,
) ([]Image, error) {
	if len(imageIDs) < 2 {
		return nil, core.ValidationError("at least two image ids are required")
	}

	images := make([]Image, 0, len(imageIDs))
	resolved := make([]string, 0, len(imageIDs))
	for _, id := range imageIDs {
		image, err := s.repo.GetImage(ctx, id, true)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return nil, err
		}
		images = append(images, *image)
		resolved = append(resolved, image.ID)
	}

	if len(images) < 2 {
		return nil, core.ValidationError("at least two image ids must resolve to approved images")
	}

	s.events.Record(ctx, analytics.EventImageCompare, userID, map[string]any{
		"imageIds": resolved,
	})

	return images, nil
}

func (s *Service) ListDiseases(ctx context.Context) ([]Disease, error) {
	return s.repo.ListDiseases(ctx)
}

// UpsertImage is the admin create/edit path. New images are stamped with
// the acting admin and start unapproved; edits keep the stored approval
// state and provenance.
func (s *Service) UpsertImage(
	ctx context.Context,
	actorID string,
	req UpsertImageRequest,
) (*Image, error) {
	image := Image{
		ID:                    req.ID,
		FileName:              req.FileName,
		Title:                 req.Title,
		Description:           req.Description,
		Species:               req.Species,
		Organ:                 req.Organ,
		Severity:              req.Severity,
		ConditionDiseaseID:    req.ConditionDiseaseID,
		UsageRights:           req.UsageRights,
		Source:                req.Source,
		GeographicalIncidence: req.GeographicalIncidence,
		NotifiableStatus:      req.NotifiableStatus,
		CreatedByUserID:       actorID,
	}

	return s.repo.UpsertImage(ctx, image)
}

func (s *Service) SetImageApproval(
	ctx context.Context,
	imageID string,
	approved bool,
) (*Image, error) {
	return s.repo.SetImageApproval(ctx, imageID, approved)
}

func (s *Service) UpsertDisease(
	ctx context.Context,
	req UpsertDiseaseRequest,
) (*Disease, error) {
	disease := Disease{
		ID:                    req.ID,
		Name:                  req.Name,
		Description:           req.Description,
		Relevance:             req.Relevance,
		NotifiableStatus:      req.NotifiableStatus,
		Species:               req.Species,
		GeographicalIncidence: req.GeographicalIncidence,
	}

	return s.repo.UpsertDisease(ctx, disease)
}
