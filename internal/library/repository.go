// AngelaMos | 2026
// repository.go

package library

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/store"
)

type Repository interface {
	ListImages(ctx context.Context, approvedOnly bool, params BrowseParams) ([]Image, error)
	GetImage(ctx context.Context, id string, approvedOnly bool) (*Image, error)
	UpsertImage(ctx context.Context, image Image) (*Image, error)
	SetImageApproval(ctx context.Context, id string, approved bool) (*Image, error)
	ListDiseases(ctx context.Context) ([]Disease, error)
	UpsertDisease(ctx context.Context, disease Disease) (*Disease, error)
}

type repository struct {
	images   *store.Collection[Image]
	diseases *store.Collection[Disease]
}

func NewRepository(s *store.Store) Repository {
	return &repository{
		images:   store.NewCollection[Image](s, store.ImagesFile),
		diseases: store.NewCollection[Disease](s, store.DiseasesFile),
	}
}

func (r *repository) ListImages(
	ctx context.Context,
	approvedOnly bool,
	params BrowseParams,
) ([]Image, error) {
	images, err := r.images.Load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]Image, 0, len(images))
	for _, img := range images {
		if approvedOnly && !img.IsApproved {
			continue
		}
		if !matchesParams(img, params) {
			continue
		}
		matched = append(matched, img)
	}

	return matched, nil
}

func (r *repository) GetImage(
	ctx context.Context,
	id string,
	approvedOnly bool,
) (*Image, error) {
	images, err := r.images.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range images {
		if images[i].ID != id {
			continue
		}
		if approvedOnly && !images[i].IsApproved {
			return nil, core.ErrNotFound
		}
		return &images[i], nil
	}

	return nil, core.ErrNotFound
}

// UpsertImage inserts when the ID matches no stored record and replaces in
// place otherwise. Edits never touch approval state, creator, or creation
// time; those fields are carried over from the stored record. Inserts are
// stamped inside the closure so a client-supplied ID gets the same
// treatment as a generated one.
func (r *repository) UpsertImage(ctx context.Context, image Image) (*Image, error) {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}

	var saved Image
	err := r.images.Update(ctx, func(images []Image) ([]Image, error) {
		for i := range images {
			if images[i].ID != image.ID {
				continue
			}

			image.IsApproved = images[i].IsApproved
			image.CreatedByUserID = images[i].CreatedByUserID
			image.CreatedAt = images[i].CreatedAt
			images[i] = image
			saved = image
			return images, nil
		}

		image.CreatedAt = time.Now().UTC()
		image.IsApproved = false
		saved = image
		return append(images, image), nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *repository) SetImageApproval(
	ctx context.Context,
	id string,
	approved bool,
) (*Image, error) {
	var saved Image
	err := r.images.Update(ctx, func(images []Image) ([]Image, error) {
		for i := range images {
			if images[i].ID != id {
				continue
			}

			images[i].IsApproved = approved
			saved = images[i]
			return images, nil
		}

		return nil, core.ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *repository) ListDiseases(ctx context.Context) ([]Disease, error) {
	return r.diseases.Load(ctx)
}

func (r *repository) UpsertDisease(ctx context.Context, disease Disease) (*Disease, error) {
	if disease.ID == "" {
		disease.ID = uuid.New().String()
	}

	var saved Disease
	err := r.diseases.Update(ctx, func(diseases []Disease) ([]Disease, error) {
		for i := range diseases {
			if diseases[i].ID != disease.ID {
				continue
			}

			diseases[i] = disease
			saved = disease
			return diseases, nil
		}

		saved = disease
		return append(diseases, disease), nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func matchesParams(img Image, params BrowseParams) bool {
	if params.Species != "" && !strings.EqualFold(img.Species, params.Species) {
		return false
	}
	if params.Organ != "" && !strings.EqualFold(img.Organ, params.Organ) {
		return false
	}
	if params.Severity != "" && !strings.EqualFold(img.Severity, params.Severity) {
		return false
	}
	if params.DiseaseID != "" && img.ConditionDiseaseID != params.DiseaseID {
		return false
	}

	if params.Query != "" {
		q := strings.ToLower(params.Query)
		haystack := strings.ToLower(
			img.Title + " " + img.Description + " " + img.Species + " " + img.Organ,
		)
		if !strings.Contains(haystack, q) {
			return false
		}
	}

	return true
}
