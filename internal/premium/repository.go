// AngelaMos | 2026
// repository.go

package premium

import (
	"context"

	"github.com/google/uuid"

	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/store"
)

type Repository interface {
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	GetQuiz(ctx context.Context, id string) (*Quiz, error)
	UpsertQuiz(ctx context.Context, quiz Quiz) (*Quiz, error)
	ListAnatomy(ctx context.Context) ([]AnatomyContent, error)
	GetAnatomy(ctx context.Context, id string) (*AnatomyContent, error)
	UpsertAnatomy(ctx context.Context, item AnatomyContent) (*AnatomyContent, error)
}

type repository struct {
	quizzes *store.Collection[Quiz]
	anatomy *store.Collection[AnatomyContent]
}

func NewRepository(s *store.Store) Repository {
	return &repository{
		quizzes: store.NewCollection[Quiz](s, store.QuizzesFile),
		anatomy: store.NewCollection[AnatomyContent](s, store.AnatomyFile),
	}
}

func (r *repository) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	return r.quizzes.Load(ctx)
}

func (r *repository) GetQuiz(ctx context.Context, id string) (*Quiz, error) {
	quizzes, err := r.quizzes.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}

	return nil, core.ErrNotFound
}

func (r *repository) UpsertQuiz(ctx context.Context, quiz Quiz) (*Quiz, error) {
	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = uuid.New().String()
		}
	}

	var saved Quiz
	err := r.quizzes.Update(ctx, func(quizzes []Quiz) ([]Quiz, error) {
		for i := range quizzes {
			if quizzes[i].ID != quiz.ID {
				continue
			}

			quizzes[i] = quiz
			saved = quiz
			return quizzes, nil
		}

		saved = quiz
		return append(quizzes, quiz), nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *repository) ListAnatomy(ctx context.Context) ([]AnatomyContent, error) {
	return r.anatomy.Load(ctx)
}

func (r *repository) GetAnatomy(ctx context.Context, id string) (*AnatomyContent, error) {
	items, err := r.anatomy.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}

	return nil, core.ErrNotFound
}

func (r *repository) UpsertAnatomy(
	ctx context.Context,
	item AnatomyContent,
) (*AnatomyContent, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	var saved AnatomyContent
	err := r.anatomy.Update(ctx, func(items []AnatomyContent) ([]AnatomyContent, error) {
		for i := range items {
			if items[i].ID != item.ID {
				continue
			}

			items[i] = item
			saved = item
			return items, nil
		}

		saved = item
		return append(items, item), nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}
