// AngelaMos | 2026
// service.go

package premium

import (
	"context"
	"log/slog"

	"github.com/carterperez-dev/adlib/internal/analytics"
	"github.com/carterperez-dev/adlib/internal/auth"
	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/user"
)

// UserResolver looks up the live user record so the premium check reflects
// the account as it is now, not as it was when the session token was minted.
type UserResolver interface {
	GetByID(ctx context.Context, userID string) (*auth.UserInfo, error)
}

type Service struct {
	repo   Repository
	users  UserResolver
	events auth.EventRecorder
}

func NewService(repo Repository, users UserResolver, events auth.EventRecorder) *Service {
	return &Service{repo: repo, users: users, events: events}
}

// entitled reports whether the user may view premium content. Admins always
// may. If the live lookup fails the token claim is used as a fallback so a
// transient store error does not lock paying members out.
func (s *Service) entitled(ctx context.Context, userID string, claimPremium bool) bool {
	live, err := s.users.GetByID(ctx, userID)
	if err != nil {
		slog.Warn("premium check fell back to token claim",
			"user_id", userID,
			"error", err,
		)
		return claimPremium
	}

	return live.IsPremium || live.Role == user.RoleAdmin
}

// Overview is the /premium landing page: quiz summaries and anatomy item
// listings are visible to every member, only the content behind them is
// gated.
func (s *Service) Overview(
	ctx context.Context,
	userID string,
	claimPremium bool,
) (*Overview, error) {
	summaries, err := s.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListAnatomy(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		IsPremium:    s.entitled(ctx, userID, claimPremium),
		Quizzes:      summaries,
		AnatomyItems: items,
	}, nil
}

// ListQuizzes returns the quiz picker entries. Summaries are not gated;
// only quiz content is.
func (s *Service) ListQuizzes(ctx context.Context) ([]QuizSummary, error) {
	quizzes, err := s.repo.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, QuizSummary{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			QuestionCount: len(q.Questions),
		})
	}

	return summaries, nil
}

func (s *Service) ListAnatomy(ctx context.Context) ([]AnatomyContent, error) {
	return s.repo.ListAnatomy(ctx)
}

// StartQuiz returns the quiz for rendering. Gated members get (nil, true, nil)
// with no event recorded; an allowed render records QUIZ_START.
func (s *Service) StartQuiz(
	ctx context.Context,
	userID string,
	claimPremium bool,
	quizID string,
) (*Quiz, bool, error) {
	quiz, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, false, err
	}

	if !s.entitled(ctx, userID, claimPremium) {
		return nil, true, nil
	}

	s.events.Record(ctx, analytics.EventQuizStart, userID, map[string]any{
		"quizId": quiz.ID,
	})

	return quiz, false, nil
}

// CompleteQuiz records the result of a finished quiz attempt. A gated member
// cannot complete what they cannot start.
func (s *Service) CompleteQuiz(
	ctx context.Context,
	userID string,
	claimPremium bool,
	quizID string,
	req CompleteQuizRequest,
) (bool, error) {
	if _, err := s.repo.GetQuiz(ctx, quizID); err != nil {
		return false, err
	}

	if !s.entitled(ctx, userID, claimPremium) {
		return true, nil
	}

	s.events.Record(ctx, analytics.EventQuizComplete, userID, map[string]any{
		"quizId":         quizID,
		"score":          req.Score,
		"totalQuestions": req.TotalQuestions,
	})

	return false, nil
}

// GetAnatomy returns one anatomy item. Items flagged premium are gated the
// same way quizzes are; free items render for any member. Viewing a premium
// item records PREMIUM_CONTENT_VIEW.
func (s *Service) GetAnatomy(
	ctx context.Context,
	userID string,
	claimPremium bool,
	itemID string,
) (*AnatomyContent, bool, error) {
	item, err := s.repo.GetAnatomy(ctx, itemID)
	if err != nil {
		return nil, false, err
	}

	if item.IsPremium && !s.entitled(ctx, userID, claimPremium) {
		return nil, true, nil
	}

	if item.IsPremium {
		s.events.Record(ctx, analytics.EventPremiumContentView, userID, map[string]any{
			"contentId":   item.ID,
			"contentType": item.Type,
		})
	}

	return item, false, nil
}

func (s *Service) UpsertQuiz(ctx context.Context, req UpsertQuizRequest) (*Quiz, error) {
	questions := make([]QuizQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		if q.CorrectOptionIndex >= len(q.Options) {
			return nil, core.ValidationError("correctOptionIndex is out of range")
		}

		questions = append(questions, QuizQuestion{
			ID:                 q.ID,
			QuestionType:       q.QuestionType,
			QuestionText:       q.QuestionText,
			ImageID:            q.ImageID,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
		})
	}

	return s.repo.UpsertQuiz(ctx, Quiz{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Questions:   questions,
	})
}

func (s *Service) UpsertAnatomy(
	ctx context.Context,
	req UpsertAnatomyRequest,
) (*AnatomyContent, error) {
	return s.repo.UpsertAnatomy(ctx, AnatomyContent{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		VideoURL:    req.VideoURL,
		PDFURL:      req.PDFURL,
		IsPremium:   *req.IsPremium,
	})
}
