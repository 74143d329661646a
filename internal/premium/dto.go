// AngelaMos | 2026
// dto.go

package premium

type QuizQuestionRequest struct {
	ID                 string   `json:"id" validate:"omitempty,max=64"`
	QuestionType       string   `json:"questionType" validate:"required,oneof=MCQ IMAGE_RECOGNITION"`
	QuestionText       string   `json:"questionText" validate:"required,max=1000"`
	ImageID            string   `json:"imageId" validate:"omitempty,max=64"`
	Options            []string `json:"options" validate:"required,min=2,dive,required,max=500"`
	CorrectOptionIndex int      `json:"correctOptionIndex" validate:"gte=0"`
}

type UpsertQuizRequest struct {
	ID          string                `json:"id" validate:"omitempty,max=64"`
	Title       string                `json:"title" validate:"required,max=200"`
	Description string                `json:"description" validate:"required,max=2000"`
	Questions   []QuizQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type UpsertAnatomyRequest struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	Type        string `json:"type" validate:"required,oneof=VIDEO PDF ARTICLE"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,url,max=1000"`
	PDFURL      string `json:"pdfUrl" validate:"omitempty,url,max=1000"`
	IsPremium   *bool  `json:"isPremium" validate:"required"`
}

type CompleteQuizRequest struct {
	Score          int `json:"score" validate:"gte=0"`
	TotalQuestions int `json:"totalQuestions" validate:"gte=1"`
}

// Overview is the /premium landing payload.
type Overview struct {
	IsPremium    bool             `json:"isPremium"`
	Quizzes      []QuizSummary    `json:"quizzes"`
	AnatomyItems []AnatomyContent `json:"anatomyItems"`
}
