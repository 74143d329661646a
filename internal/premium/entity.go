// AngelaMos | 2026
// entity.go

package premium

const (
	QuestionMCQ              = "MCQ"
	QuestionImageRecognition = "IMAGE_RECOGNITION"
)

const (
	AnatomyVideo   = "VIDEO"
	AnatomyPDF     = "PDF"
	AnatomyArticle = "ARTICLE"
)

type QuizQuestion struct {
	ID                 string   `json:"id"`
	QuestionType       string   `json:"questionType"`
	QuestionText       string   `json:"questionText"`
	ImageID            string   `json:"imageId,omitempty"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
}

// Quiz is persisted to quizzes.json. Every quiz is premium content; there
// is no per-quiz flag.
type Quiz struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []QuizQuestion `json:"questions"`
}

// AnatomyContent is persisted to anatomy_content.json and gated per item
// by its IsPremium flag.
type AnatomyContent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	VideoURL    string `json:"videoUrl,omitempty"`
	PDFURL      string `json:"pdfUrl,omitempty"`
	IsPremium   bool   `json:"isPremium"`
}

// QuizSummary is the list-page shape: enough to pick a quiz, nothing that
// leaks questions or answers to non-premium members.
type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
}

// GatedResponse is what a non-premium member sees in place of premium
// content. Always served with status 200; the gate is a paywall notice,
// not an authorization failure.
type GatedResponse struct {
	Gated   bool   `json:"gated"`
	Message string `json:"message"`
}

func NewGatedResponse() GatedResponse {
	return GatedResponse{
		Gated:   true,
		Message: "This content is available to premium members. Upgrade your account to view it.",
	}
}
