package model

import (
	"encoding/json"

	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
	Essay          QuestionType = "essay"
)

type QuestionStatus string

const (
	QuestionDraft     QuestionStatus = "draft"
	QuestionPublished QuestionStatus = "published"
)

// EvaluationQuestion is a scored question inside an evaluation item's bank.
// The owning item never changes for the lifetime of the question.
// Options persist as an encoded JSON text blob; a row whose blob does not
// decode to a string list surfaces an empty list instead of an error.
// swagger:model EvaluationQuestion
type EvaluationQuestion struct {
	BaseModel
	EvaluationID  uint           `gorm:"index;type:bigint unsigned;not null" json:"evaluationId"`
	QuestionText  string         `gorm:"type:text;not null" json:"questionText"`
	QuestionType  QuestionType   `gorm:"size:50;default:'multiple_choice'" json:"questionType"`
	RawOptions    string         `gorm:"column:options;type:text" json:"-"`
	Options       []string       `gorm:"-" json:"options"`
	CorrectAnswer string         `gorm:"type:text" json:"correctAnswer"`
	Points        float64        `gorm:"type:decimal(6,2);default:1" json:"points"`
	OrderIndex    int            `gorm:"default:0;index" json:"orderIndex"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
	Status        QuestionStatus `gorm:"size:20;default:'draft'" json:"status"`
}

func (EvaluationQuestion) TableName() string {
	return "evaluation_questions"
}

func (q *EvaluationQuestion) AfterFind(tx *gorm.DB) error {
	q.Options = DecodeOptions(q.ID, q.RawOptions)
	return nil
}

// EncodeOptions serializes a choice list for storage. A nil list stores as
// an empty blob rather than the JSON literal "null".
func EncodeOptions(options []string) string {
	if options == nil {
		return ""
	}
	encoded, err := json.Marshal(options)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// DecodeOptions parses a stored options blob back into an ordered string
// list. A corrupt blob degrades to an empty list; the row stays readable.
func DecodeOptions(questionID uint, raw string) []string {
	if raw == "" {
		return []string{}
	}
	var options []string
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		logger.Log.Warn("discarding undecodable question options",
			zap.Uint("question_id", questionID),
			zap.Error(err))
		return []string{}
	}
	if options == nil {
		return []string{}
	}
	return options
}
