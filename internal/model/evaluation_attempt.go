package model

import "time"

// EvaluationAttempt records one user run against an evaluation item.
// Grading lives elsewhere; the question bank only counts attempts.
// swagger:model EvaluationAttempt
type EvaluationAttempt struct {
	BaseModel
	EvaluationID uint       `gorm:"index;type:bigint unsigned;not null" json:"evaluationId"`
	UserID       uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Status       string     `gorm:"size:20;default:'started'" json:"status"`
	Score        float64    `gorm:"type:decimal(6,2);default:0" json:"score"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func (EvaluationAttempt) TableName() string {
	return "evaluation_attempts"
}
