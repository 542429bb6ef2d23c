package model

import (
	"encoding/json"
	"time"
)

// ChangeType is the closed set of audited question change events.
type ChangeType string

const (
	ChangeCreated     ChangeType = "created"
	ChangeUpdated     ChangeType = "updated"
	ChangePublished   ChangeType = "published"
	ChangeUnpublished ChangeType = "unpublished"
)

// QuestionHistory is one immutable audit row for a question change.
// Rows are append-only: nothing in the backend updates or deletes them,
// and they outlive the question they reference.
// swagger:model QuestionHistory
type QuestionHistory struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID    uint            `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	ChangedBy     *uint           `gorm:"type:bigint unsigned" json:"changedBy,omitempty"`
	ChangeType    ChangeType      `gorm:"size:20;not null" json:"changeType"`
	OldData       json.RawMessage `gorm:"type:json" json:"oldData,omitempty"`
	NewData       json.RawMessage `gorm:"type:json" json:"newData,omitempty"`
	ChangeSummary string          `gorm:"size:255" json:"changeSummary"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (QuestionHistory) TableName() string {
	return "question_histories"
}
