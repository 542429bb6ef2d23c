package repository

import (
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type QuestionHistoryRepository struct {
	DB *gorm.DB
}

func NewQuestionHistoryRepository(db *gorm.DB) *QuestionHistoryRepository {
	return &QuestionHistoryRepository{DB: db}
}

// Append writes one audit row. The store exposes no update or delete for
// question_histories; rows are immutable once written.
func (r *QuestionHistoryRepository) Append(h *model.QuestionHistory) error {
	if err := r.DB.Create(h).Error; err != nil {
		return err
	}
	monitoring.QuestionHistoryCounter.WithLabelValues(string(h.ChangeType)).Inc()
	return nil
}

// HistoryEntry is an audit row enriched with the acting user. A dangling
// changed_by reference leaves the actor fields null.
type HistoryEntry struct {
	model.QuestionHistory
	ActorName  *string `gorm:"column:actor_name" json:"actorName"`
	ActorEmail *string `gorm:"column:actor_email" json:"actorEmail"`
}

// ListByQuestion returns the trail newest-first.
func (r *QuestionHistoryRepository) ListByQuestion(questionID uint) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := r.DB.Table("question_histories").
		Select("question_histories.*, users.name as actor_name, users.email as actor_email").
		Joins("LEFT JOIN users ON users.id = question_histories.changed_by AND users.deleted_at IS NULL").
		Where("question_histories.question_id = ?", questionID).
		Order("question_histories.created_at desc, question_histories.id desc").
		Scan(&entries).Error
	return entries, err
}

func (r *QuestionHistoryRepository) CountByQuestion(questionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuestionHistory{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count, err
}
