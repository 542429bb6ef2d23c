package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(a *model.EvaluationAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) CountByEvaluation(evaluationID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.EvaluationAttempt{}).
		Where("evaluation_id = ?", evaluationID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) CountByEvaluationAndUser(evaluationID, userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.EvaluationAttempt{}).
		Where("evaluation_id = ? AND user_id = ?", evaluationID, userID).
		Count(&count).Error
	return count, err
}
