package repository

import (
	"errors"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// Create inserts the question as-is. The generated id is populated on the
// passed value by the insert itself.
func (r *QuestionRepository) Create(q *model.EvaluationQuestion) error {
	return r.DB.Create(q).Error
}

// CreateWithNextOrder assigns max(order_index)+1 within the owning
// evaluation and inserts, both inside one transaction so concurrent creates
// against the same parent cannot read the same maximum.
func (r *QuestionRepository) CreateWithNextOrder(q *model.EvaluationQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var next int
		err := tx.Model(&model.EvaluationQuestion{}).
			Where("evaluation_id = ?", q.EvaluationID).
			Select("COALESCE(MAX(order_index), 0) + 1").
			Scan(&next).Error
		if err != nil {
			return err
		}
		q.OrderIndex = next
		return tx.Create(q).Error
	})
}

// FindByID returns (nil, nil) when no row exists; callers check before use.
func (r *QuestionRepository) FindByID(id uint) (*model.EvaluationQuestion, error) {
	var q model.EvaluationQuestion
	err := r.DB.First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByEvaluation returns the bank in display order. created_at breaks ties
// between duplicate order_index values produced by reorder.
func (r *QuestionRepository) ListByEvaluation(evaluationID uint) ([]model.EvaluationQuestion, error) {
	var qs []model.EvaluationQuestion
	err := r.DB.Model(&model.EvaluationQuestion{}).
		Where("evaluation_id = ?", evaluationID).
		Order("order_index asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

// UpdateFields applies an already allow-listed column map.
func (r *QuestionRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.DB.Model(&model.EvaluationQuestion{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// UpdateOrderScoped moves one question, but only when it belongs to the
// given evaluation. A foreign id matches zero rows and is not an error.
func (r *QuestionRepository) UpdateOrderScoped(evaluationID, id uint, orderIndex int) error {
	return r.DB.Model(&model.EvaluationQuestion{}).
		Where("id = ? AND evaluation_id = ?", id, evaluationID).
		Update("order_index", orderIndex).Error
}

// Delete removes the row permanently. History rows referencing it stay.
func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.EvaluationQuestion{}, id).Error
}

func (r *QuestionRepository) CountByEvaluation(evaluationID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.EvaluationQuestion{}).
		Where("evaluation_id = ?", evaluationID).
		Count(&count).Error
	return count, err
}
