package repository

import (
	"errors"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) Create(item *model.EvaluationItem) error {
	return r.DB.Create(item).Error
}

func (r *EvaluationRepository) FindByID(id uint) (*model.EvaluationItem, error) {
	var item model.EvaluationItem
	err := r.DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *EvaluationRepository) List(kind model.EvaluationKind, page, limit int) ([]model.EvaluationItem, int64, error) {
	var items []model.EvaluationItem
	var total int64
	query := r.DB.Model(&model.EvaluationItem{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

func (r *EvaluationRepository) Update(item *model.EvaluationItem) error {
	return r.DB.Save(item).Error
}

func (r *EvaluationRepository) Delete(id uint) error {
	return r.DB.Delete(&model.EvaluationItem{}, id).Error
}
