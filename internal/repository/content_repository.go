package repository

import (
	"errors"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(res *model.ContentResource) error {
	return r.DB.Create(res).Error
}

func (r *ContentRepository) FindByID(id uint) (*model.ContentResource, error) {
	var res model.ContentResource
	err := r.DB.First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ContentRepository) List(contentType string, page, limit int) ([]model.ContentResource, int64, error) {
	var resources []model.ContentResource
	var total int64
	query := r.DB.Model(&model.ContentResource{})
	if contentType != "" {
		query = query.Where("type = ?", contentType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&resources).Error
	return resources, total, err
}

func (r *ContentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ContentResource{}, id).Error
}
