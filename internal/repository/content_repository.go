package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(item *model.ContentItem) error {
	return r.DB.Create(item).Error
}

func (r *ContentRepository) FindByID(id string) (*model.ContentItem, error) {
	var item model.ContentItem
	err := r.DB.Where("id = ?", id).First(&item).Error
	return &item, err
}

func (r *ContentRepository) FindByCourse(courseID string, kind model.ContentKind) ([]*model.ContentItem, error) {
	var items []*model.ContentItem
	query := r.DB.Where("course_id = ?", courseID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("`order`, id").Find(&items).Error
	return items, err
}

func (r *ContentRepository) Update(item *model.ContentItem) error {
	return r.DB.Save(item).Error
}

func (r *ContentRepository) Delete(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&model.ContentItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
