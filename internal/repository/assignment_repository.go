package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.Where("id = ?", id).First(&assignment).Error
	return &assignment, err
}

// FindByCourse is the catalog read: a fresh, id-ordered snapshot on every
// call. A course with no assignments yields an empty slice, not an error.
func (r *AssignmentRepository) FindByCourse(courseID string) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	err := r.DB.Where("course_id = ?", courseID).Order("id").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) Delete(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&model.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
