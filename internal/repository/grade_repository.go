package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

// Upsert keeps one row per (student, exam).
func (r *GradeRepository) Upsert(grade *model.ExamGrade) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "exam"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "max_score", "updated_at"}),
	}).Create(grade).Error
}

func (r *GradeRepository) FindByStudent(studentID uint) ([]*model.ExamGrade, error) {
	var grades []*model.ExamGrade
	err := r.DB.Where("student_id = ?", studentID).Order("exam").Find(&grades).Error
	return grades, err
}

func (r *GradeRepository) Delete(id uint) error {
	result := r.DB.Delete(&model.ExamGrade{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
