package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatusRepository struct {
	DB *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{DB: db}
}

func (r *StatusRepository) FindByStudent(studentID uint) ([]*model.HomeworkStatus, error) {
	var records []*model.HomeworkStatus
	err := r.DB.Where("student_id = ?", studentID).Find(&records).Error
	return records, err
}

func (r *StatusRepository) FindByStudents(studentIDs []uint) ([]*model.HomeworkStatus, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var records []*model.HomeworkStatus
	err := r.DB.Where("student_id IN ?", studentIDs).Find(&records).Error
	return records, err
}

// UpsertBatch writes all rows in one transaction: the whole batch lands or
// none of it does. Rows for keys not in the batch are never touched.
func (r *StatusRepository) UpsertBatch(rows []model.HomeworkStatus) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "assignment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&rows).Error
	})
}
