package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

// ListStudents returns every student, optionally narrowed to one course.
// Further narrowing (school, free text) happens in memory in the roster
// stage so it stays pure and testable.
func (r *UserRepository) ListStudents(courseID string) ([]*model.User, error) {
	var students []*model.User
	query := r.DB.Where("role = ?", model.Student)
	if courseID != "" && courseID != "all" {
		query = query.Where("course_id = ?", courseID)
	}
	err := query.Order("id").Find(&students).Error
	return students, err
}

// StudentNumbers returns all assigned external ids. The next id is the
// incremented maximum of these, zero-padded to four digits.
func (r *UserRepository) StudentNumbers() ([]string, error) {
	var numbers []string
	err := r.DB.Model(&model.User{}).
		Where("student_number <> ''").
		Pluck("student_number", &numbers).
		Error
	return numbers, err
}
