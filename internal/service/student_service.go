package service

import (
	"fmt"
	"strconv"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// StudentService handles admin-side student management.
type StudentService struct {
	UserRepo *repository.UserRepository
}

func NewStudentService(userRepo *repository.UserRepository) *StudentService {
	return &StudentService{UserRepo: userRepo}
}

// NextStudentNumber derives the next external id from every assigned one:
// the incremented maximum, zero-padded to four digits. Values that do not
// parse as numbers are skipped.
func NextStudentNumber(existing []string) string {
	max := 0
	for _, n := range existing {
		v, err := strconv.Atoi(n)
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return fmt.Sprintf("%04d", max+1)
}

// CreateStudent registers a student with a freshly generated student
// number.
func (s *StudentService) CreateStudent(student *model.User) error {
	numbers, err := s.UserRepo.StudentNumbers()
	if err != nil {
		return err
	}
	student.Role = model.Student
	student.StudentNumber = NextStudentNumber(numbers)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(student.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	student.Password = string(hashedPassword)

	return s.UserRepo.Create(student)
}

func (s *StudentService) List(courseID string) ([]*model.User, error) {
	students, err := s.UserRepo.ListStudents(courseID)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []*model.User{}
	}
	return students, nil
}

// UpdateEnrollment moves a student between courses or schools.
func (s *StudentService) UpdateEnrollment(studentID uint, courseID, school string) (*model.User, error) {
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if courseID != "" {
		student.CourseID = courseID
	}
	if school != "" {
		student.School = school
	}
	if err := s.UserRepo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}
