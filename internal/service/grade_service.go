package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

type GradeService struct {
	GradeRepo *repository.GradeRepository
}

func NewGradeService(gradeRepo *repository.GradeRepository) *GradeService {
	return &GradeService{GradeRepo: gradeRepo}
}

func (s *GradeService) Record(grade *model.ExamGrade) error {
	return s.GradeRepo.Upsert(grade)
}

func (s *GradeService) StudentGrades(studentID uint) ([]*model.ExamGrade, error) {
	grades, err := s.GradeRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []*model.ExamGrade{}
	}
	return grades, nil
}

func (s *GradeService) Delete(id uint) error {
	return s.GradeRepo.Delete(id)
}
