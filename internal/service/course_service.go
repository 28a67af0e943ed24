package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo}
}

func (s *CourseService) Create(course *model.Course) error {
	_, err := s.CourseRepo.FindByID(course.ID)
	if err == nil {
		return util.ErrCourseExists
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	return s.CourseRepo.Create(course)
}

func (s *CourseService) List() ([]*model.Course, error) {
	courses, err := s.CourseRepo.List()
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []*model.Course{}
	}
	return courses, nil
}

func (s *CourseService) Get(id string) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func (s *CourseService) Update(course *model.Course) error {
	return s.CourseRepo.Update(course)
}

func (s *CourseService) Delete(id string) error {
	return s.CourseRepo.Delete(id)
}
