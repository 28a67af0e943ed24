package service

import (
	"context"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/snapshot"
)

// CatalogService reads and maintains course assignment catalogs.
type CatalogService struct {
	AssignmentRepo *repository.AssignmentRepository
	Hub            *snapshot.Hub
}

func NewCatalogService(assignmentRepo *repository.AssignmentRepository, hub *snapshot.Hub) *CatalogService {
	return &CatalogService{
		AssignmentRepo: assignmentRepo,
		Hub:            hub,
	}
}

// Snapshot returns the assignments defined for a course, ordered by id.
// Every call is a fresh read; nothing is cached, snapshots go stale.
func (s *CatalogService) Snapshot(courseID string) ([]*model.Assignment, error) {
	assignments, err := s.AssignmentRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []*model.Assignment{}
	}
	return assignments, nil
}

// SubscribeCatalog delivers a full catalog snapshot now and after every
// catalog change, until the returned handle is closed.
func (s *CatalogService) SubscribeCatalog(ctx context.Context, courseID string, fn func([]*model.Assignment)) (*snapshot.Handle, error) {
	fetch := func(ctx context.Context) (interface{}, error) {
		return s.Snapshot(courseID)
	}
	return s.Hub.Subscribe(ctx, courseID, snapshot.KindCatalog, fetch, func(v interface{}) {
		fn(v.([]*model.Assignment))
	})
}

func (s *CatalogService) Create(ctx context.Context, courseID, title, description string, dueAt *time.Time) (*model.Assignment, error) {
	assignment := &model.Assignment{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		DueAt:       dueAt,
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	s.Hub.NotifyChanged(ctx, courseID, snapshot.KindCatalog)
	return assignment, nil
}

func (s *CatalogService) Update(ctx context.Context, id, title, description string, dueAt *time.Time) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	assignment.Title = title
	assignment.Description = description
	assignment.DueAt = dueAt
	if err := s.AssignmentRepo.Update(assignment); err != nil {
		return nil, err
	}
	s.Hub.NotifyChanged(ctx, assignment.CourseID, snapshot.KindCatalog)
	return assignment, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.AssignmentRepo.Delete(id); err != nil {
		return err
	}
	s.Hub.NotifyChanged(ctx, assignment.CourseID, snapshot.KindCatalog)
	return nil
}
