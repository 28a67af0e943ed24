package service

import (
	"context"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/snapshot"
)

// ContentService manages course material (chapters, videos, homework
// sheets, past papers).
type ContentService struct {
	ContentRepo *repository.ContentRepository
	Hub         *snapshot.Hub
}

func NewContentService(contentRepo *repository.ContentRepository, hub *snapshot.Hub) *ContentService {
	return &ContentService{ContentRepo: contentRepo, Hub: hub}
}

func (s *ContentService) ListByCourse(courseID string, kind model.ContentKind) ([]*model.ContentItem, error) {
	items, err := s.ContentRepo.FindByCourse(courseID, kind)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.ContentItem{}
	}
	return items, nil
}

func (s *ContentService) Create(ctx context.Context, item *model.ContentItem) error {
	if err := s.ContentRepo.Create(item); err != nil {
		return err
	}
	s.Hub.NotifyChanged(ctx, item.CourseID, snapshot.KindContent)
	return nil
}

func (s *ContentService) Update(ctx context.Context, item *model.ContentItem) error {
	if err := s.ContentRepo.Update(item); err != nil {
		return err
	}
	s.Hub.NotifyChanged(ctx, item.CourseID, snapshot.KindContent)
	return nil
}

func (s *ContentService) Delete(ctx context.Context, id string) error {
	item, err := s.ContentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.ContentRepo.Delete(id); err != nil {
		return err
	}
	s.Hub.NotifyChanged(ctx, item.CourseID, snapshot.KindContent)
	return nil
}
