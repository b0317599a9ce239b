package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
	"quill/internal/validation"
)

// Comments shown on the comments page.
var Comments = []string{
	"This is the first comment.",
	"This is the second comment.",
	"This is the third comment.",
	"This is the fourth comment.",
}

// CatalogService serves the message board and the course catalog.
type CatalogService struct {
	messages repository.MessageStore
	courses  repository.CourseStore
}

type CreateMessageInput struct {
	Title   string
	Content string
}

type CreateCourseInput struct {
	Title       string
	Description string
	Price       int
	Available   bool
	Level       string
}

func NewCatalogService(messages repository.MessageStore, courses repository.CourseStore) *CatalogService {
	return &CatalogService{messages: messages, courses: courses}
}

func (s *CatalogService) ListMessages(ctx context.Context) []models.Message {
	return s.messages.List(ctx)
}

func (s *CatalogService) GetMessage(ctx context.Context, idx int) (*models.Message, error) {
	msg, ok := s.messages.Get(ctx, idx)
	if !ok {
		return nil, models.NewNotFoundError("Message", idx)
	}
	return &msg, nil
}

func (s *CatalogService) CreateMessage(ctx context.Context, in CreateMessageInput) error {
	if err := validation.ValidateTitleContent(in.Title, in.Content); err != nil {
		return models.NewValidationError(err.Error())
	}
	s.messages.Append(ctx, models.Message{Title: in.Title, Content: in.Content})
	observability.ContentMutations.WithLabelValues("message", "create").Inc()
	return nil
}

func (s *CatalogService) ListCourses(ctx context.Context) []models.Course {
	return s.courses.List(ctx)
}

func (s *CatalogService) CreateCourse(ctx context.Context, in CreateCourseInput) error {
	course := models.Course{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Available:   in.Available,
		Level:       in.Level,
	}
	if err := validation.ValidateCourse(course); err != nil {
		return models.NewValidationError(err.Error())
	}
	s.courses.Append(ctx, course)
	observability.ContentMutations.WithLabelValues("course", "create").Inc()
	return nil
}

// ListComments returns the fixed comments list.
func (s *CatalogService) ListComments(_ context.Context) []string {
	return append([]string(nil), Comments...)
}
