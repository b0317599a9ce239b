package repository

import (
	"context"
	"sync"

	"quill/internal/models"
)

// MessageStore holds the message board.
type MessageStore interface {
	List(ctx context.Context) []models.Message
	// Get returns the message at idx; ok is false when idx is out of range.
	Get(ctx context.Context, idx int) (models.Message, bool)
	Append(ctx context.Context, msg models.Message)
}

// CourseStore holds the course catalog.
type CourseStore interface {
	List(ctx context.Context) []models.Course
	Append(ctx context.Context, course models.Course)
}

// DefaultMessages seeds a new message board.
var DefaultMessages = []models.Message{
	{Title: "Message One", Content: "Message One Content"},
	{Title: "Message Two", Content: "Message Two Content"},
}

// DefaultCourses seeds a new course catalog.
var DefaultCourses = []models.Course{
	{
		Title:       "Python 101",
		Description: "Learn Python basics",
		Price:       34,
		Available:   true,
		Level:       models.LevelBeginner,
	},
}

type memoryMessageStore struct {
	mu       sync.RWMutex
	messages []models.Message
}

// NewMemoryMessageStore returns a process-local store holding a copy of initial.
func NewMemoryMessageStore(initial []models.Message) MessageStore {
	return &memoryMessageStore{messages: append([]models.Message(nil), initial...)}
}

func (s *memoryMessageStore) List(_ context.Context) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Message(nil), s.messages...)
}

func (s *memoryMessageStore) Get(_ context.Context, idx int) (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 0 || idx >= len(s.messages) {
		return models.Message{}, false
	}
	return s.messages[idx], true
}

func (s *memoryMessageStore) Append(_ context.Context, msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

type memoryCourseStore struct {
	mu      sync.RWMutex
	courses []models.Course
}

// NewMemoryCourseStore returns a process-local store holding a copy of initial.
func NewMemoryCourseStore(initial []models.Course) CourseStore {
	return &memoryCourseStore{courses: append([]models.Course(nil), initial...)}
}

func (s *memoryCourseStore) List(_ context.Context) []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Course(nil), s.courses...)
}

func (s *memoryCourseStore) Append(_ context.Context, course models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = append(s.courses, course)
}
