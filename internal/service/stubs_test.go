package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, string, string, string) error
	updateFn         func(context.Context, string, string, string) error
	deleteFn         func(context.Context, string) error
	verifyPasswordFn func(*models.User, string) bool
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, username, password, email string) error {
	return s.createFn(ctx, username, password, email)
}
func (s *userRepoStub) Update(ctx context.Context, username, password, email string) error {
	return s.updateFn(ctx, username, password, email)
}
func (s *userRepoStub) Delete(ctx context.Context, username string) error {
	return s.deleteFn(ctx, username)
}
func (s *userRepoStub) VerifyPassword(user *models.User, password string) bool {
	return s.verifyPasswordFn(user, password)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByUsernameFn:  func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:         func(context.Context, string, string, string) error { return nil },
		updateFn:         func(context.Context, string, string, string) error { return nil },
		deleteFn:         func(context.Context, string) error { return nil },
		verifyPasswordFn: func(*models.User, string) bool { return false },
	}
}

// failingUserRepo fails the test on any storage access.
func failingUserRepo(t *testing.T) *userRepoStub {
	fail := func() { t.Helper(); t.Fatal("unexpected storage access") }
	return &userRepoStub{
		getByUsernameFn:  func(context.Context, string) (*models.User, error) { fail(); return nil, nil },
		createFn:         func(context.Context, string, string, string) error { fail(); return nil },
		updateFn:         func(context.Context, string, string, string) error { fail(); return nil },
		deleteFn:         func(context.Context, string) error { fail(); return nil },
		verifyPasswordFn: func(*models.User, string) bool { fail(); return false },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listFn    func(context.Context) ([]models.Post, error)
	getByIDFn func(context.Context, uint) (*models.Post, error)
	createFn  func(context.Context, *models.Post) error
	updateFn  func(context.Context, uint, string, string) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) { return s.listFn(ctx) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, title, content string) error {
	return s.updateFn(ctx, id, title, content)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:    func(context.Context) ([]models.Post, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		createFn:  func(context.Context, *models.Post) error { return nil },
		updateFn:  func(context.Context, uint, string, string) error { return nil },
		deleteFn:  func(context.Context, uint) error { return nil },
	}
}

// fakeSession is an in-memory Session.
type fakeSession struct {
	username string
	sets     int
	clears   int
}

func (s *fakeSession) Username() (string, bool) { return s.username, s.username != "" }
func (s *fakeSession) SetUsername(u string)     { s.username = u; s.sets++ }
func (s *fakeSession) Clear()                   { s.username = ""; s.clears++ }

func assertAppError(t *testing.T, err error, code, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.HasCode(err, code), "want code %s, got %v", code, err)
	if msg != "" {
		assert.Equal(t, msg, models.UserMessage(err))
	}
}

func assertValidationError(t *testing.T, err error, msg string) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation, msg)
}
