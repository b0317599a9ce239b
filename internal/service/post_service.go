package service

import (
	"context"
	"fmt"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
	"quill/internal/validation"
)

// PostService implements post CRUD. Any visitor may edit or delete any post.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Title   string
	Content string
}

type UpdatePostInput struct {
	PostID  uint
	Title   string
	Content string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "CreatePost")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidateTitleContent(in.Title, in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post = &models.Post{Title: in.Title, Content: in.Content}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.ContentMutations.WithLabelValues("post", "create").Inc()
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "ListPosts")
	defer span.End()
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "GetPost")
	defer span.End()
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost fails with NotFound before validating, so an edit form for a
// missing post is never shown.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "UpdatePost")
	defer func() { observability.EndSpan(span, err) }()

	post, err = s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateTitleContent(in.Title, in.Content); err != nil {
		return post, models.NewValidationError(err.Error())
	}

	if err := s.postRepo.Update(ctx, in.PostID, in.Title, in.Content); err != nil {
		return nil, err
	}
	post.Title = in.Title
	post.Content = in.Content
	observability.ContentMutations.WithLabelValues("post", "update").Inc()
	return post, nil
}

// DeletePost removes the post and returns the confirmation shown to the user.
func (s *PostService) DeletePost(ctx context.Context, id uint) (msg string, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "DeletePost")
	defer func() { observability.EndSpan(span, err) }()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return "", err
	}
	observability.ContentMutations.WithLabelValues("post", "delete").Inc()
	return fmt.Sprintf(`"%s" was successfully deleted!`, post.Title), nil
}
