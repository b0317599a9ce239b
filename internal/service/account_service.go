package service

import (
	"context"
	"log/slog"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
	"quill/internal/validation"
)

// AccountService manages the signed-in user's own account.
type AccountService struct {
	users repository.UserRepository
}

type EditAccountInput struct {
	Password        string
	PasswordConfirm string
	Email           string
}

func NewAccountService(users repository.UserRepository) *AccountService {
	return &AccountService{users: users}
}

func currentUsername(sess Session) (string, error) {
	username, ok := sess.Username()
	if !ok {
		return "", models.NewUnauthenticatedError()
	}
	return username, nil
}

// View returns the signed-in user. A session pointing at a deleted user is
// cleared and treated as signed out.
func (s *AccountService) View(ctx context.Context, sess Session) (user *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AccountService", "View")
	defer func() { observability.EndSpan(span, err) }()

	username, err := currentUsername(sess)
	if err != nil {
		return nil, err
	}

	user, err = s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		sess.Clear()
		return nil, models.NewUnauthenticatedError()
	}
	return user, nil
}

func (s *AccountService) Edit(ctx context.Context, sess Session, in EditAccountInput) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AccountService", "Edit")
	defer func() { observability.EndSpan(span, err) }()

	username, err := currentUsername(sess)
	if err != nil {
		return err
	}

	if err := validation.ValidateCredentials(in.Password, in.PasswordConfirm, in.Email); err != nil {
		return models.NewValidationError(err.Error())
	}

	if err := s.users.Update(ctx, username, in.Password, in.Email); err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			sess.Clear()
			return models.NewUnauthenticatedError()
		}
		return err
	}

	middleware.Logger.InfoContext(ctx, "account updated", slog.String("username", username))
	return nil
}

// Delete removes the signed-in user's account and signs the session out.
func (s *AccountService) Delete(ctx context.Context, sess Session) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AccountService", "Delete")
	defer func() { observability.EndSpan(span, err) }()

	username, err := currentUsername(sess)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}
	sess.Clear()

	middleware.Logger.InfoContext(ctx, "account deleted", slog.String("username", username))
	return nil
}
