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

type AuthService struct {
	users repository.UserRepository
}

type SignupInput struct {
	Username        string
	Password        string
	PasswordConfirm string
	Email           string
}

type LoginInput struct {
	Username string
	Password string
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Signup creates the account and signs the session in as the new user.
func (s *AuthService) Signup(ctx context.Context, sess Session, in SignupInput) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AuthService", "Signup")
	defer func() {
		observability.RecordAuthEvent("signup", err)
		observability.EndSpan(span, err)
	}()

	if err := validation.ValidateSignup(in.Username, in.Password, in.PasswordConfirm, in.Email); err != nil {
		return models.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewUsernameTakenError(in.Username)
	}

	if err := s.users.Create(ctx, in.Username, in.Password, in.Email); err != nil {
		// Lost a race with a concurrent signup for the same name.
		if models.HasCode(err, models.CodeConstraintViolation) {
			return models.NewUsernameTakenError(in.Username)
		}
		return err
	}

	sess.SetUsername(in.Username)
	middleware.Logger.InfoContext(ctx, "user signed up", slog.String("username", in.Username))
	return nil
}

// Login signs the session in when the password matches. On any failure the
// session is left as it was.
func (s *AuthService) Login(ctx context.Context, sess Session, in LoginInput) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AuthService", "Login")
	defer func() {
		observability.RecordAuthEvent("login", err)
		observability.EndSpan(span, err)
	}()

	if err := validation.ValidateLogin(in.Username, in.Password); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewUserNotFoundError(in.Username)
	}

	if !s.users.VerifyPassword(user, in.Password) {
		middleware.Logger.WarnContext(ctx, "login failed", slog.String("username", in.Username))
		return models.NewInvalidCredentialsError(in.Username)
	}

	sess.SetUsername(user.Username)
	middleware.Logger.InfoContext(ctx, "user logged in", slog.String("username", user.Username))
	return nil
}

func (s *AuthService) Logout(ctx context.Context, sess Session) {
	_, span := observability.StartServiceSpan(ctx, "AuthService", "Logout")
	defer span.End()

	sess.Clear()
	observability.RecordAuthEvent("logout", nil)
}
