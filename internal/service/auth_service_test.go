package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupInput {
	return SignupInput{Username: "alice", Password: "pw", PasswordConfirm: "pw", Email: "alice@example.com"}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*SignupInput)
		msg    string
	}{
		{"missing username", func(in *SignupInput) { in.Username = "" }, "Username is required!"},
		{"missing password", func(in *SignupInput) { in.Password = "" }, "Password is required!"},
		{"missing confirmation", func(in *SignupInput) { in.PasswordConfirm = "" }, "Password Confirmation is required!"},
		{"mismatch", func(in *SignupInput) { in.PasswordConfirm = "other" }, "Password and Password Confirmation are not equal!"},
		{"missing email", func(in *SignupInput) { in.Email = "" }, "Email is required!"},
		{"invalid email", func(in *SignupInput) { in.Email = "alice" }, "Please enter a valid email address!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(failingUserRepo(t))
			sess := &fakeSession{}
			in := validSignup()
			tt.mutate(&in)

			err := svc.Signup(context.Background(), sess, in)
			assertValidationError(t, err, tt.msg)
			assert.Zero(t, sess.sets)
		})
	}
}

func TestAuthService_Signup_MismatchDoesNotInsert(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	created := false
	repo.createFn = func(context.Context, string, string, string) error { created = true; return nil }

	in := validSignup()
	in.PasswordConfirm = "nope"
	err := NewAuthService(repo).Signup(context.Background(), &fakeSession{}, in)

	assertValidationError(t, err, "Password and Password Confirmation are not equal!")
	assert.False(t, created)
}

func TestAuthService_Signup_Success(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var gotUser, gotPassword, gotEmail string
	repo.createFn = func(_ context.Context, u, p, e string) error {
		gotUser, gotPassword, gotEmail = u, p, e
		return nil
	}
	sess := &fakeSession{}

	require.NoError(t, NewAuthService(repo).Signup(context.Background(), sess, validSignup()))

	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "pw", gotPassword, "repository receives plaintext and hashes it")
	assert.Equal(t, "alice@example.com", gotEmail)
	assert.Equal(t, "alice", sess.username)
}

func TestAuthService_Signup_UsernameTaken(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, u string) (*models.User, error) {
		return &models.User{Username: u}, nil
	}
	repo.createFn = func(context.Context, string, string, string) error {
		t.Fatal("create must not be called")
		return nil
	}
	sess := &fakeSession{}

	err := NewAuthService(repo).Signup(context.Background(), sess, validSignup())
	assertAppError(t, err, models.CodeUsernameTaken, "Username, alice, is not available. Please try again!")
	assert.Zero(t, sess.sets)
}

func TestAuthService_Signup_ConstraintViolationIsUsernameTaken(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.createFn = func(context.Context, string, string, string) error {
		return models.NewConstraintViolationError(errors.New("duplicate key"))
	}
	sess := &fakeSession{}

	err := NewAuthService(repo).Signup(context.Background(), sess, validSignup())
	assertAppError(t, err, models.CodeUsernameTaken, "")
	assert.Zero(t, sess.sets)
}

func TestAuthService_Signup_StorageError(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return nil, models.NewInternalError(errors.New("db down"))
	}

	err := NewAuthService(repo).Signup(context.Background(), &fakeSession{}, validSignup())
	assertAppError(t, err, models.CodeInternal, "")
}

// memUserRepo is a tiny in-memory repository so signup and login can be run end to end.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserRepo() *userRepoStub {
	m := &memUserRepo{users: map[string]models.User{}}
	return &userRepoStub{
		getByUsernameFn: func(_ context.Context, u string) (*models.User, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			user, ok := m.users[u]
			if !ok {
				return nil, nil
			}
			return &user, nil
		},
		createFn: func(_ context.Context, u, p, e string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.users[u]; ok {
				return models.NewConstraintViolationError(nil)
			}
			m.users[u] = models.User{Username: u, Password: "hashed:" + p, Email: e}
			return nil
		},
		updateFn: func(_ context.Context, u, p, e string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.users[u]; !ok {
				return models.NewNotFoundError("User", u)
			}
			m.users[u] = models.User{Username: u, Password: "hashed:" + p, Email: e}
			return nil
		},
		deleteFn: func(_ context.Context, u string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.users, u)
			return nil
		},
		verifyPasswordFn: func(user *models.User, p string) bool {
			return user != nil && user.Password == "hashed:"+p
		},
	}
}

func TestAuthService_LoginAfterSignup(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMemUserRepo())
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, &fakeSession{}, validSignup()))

	sess := &fakeSession{}
	require.NoError(t, svc.Login(ctx, sess, LoginInput{Username: "alice", Password: "pw"}))
	assert.Equal(t, "alice", sess.username)
}

func TestAuthService_Login_WrongPasswordLeavesSession(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMemUserRepo())
	ctx := context.Background()
	require.NoError(t, svc.Signup(ctx, &fakeSession{}, validSignup()))

	// Already signed in as someone else; a failed login must not change that.
	sess := &fakeSession{username: "bob"}
	err := svc.Login(ctx, sess, LoginInput{Username: "alice", Password: "wrong"})

	assertAppError(t, err, models.CodeInvalidCredentials, "Incorrect password for alice. Please try again!")
	assert.Equal(t, "bob", sess.username)
	assert.Zero(t, sess.sets)
}

func TestAuthService_Login_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   LoginInput
		code string
		msg  string
	}{
		{"missing username", LoginInput{Password: "pw"}, models.CodeValidation, "Username is required!"},
		{"missing password", LoginInput{Username: "alice"}, models.CodeValidation, "Password is required!"},
		{"unknown user", LoginInput{Username: "ghost", Password: "pw"}, models.CodeUserNotFound, "Username, ghost, was not found. Please try again!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &fakeSession{}
			err := NewAuthService(noopUserRepo()).Login(context.Background(), sess, tt.in)
			assertAppError(t, err, tt.code, tt.msg)
			assert.Zero(t, sess.sets)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{username: "alice"}
	NewAuthService(failingUserRepo(t)).Logout(context.Background(), sess)
	_, ok := sess.Username()
	assert.False(t, ok)

	// Logging out a signed-out session is fine.
	NewAuthService(failingUserRepo(t)).Logout(context.Background(), sess)
	assert.Equal(t, 2, sess.clears)
}
