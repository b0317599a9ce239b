package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_RequiresSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewAccountService(failingUserRepo(t))

	_, err := svc.View(ctx, &fakeSession{})
	assertAppError(t, err, models.CodeUnauthenticated, "No one is currently signed in!")

	err = svc.Edit(ctx, &fakeSession{}, EditAccountInput{Password: "pw", PasswordConfirm: "pw", Email: "a@b.c"})
	assertAppError(t, err, models.CodeUnauthenticated, "No one is currently signed in!")

	err = svc.Delete(ctx, &fakeSession{})
	assertAppError(t, err, models.CodeUnauthenticated, "No one is currently signed in!")
}

func TestAccountService_View(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, u string) (*models.User, error) {
		return &models.User{Username: u, Email: "alice@example.com"}, nil
	}

	user, err := NewAccountService(repo).View(context.Background(), &fakeSession{username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestAccountService_View_VanishedUser(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{username: "alice"}
	_, err := NewAccountService(noopUserRepo()).View(context.Background(), sess)

	assertAppError(t, err, models.CodeUnauthenticated, "")
	assert.Equal(t, 1, sess.clears)
}

func TestAccountService_Edit(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var gotUser, gotPassword, gotEmail string
	repo.updateFn = func(_ context.Context, u, p, e string) error {
		gotUser, gotPassword, gotEmail = u, p, e
		return nil
	}

	err := NewAccountService(repo).Edit(context.Background(), &fakeSession{username: "alice"},
		EditAccountInput{Password: "new", PasswordConfirm: "new", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "new", gotPassword)
	assert.Equal(t, "new@example.com", gotEmail)
}

func TestAccountService_Edit_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   EditAccountInput
		msg  string
	}{
		{"missing password", EditAccountInput{PasswordConfirm: "x", Email: "a@b.c"}, "Password is required!"},
		{"missing confirmation", EditAccountInput{Password: "x", Email: "a@b.c"}, "Password Confirmation is required!"},
		{"mismatch", EditAccountInput{Password: "x", PasswordConfirm: "y", Email: "a@b.c"}, "Password and Password Confirmation are not equal!"},
		{"missing email", EditAccountInput{Password: "x", PasswordConfirm: "x"}, "Email is required!"},
		{"invalid email", EditAccountInput{Password: "x", PasswordConfirm: "x", Email: "nope"}, "Please enter a valid email address!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAccountService(failingUserRepo(t)).Edit(context.Background(), &fakeSession{username: "alice"}, tt.in)
			assertValidationError(t, err, tt.msg)
		})
	}
}

func TestAccountService_Edit_VanishedUser(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.updateFn = func(_ context.Context, u, _, _ string) error { return models.NewNotFoundError("User", u) }
	sess := &fakeSession{username: "alice"}

	err := NewAccountService(repo).Edit(context.Background(), sess,
		EditAccountInput{Password: "x", PasswordConfirm: "x", Email: "a@b.c"})
	assertAppError(t, err, models.CodeUnauthenticated, "")
	assert.Equal(t, 1, sess.clears)
}

func TestAccountService_Delete(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var deleted string
	repo.deleteFn = func(_ context.Context, u string) error { deleted = u; return nil }
	sess := &fakeSession{username: "alice"}

	require.NoError(t, NewAccountService(repo).Delete(context.Background(), sess))
	assert.Equal(t, "alice", deleted)
	_, ok := sess.Username()
	assert.False(t, ok)
}

func TestAccountService_Delete_StorageErrorKeepsSession(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.deleteFn = func(context.Context, string) error { return models.NewInternalError(nil) }
	sess := &fakeSession{username: "alice"}

	err := NewAccountService(repo).Delete(context.Background(), sess)
	assertAppError(t, err, models.CodeInternal, "")
	assert.Equal(t, "alice", sess.username)
}
