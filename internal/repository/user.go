// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/passwords"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for user credentials.
// Plaintext passwords go in; only hashes are stored.
type UserRepository interface {
	// GetByUsername returns (nil, nil) when no such user exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, username, password, email string) error
	Update(ctx context.Context, username, password, email string) error
	Delete(ctx context.Context, username string) error
	// VerifyPassword reports whether password matches the stored hash of user.
	VerifyPassword(user *models.User, password string) bool
}

type userRepository struct {
	db     *gorm.DB
	hasher passwords.Hasher
}

// NewUserRepository returns a new UserRepository implementation.
// A nil hasher uses passwords.Default.
func NewUserRepository(db *gorm.DB, hasher passwords.Hasher) UserRepository {
	if hasher == nil {
		hasher = passwords.Default
	}
	return &userRepository{db: db, hasher: hasher}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, username, password, email string) error {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return models.NewInternalError(err)
	}

	defer observability.TrackQuery("insert", "users")()

	user := models.User{
		Username:   username,
		Password:   hash,
		Email:      email,
		Permission: models.DefaultPermission,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConstraintViolationError(err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, username, password, email string) error {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return models.NewInternalError(err)
	}

	defer observability.TrackQuery("update", "users")()

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{"password": hash, "email": email})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", username)
	}
	return nil
}

// Delete removes the user. Deleting a missing user is not an error.
func (r *userRepository) Delete(ctx context.Context, username string) error {
	defer observability.TrackQuery("delete", "users")()

	if err := r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.User{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) VerifyPassword(user *models.User, password string) bool {
	if user == nil {
		return false
	}
	return r.hasher.Verify(password, user.Password)
}
