// Package seed creates the built-in accounts and starter posts, and can pad
// the post table with generated demo content for local development.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"quill/internal/config"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/passwords"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminPermission is the permission tag of the built-in admin account.
const AdminPermission = "Admin"

// BuiltInAccount is a permanent account created on first start.
type BuiltInAccount struct {
	Username   string
	Permission string
	password   func(cfg *config.Config) string
}

// BuiltInAccounts defines the accounts seeded by BuiltIns.
var BuiltInAccounts = []BuiltInAccount{
	{Username: "admin", Permission: AdminPermission, password: func(cfg *config.Config) string { return cfg.AdminPassword }},
	{Username: "testUser", Permission: models.DefaultPermission, password: func(cfg *config.Config) string { return cfg.TestUserPassword }},
}

// BuiltInPosts are inserted when the post table is empty.
var BuiltInPosts = []models.Post{
	{Title: "First Post", Content: "Content for the first post"},
	{Title: "Second Post", Content: "Content for the second post"},
}

// BuiltIns seeds the built-in accounts and starter posts. Existing rows are
// left alone, so it is safe to run on every start. Accounts without a
// configured password are skipped.
func BuiltIns(db *gorm.DB, cfg *config.Config, hasher passwords.Hasher) error {
	if hasher == nil {
		hasher = passwords.Default
	}

	for _, account := range BuiltInAccounts {
		password := account.password(cfg)
		if password == "" {
			middleware.Logger.Warn("skipping built-in account without password", "username", account.Username)
			continue
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", account.Username, err)
		}

		user := models.User{
			Username:   account.Username,
			Password:   hash,
			Email:      cfg.SeedEmail,
			Permission: account.Permission,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", account.Username, err)
		}
	}

	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if count > 0 {
		return nil
	}

	posts := make([]models.Post, len(BuiltInPosts))
	copy(posts, BuiltInPosts)
	if err := db.Create(&posts).Error; err != nil {
		return fmt.Errorf("seed starter posts: %w", err)
	}

	middleware.Logger.Info("seeded built-in content", "posts", len(posts))
	return nil
}

// BuildFakePost returns an unsaved post with generated content and a
// created_at spread over the last maxDays days.
func BuildFakePost(r *rand.Rand, maxDays int) models.Post {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(r.Intn(maxDays))*24*time.Hour +
		time.Duration(r.Intn(24))*time.Hour +
		time.Duration(r.Intn(60))*time.Minute

	return models.Post{
		Title:     gofakeit.Sentence(5),
		Content:   gofakeit.Paragraph(1, 3, 12, "\n"),
		CreatedAt: time.Now().Add(-back),
	}
}

// FakePosts inserts n generated posts in batches.
func FakePosts(db *gorm.DB, n int) error {
	if n <= 0 {
		return nil
	}

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	posts := make([]models.Post, 0, n)
	for range n {
		posts = append(posts, BuildFakePost(r, 90))
	}

	if err := db.CreateInBatches(&posts, 100).Error; err != nil {
		return fmt.Errorf("seed fake posts: %w", err)
	}

	middleware.Logger.Info("seeded demo posts", "count", n)
	return nil
}
