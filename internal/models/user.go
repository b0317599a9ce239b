// Package models contains data structures for the application's domain models.
package models

// DefaultPermission is the permission tag of accounts created through signup.
const DefaultPermission = "User"

// User is a credential record keyed by username. Password holds a bcrypt hash.
type User struct {
	Username   string `gorm:"primaryKey" json:"username"`
	Password   string `gorm:"not null" json:"-"`
	Email      string `gorm:"not null" json:"email"`
	Permission string `gorm:"size:32;default:User" json:"permission"`
}
