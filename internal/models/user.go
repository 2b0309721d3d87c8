// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered author. The password digest is never
// serialized.
type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"user_id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordDigest string    `gorm:"not null" json:"-"`
	RegisteredDate time.Time `json:"registered_date"`
}

// UserView is the response shape for a user.
type UserView struct {
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	RegisteredDate time.Time `json:"registered_date"`
}

// NewUserView shapes a User for API responses.
func NewUserView(u User) UserView {
	return UserView{
		UserID:         u.ID,
		Username:       u.Username,
		Email:          u.Email,
		RegisteredDate: u.RegisteredDate,
	}
}
