package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account in the identity store
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID       string    `gorm:"uniqueIndex;size:36;not null" json:"uid"`
	Mail      string    `gorm:"uniqueIndex;size:255;not null" json:"mail"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Profile is the document written alongside a new account on sign-up
type Profile struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	UID       string    `gorm:"uniqueIndex;size:36;not null" json:"uid"`
	Mail      string    `gorm:"size:255;not null" json:"mail"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
