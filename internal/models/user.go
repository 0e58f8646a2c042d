package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	About        string    `gorm:"type:varchar(140);not null;default:''" json:"about"`
	Image        string    `gorm:"type:varchar(128)" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	UsernameMinLength = 3
	UsernameMaxLength = 64
	PasswordMinLength = 8
	PasswordMaxLength = 128
	AboutMaxLength    = 140
)

// DefaultAvatarPath is served for users who never uploaded an avatar
const DefaultAvatarPath = "static/images/default-avatar.png"

// BeforeCreate hook for validation; username is immutable after creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if len(u.Username) < UsernameMinLength || len(u.Username) > UsernameMaxLength {
		return gorm.ErrInvalidData
	}
	if len(u.About) > AboutMaxLength {
		return gorm.ErrInvalidData
	}
	return nil
}

// HasAvatar reports whether the user uploaded a custom avatar
func (u *User) HasAvatar() bool {
	return u.Image != ""
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
