// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// User はアプリケーションの利用者 (デッキの所有者)
type User struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`

	// GORM用のリレーション (JSONには含めない)
	Decks []Deck `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// UserResponse はクライアントに返すユーザー情報
type UserResponse struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{UserID: u.UserID, Email: u.Email}
}
