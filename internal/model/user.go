package model

import (
	"time"

	"github.com/google/uuid"
)

// User 用户模型
type User struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Email       *string        `json:"email"`
	Preferences map[string]any `json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewUser 创建用户记录，分配生成的 ID 与默认字段
func NewUser(username string, email *string) User {
	return User{
		ID:          GenerateID(),
		Username:    username,
		Email:       email,
		Preferences: map[string]any{},
		CreatedAt:   time.Now(),
	}
}

// GenerateID 生成全局唯一的记录 ID，分配后不再复用
func GenerateID() string {
	return uuid.NewString()
}
