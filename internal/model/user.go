package model

import "time"

// 用户角色
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// User 结构体表示用户模型
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // 密码哈希不应在JSON中暴露
	Department   string    `json:"department"`
	Role         string    `json:"role"`
	AvatarURL    string    `json:"avatar_url"`
	JoinedAt     time.Time `json:"joined_at"`
}
