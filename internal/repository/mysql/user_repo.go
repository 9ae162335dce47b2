package mysql

import (
	"database/sql"
	"time"

	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"

	"go.uber.org/zap"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// Create 创建一个新用户
func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (name, email, password_hash, department, role, avatar_url, joined_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	if user.Role == "" {
		user.Role = model.RoleEmployee
	}
	user.JoinedAt = time.Now()
	result, err := r.db.Exec(query, user.Name, user.Email, user.PasswordHash,
		user.Department, user.Role, user.AvatarURL, user.JoinedAt)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err), zap.String("email", user.Email))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	util.Logger.Info("用户创建成功", zap.Int("user_id", user.ID))
	return nil
}

// FindByID 通过ID查找用户，未找到时返回 (nil, nil)
func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, department, role, avatar_url, joined_at
              FROM users WHERE id = ?`
	var user model.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Department, &user.Role, &user.AvatarURL, &user.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail 通过邮箱查找用户，未找到时返回 (nil, nil)
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, department, role, avatar_url, joined_at
              FROM users WHERE email = ?`
	var user model.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Department, &user.Role, &user.AvatarURL, &user.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Update 更新用户信息
func (r *userRepository) Update(user *model.User) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET name = ?, email = ?, department = ?, role = ?, avatar_url = ?
		WHERE id = ?`,
		user.Name, user.Email, user.Department, user.Role, user.AvatarURL, user.ID)
	return err
}

// Count 返回用户总数
func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// FindAll 分页返回用户列表
func (r *userRepository) FindAll(page, pageSize int) ([]*model.User, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	query := `SELECT id, name, email, password_hash, department, role, avatar_url, joined_at
              FROM users ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Department, &user.Role, &user.AvatarURL, &user.JoinedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
