package service

import (
	"sync"
	"time"

	"github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/feed"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/repository/interfaces"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"

	"go.uber.org/zap"

	"golang.org/x/crypto/bcrypt"
)

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo     interfaces.UserRepository
	emailService *EmailService
	// feedStore 可为空（测试场景），注册成功后向其同步用户
	feedStore      *feed.Store
	tokenBlacklist map[string]time.Time
	blacklistMutex sync.RWMutex
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, feedStore *feed.Store) *UserService {
	return &UserService{
		userRepo:       userRepo,
		emailService:   NewEmailService(),
		feedStore:      feedStore,
		tokenBlacklist: make(map[string]time.Time),
	}
}

// Register 注册新用户
func (s *UserService) Register(user *model.User) error {
	existing, err := s.userRepo.FindByEmail(user.Email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "email already registered")
	}

	// 生成密码哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)

	if user.Role == "" {
		user.Role = model.RoleEmployee
	}

	if err := s.userRepo.Create(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}

	// 新用户进入内存状态，立即可作为表扬帖的接收者
	if s.feedStore != nil {
		s.feedStore.AddUser(user)
	}

	s.emailService.SendWelcomeEmail(user.Email, user.Name)
	return nil
}

// Login 用户登录，校验邮箱与密码
func (s *UserService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		util.Logger.Warn("用户登录失败，密码不正确", zap.String("email", email))
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}

	util.Logger.Info("用户登录成功", zap.Int("user_id", user.ID))
	return user, nil
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

// UpdateUser 更新用户信息，只允许修改姓名与部门
func (s *UserService) UpdateUser(user *model.User) error {
	existingUser, err := s.GetUserByID(user.ID)
	if err != nil {
		return err
	}

	existingUser.Name = user.Name
	existingUser.Department = user.Department

	if err := s.userRepo.Update(existingUser); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}
	if s.feedStore != nil {
		s.feedStore.AddUser(existingUser)
	}
	return nil
}

// UpdateAvatar 更新用户头像
func (s *UserService) UpdateAvatar(userID int, avatarURL string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	user.AvatarURL = avatarURL
	return s.userRepo.Update(user)
}

// Logout 将当前令牌加入黑名单
func (s *UserService) Logout(token string) {
	s.blacklistMutex.Lock()
	s.tokenBlacklist[token] = time.Now().Add(24 * time.Hour) // 令牌在黑名单中保留24小时
	s.blacklistMutex.Unlock()
	util.Logger.Info("用户注销，令牌已加入黑名单")
}

// IsTokenBlacklisted 检查令牌是否已被注销
func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	expiry, exists := s.tokenBlacklist[token]
	s.blacklistMutex.RUnlock()
	if !exists {
		return false
	}
	if time.Now().After(expiry) {
		s.blacklistMutex.Lock()
		delete(s.tokenBlacklist, token)
		s.blacklistMutex.Unlock()
		return false
	}
	return true
}

// IsAdmin 判断用户是否为管理员
func (s *UserService) IsAdmin(userID int) (bool, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return false, err
	}
	return user.Role == model.RoleAdmin, nil
}

// GetUsers 分页获取用户列表
func (s *UserService) GetUsers(page, pageSize int) ([]*model.User, error) {
	return s.userRepo.FindAll(page, pageSize)
}

// UserServiceInterface 定义用户服务的对外能力
type UserServiceInterface interface {
	Register(user *model.User) error
	Login(email, password string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUser(user *model.User) error
	UpdateAvatar(userID int, avatarURL string) error
	Logout(token string)
	IsTokenBlacklisted(token string) bool
	IsAdmin(userID int) (bool, error)
	GetUsers(page, pageSize int) ([]*model.User, error)
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)
