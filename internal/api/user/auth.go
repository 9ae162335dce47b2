package user

import (
	"strings"

	"github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/service"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	userService service.UserServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=8"`
		Department string `json:"department"`
		Role       string `json:"role" binding:"omitempty,role"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user := &model.User{
		Name:         registerData.Name,
		Email:        registerData.Email,
		PasswordHash: registerData.Password,
		Department:   registerData.Department,
		Role:         registerData.Role,
	}

	if err := h.userService.Register(user); err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrUserExists {
			util.Logger.Warn("注册失败，邮箱已被注册",
				zap.String("email", user.Email))
			errors.HandleError(c, err)
			return
		}
		util.Logger.Error("注册失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "注册失败", err))
		return
	}

	errors.HandleCreated(c, gin.H{
		"user_id": user.ID,
	}, "注册成功")
}

// Login 处理用户登录请求，返回访问令牌与刷新令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user, err := h.userService.Login(loginData.Email, loginData.Password)
	if err != nil {
		// 只有凭证错误映射为401，其余按内部错误处理
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrInvalidCredentials {
			errors.HandleError(c, appErr)
			return
		}
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "登录失败", err))
		return
	}

	accessToken, err := util.GenerateAccessToken(user.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "生成令牌失败", err))
		return
	}
	refreshToken, err := util.GenerateRefreshToken(user.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "生成令牌失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"user":          user,
	}, "登录成功")
}

// Me 返回当前登录用户的信息
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt("user_id")
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "")
}

// RefreshToken 使用刷新令牌换取新的访问令牌
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var refreshData struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&refreshData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	newToken, err := util.RefreshAccessToken(refreshData.RefreshToken)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrUnauthorized, "刷新令牌失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"access_token":  newToken,
		"refresh_token": refreshData.RefreshToken,
		"token_type":    "bearer",
	}, "令牌刷新成功")
}

// Logout 处理用户登出，将当前令牌加入黑名单
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		h.userService.Logout(parts[1])
	}
	errors.HandleSuccess(c, nil, "已成功登出")
}
