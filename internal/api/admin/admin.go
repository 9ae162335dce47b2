package admin

import (
	"strconv"

	apperrors "github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 处理管理员后台请求
type AdminHandler struct {
	userService  service.UserServiceInterface
	statsService *service.StatsService
	analytics    *apperrors.ErrorAnalytics
}

// NewAdminHandler 创建一个新的 AdminHandler 实例
func NewAdminHandler(userService service.UserServiceInterface, statsService *service.StatsService, analytics *apperrors.ErrorAnalytics) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		statsService: statsService,
		analytics:    analytics,
	}
}

// GetUsers 分页获取用户列表
func (h *AdminHandler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	users, err := h.userService.GetUsers(page, pageSize)
	if err != nil {
		apperrors.HandleError(c, apperrors.Wrap(apperrors.ErrDatabase, "获取用户列表失败", err))
		return
	}

	apperrors.HandleSuccess(c, gin.H{
		"users":     users,
		"page":      page,
		"page_size": pageSize,
	}, "")
}

// GetSystemStats 系统统计数据
func (h *AdminHandler) GetSystemStats(c *gin.Context) {
	stats, err := h.statsService.GetSystemStats()
	if err != nil {
		apperrors.HandleError(c, apperrors.Wrap(apperrors.ErrDatabase, "获取系统统计失败", err))
		return
	}

	apperrors.HandleSuccess(c, gin.H{
		"stats": stats,
	}, "")
}

// GetErrorStats 错误监控统计数据
func (h *AdminHandler) GetErrorStats(c *gin.Context) {
	apperrors.HandleSuccess(c, h.analytics.GetStats(), "")
}
