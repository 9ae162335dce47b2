package feed

import (
	"strconv"

	"github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/service"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedHandler 处理表扬帖相关的HTTP请求
type FeedHandler struct {
	feedService service.FeedServiceInterface
}

func NewFeedHandler(feedService service.FeedServiceInterface) *FeedHandler {
	return &FeedHandler{feedService}
}

// ListShoutouts 返回过滤后的表扬帖列表
func (h *FeedHandler) ListShoutouts(c *gin.Context) {
	department := c.DefaultQuery("department", "all")
	search := c.Query("search")

	shoutouts := h.feedService.ListShoutouts(department, search)

	errors.HandleSuccess(c, gin.H{
		"shoutouts": shoutouts,
		"total":     len(shoutouts),
	}, "")
}

// CreateShoutout 创建表扬帖，发送者为当前登录用户
func (h *FeedHandler) CreateShoutout(c *gin.Context) {
	var createData struct {
		Message      string `json:"message" binding:"required"`
		RecipientIDs []int  `json:"recipient_ids"`
	}

	if err := c.ShouldBindJSON(&createData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	senderID := c.GetInt("user_id")
	shoutout, err := h.feedService.CreateShoutout(senderID, createData.RecipientIDs, createData.Message)
	if err != nil {
		util.Logger.Warn("创建表扬帖失败", zap.Error(err), zap.Int("sender_id", senderID))
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("表扬帖创建成功",
		zap.Int("shoutout_id", shoutout.ID),
		zap.Int("sender_id", senderID),
		zap.Int("recipients", len(shoutout.Recipients)))

	errors.HandleSuccess(c, gin.H{
		"shoutout": shoutout,
	}, "发布成功")
}

// ToggleReaction 切换当前用户在某帖上的表态
func (h *FeedHandler) ToggleReaction(c *gin.Context) {
	shoutoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	var reactionData struct {
		Kind string `json:"kind" binding:"required,reaction"`
	}
	if err := c.ShouldBindJSON(&reactionData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的表态类型", err))
		return
	}

	reactorID := c.GetInt("user_id")
	shoutout, err := h.feedService.ToggleReaction(shoutoutID, reactorID, model.ReactionKind(reactionData.Kind))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"shoutout": shoutout,
	}, "")
}

// AddComment 向帖子追加评论
func (h *FeedHandler) AddComment(c *gin.Context) {
	shoutoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	var commentData struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&commentData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "评论内容不能为空", err))
		return
	}

	authorID := c.GetInt("user_id")
	comment, err := h.feedService.AddComment(shoutoutID, authorID, commentData.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comment": comment,
	}, "评论成功")
}

// DeleteShoutout 删除帖子（仅管理员路由可达）
func (h *FeedHandler) DeleteShoutout(c *gin.Context) {
	shoutoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	if err := h.feedService.DeleteShoutout(shoutoutID); err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("表扬帖已删除",
		zap.Int("shoutout_id", shoutoutID),
		zap.Int("operator_id", c.GetInt("user_id")))

	errors.HandleSuccess(c, nil, "帖子删除成功")
}

// FlagShoutout 标记帖子（仅管理员路由可达），重复标记幂等
func (h *FeedHandler) FlagShoutout(c *gin.Context) {
	shoutoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	if err := h.feedService.FlagShoutout(shoutoutID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "帖子已标记")
}

// Leaderboard 返回积分排行榜前5名
func (h *FeedHandler) Leaderboard(c *gin.Context) {
	errors.HandleSuccess(c, gin.H{
		"leaderboard": h.feedService.Leaderboard(),
	}, "")
}

// DepartmentStats 返回按部门统计的帖子数
func (h *FeedHandler) DepartmentStats(c *gin.Context) {
	errors.HandleSuccess(c, gin.H{
		"departments": h.feedService.DepartmentHistogram(),
	}, "")
}

// Departments 返回已知部门列表，供前端过滤器使用
func (h *FeedHandler) Departments(c *gin.Context) {
	errors.HandleSuccess(c, gin.H{
		"departments": h.feedService.Departments(),
	}, "")
}
