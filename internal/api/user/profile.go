package user

import (
	"fmt"

	"github.com/springboardmentor4545/Brag-Board-Team6/config"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/service"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/storage"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	userService service.UserServiceInterface
	storage     storage.FileStorage
}

func NewProfileHandler(userService service.UserServiceInterface, storage storage.FileStorage) *ProfileHandler {
	return &ProfileHandler{userService, storage}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		util.Logger.Error("获取用户资料失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "")
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	currentUser, err := h.userService.GetUserByID(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	var updateData struct {
		Name       string `json:"name"`
		Department string `json:"department"`
	}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		util.Logger.Warn("更新用户资料失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	// 只更新允许用户修改的字段
	if updateData.Name != "" {
		currentUser.Name = updateData.Name
	}
	if updateData.Department != "" {
		currentUser.Department = updateData.Department
	}

	if err := h.userService.UpdateUser(currentUser); err != nil {
		util.Logger.Error("更新用户资料失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "更新用户资料失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": currentUser,
	}, "资料更新成功")
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetInt("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		util.Logger.Error("获取上传文件失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法获取上传文件", err))
		return
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("avatars/%d/%s", userID, filename)

	avatarURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("上传头像失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "上传头像失败", err))
		return
	}

	// 本地存储返回相对路径，对象存储返回完整URL
	if h.storage.Driver() == storage.DriverLocal {
		avatarURL = fmt.Sprintf("%s/uploads/%s", config.AppConfig.BackendURL, avatarURL)
	}

	if err := h.userService.UpdateAvatar(userID, avatarURL); err != nil {
		util.Logger.Error("更新用户头像失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "更新用户头像失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"avatar_url": avatarURL,
	}, "头像上传成功")
}
