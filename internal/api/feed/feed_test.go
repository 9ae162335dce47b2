package feed

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/service"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("role", util.ValidateRole)
		v.RegisterValidation("reaction", util.ValidateReactionKind)
	}
}

// MockFeedService 是 FeedServiceInterface 的模拟实现
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) CreateShoutout(senderID int, recipientIDs []int, message string) (*model.Shoutout, error) {
	args := m.Called(senderID, recipientIDs, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shoutout), args.Error(1)
}

func (m *MockFeedService) ToggleReaction(shoutoutID, reactorID int, kind model.ReactionKind) (*model.Shoutout, error) {
	args := m.Called(shoutoutID, reactorID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shoutout), args.Error(1)
}

func (m *MockFeedService) AddComment(shoutoutID, authorID int, text string) (*model.Comment, error) {
	args := m.Called(shoutoutID, authorID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockFeedService) DeleteShoutout(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockFeedService) FlagShoutout(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockFeedService) ListShoutouts(department, search string) []*model.Shoutout {
	args := m.Called(department, search)
	return args.Get(0).([]*model.Shoutout)
}

func (m *MockFeedService) Leaderboard() []model.LeaderboardEntry {
	args := m.Called()
	return args.Get(0).([]model.LeaderboardEntry)
}

func (m *MockFeedService) DepartmentHistogram() []model.DepartmentCount {
	args := m.Called()
	return args.Get(0).([]model.DepartmentCount)
}

func (m *MockFeedService) Departments() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// 确保 MockFeedService 实现了 FeedServiceInterface
var _ service.FeedServiceInterface = (*MockFeedService)(nil)

// 带登录态的测试路由
func setupRouter(handler *FeedHandler) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", 42)
	})
	router.GET("/api/shoutouts", handler.ListShoutouts)
	router.POST("/api/shoutouts", handler.CreateShoutout)
	router.POST("/api/shoutouts/:id/reactions", handler.ToggleReaction)
	router.POST("/api/shoutouts/:id/comments", handler.AddComment)
	router.POST("/api/shoutouts/:id/flag", handler.FlagShoutout)
	router.DELETE("/api/shoutouts/:id", handler.DeleteShoutout)
	router.GET("/api/leaderboard", handler.Leaderboard)
	router.GET("/api/stats/departments", handler.DepartmentStats)
	return router
}

// TestListShoutouts 测试列表接口的默认过滤参数
func TestListShoutouts(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	shoutouts := []*model.Shoutout{
		{ID: 2, Message: "second"},
		{ID: 1, Message: "first"},
	}
	// 不带参数时默认 department=all
	mockService.On("ListShoutouts", "all", "").Return(shoutouts)

	req, _ := http.NewRequest("GET", "/api/shoutouts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data struct {
			Shoutouts []model.Shoutout `json:"shoutouts"`
			Total     int              `json:"total"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 2, response.Data.Total)
	assert.Equal(t, 2, response.Data.Shoutouts[0].ID)
	mockService.AssertExpectations(t)

	// 显式过滤参数透传
	mockService.On("ListShoutouts", "Engineering", "release").Return([]*model.Shoutout{})

	req, _ = http.NewRequest("GET", "/api/shoutouts?department=Engineering&search=release", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

// TestCreateShoutoutHandler 测试发帖接口
func TestCreateShoutoutHandler(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	// 发送者取自登录态
	mockService.On("CreateShoutout", 42, []int{1, 2}, "Great job").
		Return(&model.Shoutout{ID: 1, Message: "Great job"}, nil)

	body := []byte(`{"message": "Great job", "recipient_ids": [1, 2]}`)
	req, _ := http.NewRequest("POST", "/api/shoutouts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)

	// 缺少消息体直接被绑定层拒绝，服务不会被调用
	req, _ = http.NewRequest("POST", "/api/shoutouts", bytes.NewBuffer([]byte(`{"recipient_ids": [1]}`)))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateShoutout", 42, []int{1}, "")

	// 仅空白字符的消息由存储层校验
	mockService.On("CreateShoutout", 42, []int(nil), "   ").
		Return(nil, apperrors.New(apperrors.ErrValidation, "message cannot be empty"))

	req, _ = http.NewRequest("POST", "/api/shoutouts", bytes.NewBuffer([]byte(`{"message": "   "}`)))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertExpectations(t)
}

// TestToggleReactionHandler 测试表态接口
func TestToggleReactionHandler(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	mockService.On("ToggleReaction", 1, 42, model.ReactionLike).
		Return(&model.Shoutout{ID: 1, Reactions: map[model.ReactionKind]int{model.ReactionLike: 1}}, nil)

	body := []byte(`{"kind": "like"}`)
	req, _ := http.NewRequest("POST", "/api/shoutouts/1/reactions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)

	// 非法表态类型被校验器拒绝
	req, _ = http.NewRequest("POST", "/api/shoutouts/1/reactions", bytes.NewBuffer([]byte(`{"kind": "fire"}`)))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 帖子不存在
	mockService.On("ToggleReaction", 999, 42, model.ReactionLike).
		Return(nil, apperrors.New(apperrors.ErrShoutoutNotFound, "shoutout not found"))

	req, _ = http.NewRequest("POST", "/api/shoutouts/999/reactions", bytes.NewBuffer([]byte(`{"kind": "like"}`)))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

// TestAddCommentHandler 测试评论接口
func TestAddCommentHandler(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	mockService.On("AddComment", 1, 42, "Nice work!").
		Return(&model.Comment{ID: 1, Text: "Nice work!"}, nil)

	body := []byte(`{"text": "Nice work!"}`)
	req, _ := http.NewRequest("POST", "/api/shoutouts/1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)

	// 无效的帖子ID
	req, _ = http.NewRequest("POST", "/api/shoutouts/abc/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestDeleteAndFlagHandlers 测试管理员删除与标记接口
func TestDeleteAndFlagHandlers(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	mockService.On("DeleteShoutout", 1).Return(nil)
	mockService.On("DeleteShoutout", 999).
		Return(apperrors.New(apperrors.ErrShoutoutNotFound, "shoutout not found"))
	mockService.On("FlagShoutout", 1).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/shoutouts/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("DELETE", "/api/shoutouts/999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req, _ = http.NewRequest("POST", "/api/shoutouts/1/flag", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}

// TestLeaderboardHandler 测试排行榜与部门统计接口
func TestLeaderboardHandler(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	mockService.On("Leaderboard").Return([]model.LeaderboardEntry{
		{UserID: 1, Name: "A", Points: 5},
		{UserID: 2, Name: "B", Points: 2},
	})
	mockService.On("DepartmentHistogram").Return([]model.DepartmentCount{
		{Department: "Engineering", Count: 3},
	})

	req, _ := http.NewRequest("GET", "/api/leaderboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data struct {
			Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Data.Leaderboard, 2)
	assert.Equal(t, 5, response.Data.Leaderboard[0].Points)

	req, _ = http.NewRequest("GET", "/api/stats/departments", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}
