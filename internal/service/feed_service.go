package service

import (
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/feed"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
)

// FeedService 封装表扬帖的业务逻辑：所有状态变化经由 feed.Store，
// 创建表扬帖时异步通知接收者。
type FeedService struct {
	store        *feed.Store
	emailService *EmailService
}

func NewFeedService(store *feed.Store) *FeedService {
	return &FeedService{
		store:        store,
		emailService: NewEmailService(),
	}
}

// CreateShoutout 创建表扬帖并通知所有接收者
func (s *FeedService) CreateShoutout(senderID int, recipientIDs []int, message string) (*model.Shoutout, error) {
	shoutout, err := s.store.CreateShoutout(senderID, recipientIDs, message)
	if err != nil {
		return nil, err
	}

	for _, r := range shoutout.Recipients {
		if r.Email != "" {
			s.emailService.SendRecognitionEmail(r.Email, r.Name, shoutout.Sender.Name, shoutout.Message)
		}
	}
	return shoutout, nil
}

// ToggleReaction 切换表态
func (s *FeedService) ToggleReaction(shoutoutID, reactorID int, kind model.ReactionKind) (*model.Shoutout, error) {
	return s.store.ToggleReaction(shoutoutID, reactorID, kind)
}

// AddComment 追加评论
func (s *FeedService) AddComment(shoutoutID, authorID int, text string) (*model.Comment, error) {
	return s.store.AddComment(shoutoutID, authorID, text)
}

// DeleteShoutout 删除表扬帖
func (s *FeedService) DeleteShoutout(id int) error {
	return s.store.DeleteShoutout(id)
}

// FlagShoutout 标记表扬帖
func (s *FeedService) FlagShoutout(id int) error {
	return s.store.FlagShoutout(id)
}

// ListShoutouts 按部门与搜索词过滤
func (s *FeedService) ListShoutouts(department, search string) []*model.Shoutout {
	return s.store.Filter(department, search)
}

// Leaderboard 获取排行榜
func (s *FeedService) Leaderboard() []model.LeaderboardEntry {
	return s.store.Leaderboard()
}

// DepartmentHistogram 获取部门统计
func (s *FeedService) DepartmentHistogram() []model.DepartmentCount {
	return s.store.DepartmentHistogram()
}

// Departments 获取已知部门列表
func (s *FeedService) Departments() []string {
	return s.store.Departments()
}

// FeedServiceInterface 定义表扬帖服务的对外能力
type FeedServiceInterface interface {
	CreateShoutout(senderID int, recipientIDs []int, message string) (*model.Shoutout, error)
	ToggleReaction(shoutoutID, reactorID int, kind model.ReactionKind) (*model.Shoutout, error)
	AddComment(shoutoutID, authorID int, text string) (*model.Comment, error)
	DeleteShoutout(id int) error
	FlagShoutout(id int) error
	ListShoutouts(department, search string) []*model.Shoutout
	Leaderboard() []model.LeaderboardEntry
	DepartmentHistogram() []model.DepartmentCount
	Departments() []string
}

// 确保 FeedService 实现了 FeedServiceInterface
var _ FeedServiceInterface = (*FeedService)(nil)
