package feed

import (
	"time"

	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"
	"go.uber.org/zap"
)

// SeedDemo 加载演示用户与表扬帖，供前端联调使用
func SeedDemo(s *Store) {
	demoUsers := []*model.User{
		{ID: 1, Name: "Aarav Sharma", Department: "HR", Role: model.RoleEmployee},
		{ID: 2, Name: "Neha Patel", Department: "Engineering", Role: model.RoleEmployee},
		{ID: 3, Name: "Rohan Desai", Department: "Marketing", Role: model.RoleEmployee},
		{ID: 4, Name: "Priya Mehta", Department: "Sales", Role: model.RoleEmployee},
		{ID: 5, Name: "Soham Sawant", Department: "Product", Role: model.RoleEmployee},
	}
	for _, u := range demoUsers {
		s.AddUser(u)
	}

	first, err := s.CreateShoutout(2, []int{1}, "Neha shipped the API improvements — massive speed up! 🚀")
	if err != nil {
		util.Logger.Error("加载演示数据失败", zap.Error(err))
		return
	}
	second, err := s.CreateShoutout(4, []int{2, 5}, "Priya and Soham crushed the client demo presentation — stellar teamwork. ✨")
	if err != nil {
		util.Logger.Error("加载演示数据失败", zap.Error(err))
		return
	}

	// 回调创建时间，使演示数据呈现历史分布
	s.mu.Lock()
	s.byID[first.ID].CreatedAt = time.Now().Add(-48 * time.Hour)
	s.byID[second.ID].CreatedAt = time.Now().Add(-6 * time.Hour)
	s.mu.Unlock()

	if _, err := s.AddComment(first.ID, 3, "Fantastic work!"); err != nil {
		util.Logger.Error("加载演示评论失败", zap.Error(err))
	}

	util.Logger.Info("演示数据加载完成",
		zap.Int("users", len(demoUsers)),
		zap.Int("shoutouts", 2))
}
