package service

import (
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/feed"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/repository/interfaces"
)

// StatsService 汇总系统统计数据
type StatsService struct {
	userRepo interfaces.UserRepository
	store    *feed.Store
}

func NewStatsService(userRepo interfaces.UserRepository, store *feed.Store) *StatsService {
	return &StatsService{
		userRepo: userRepo,
		store:    store,
	}
}

// GetSystemStats 返回用户总数与内存中表扬帖的汇总数据
func (s *StatsService) GetSystemStats() (*model.SystemStats, error) {
	userCount, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	shoutouts, flagged, reactions, comments := s.store.Stats()

	return &model.SystemStats{
		TotalUsers:       userCount,
		TotalShoutouts:   shoutouts,
		FlaggedShoutouts: flagged,
		TotalReactions:   reactions,
		TotalComments:    comments,
	}, nil
}
