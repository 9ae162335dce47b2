package model

// SystemStats 系统统计数据
type SystemStats struct {
	TotalUsers       int `json:"total_users"`
	TotalShoutouts   int `json:"total_shoutouts"`
	FlaggedShoutouts int `json:"flagged_shoutouts"`
	TotalReactions   int `json:"total_reactions"`
	TotalComments    int `json:"total_comments"`
}
