package model

import "time"

// ReactionKind 表示表态类型，取值为固定集合
type ReactionKind string

const (
	ReactionLike ReactionKind = "like"
	ReactionClap ReactionKind = "clap"
	ReactionStar ReactionKind = "star"
)

// ReactionKinds 列出所有合法的表态类型
var ReactionKinds = []ReactionKind{ReactionLike, ReactionClap, ReactionStar}

// Valid 判断表态类型是否合法
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionClap, ReactionStar:
		return true
	}
	return false
}

// Shoutout 表扬帖，recipients 为空表示面向全员
type Shoutout struct {
	ID         int                  `json:"id"`
	Sender     *User                `json:"sender"`
	Recipients []*User              `json:"recipients"`
	Message    string               `json:"message"`
	CreatedAt  time.Time            `json:"created_at"`
	Reactions  map[ReactionKind]int `json:"reactions"`
	// ReactedBy 记录每个用户已点过的表态类型，计数与其保持一致
	ReactedBy map[int][]ReactionKind `json:"reacted_by"`
	Comments  []*Comment             `json:"comments"`
	Flagged   bool                   `json:"flagged"`
}

// CommentAuthor 评论作者的最小引用
type CommentAuthor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Comment 帖子评论，按追加顺序排列
type Comment struct {
	ID        int            `json:"id"`
	User      *CommentAuthor `json:"user"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
}

// LeaderboardEntry 排行榜条目，按积分降序
type LeaderboardEntry struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// DepartmentCount 按发送者部门统计的帖子数
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}
