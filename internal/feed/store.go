package feed

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"
)

// Store 保存表扬帖与用户的内存状态，是唯一的修改入口。
// Gin 并发处理请求，因此所有操作都在读写锁内完成，
// 且对外只返回深拷贝快照，内部对象不越过锁的边界。
type Store struct {
	mu sync.RWMutex

	users     map[int]*model.User
	userOrder []int

	// shoutouts 按插入顺序排列，最新的在头部
	shoutouts []*model.Shoutout
	byID      map[int]*model.Shoutout

	nextShoutoutID int
	nextCommentID  int
}

// cloneUser 复制用户，快照中的用户不随后续改名变化
func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// cloneShoutout 在持有锁时生成帖子的深拷贝。
// 所有对外返回的帖子都是快照，释放锁后序列化不会与写入竞争。
func cloneShoutout(sh *model.Shoutout) *model.Shoutout {
	c := *sh
	c.Sender = cloneUser(sh.Sender)
	c.Recipients = make([]*model.User, len(sh.Recipients))
	for i, r := range sh.Recipients {
		c.Recipients[i] = cloneUser(r)
	}
	c.Reactions = make(map[model.ReactionKind]int, len(sh.Reactions))
	for k, v := range sh.Reactions {
		c.Reactions[k] = v
	}
	c.ReactedBy = make(map[int][]model.ReactionKind, len(sh.ReactedBy))
	for id, kinds := range sh.ReactedBy {
		c.ReactedBy[id] = append([]model.ReactionKind(nil), kinds...)
	}
	c.Comments = make([]*model.Comment, len(sh.Comments))
	for i, cm := range sh.Comments {
		cc := *cm
		cc.User = &model.CommentAuthor{ID: cm.User.ID, Name: cm.User.Name}
		c.Comments[i] = &cc
	}
	return &c
}

// NewStore 创建一个空的 Store
func NewStore() *Store {
	return &Store{
		users:          make(map[int]*model.User),
		byID:           make(map[int]*model.Shoutout),
		nextShoutoutID: 1,
		nextCommentID:  1,
	}
}

// AddUser 向用户集合添加用户。已存在时原地更新，
// 这样引用该用户的旧帖子也会反映新的姓名与部门。
func (s *Store) AddUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[u.ID]; ok {
		*existing = *u
		return
	}
	s.userOrder = append(s.userOrder, u.ID)
	stored := *u
	s.users[u.ID] = &stored
}

// GetUser 按ID查找用户，返回副本
func (s *Store) GetUser(id int) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	c := *u
	return &c, true
}

// Users 返回按加入顺序排列的用户列表（副本）
func (s *Store) Users() []*model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		c := *s.users[id]
		out = append(out, &c)
	}
	return out
}

// Departments 返回已知用户部门的去重列表（首次出现顺序）
func (s *Store) Departments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, id := range s.userOrder {
		dept := s.users[id].Department
		if dept == "" || seen[dept] {
			continue
		}
		seen[dept] = true
		out = append(out, dept)
	}
	return out
}

// CreateShoutout 创建一条表扬帖并插入到头部。
// 消息去除首尾空白后不能为空；未知的接收者ID会被丢弃。
func (s *Store) CreateShoutout(senderID int, recipientIDs []int, message string) (*model.Shoutout, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.New(errors.ErrValidation, "message cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sender, ok := s.users[senderID]
	if !ok {
		return nil, errors.New(errors.ErrUserNotFound, "sender not found")
	}

	recipients := make([]*model.User, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		if u, ok := s.users[id]; ok {
			recipients = append(recipients, u)
		}
	}

	shoutout := &model.Shoutout{
		ID:         s.nextShoutoutID,
		Sender:     sender,
		Recipients: recipients,
		Message:    message,
		CreatedAt:  time.Now(),
		Reactions:  map[model.ReactionKind]int{model.ReactionLike: 0, model.ReactionClap: 0, model.ReactionStar: 0},
		ReactedBy:  make(map[int][]model.ReactionKind),
		Comments:   []*model.Comment{},
	}
	s.nextShoutoutID++

	s.shoutouts = append([]*model.Shoutout{shoutout}, s.shoutouts...)
	s.byID[shoutout.ID] = shoutout
	return cloneShoutout(shoutout), nil
}

// ToggleReaction 切换某用户在某帖上的一种表态：已点则取消，未点则添加。
// 每次调用恰好发生一次状态变化，计数与成员集合始终一致。
func (s *Store) ToggleReaction(shoutoutID, reactorID int, kind model.ReactionKind) (*model.Shoutout, error) {
	if !kind.Valid() {
		return nil, errors.New(errors.ErrValidation, "unknown reaction kind")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shoutout, ok := s.byID[shoutoutID]
	if !ok {
		return nil, errors.New(errors.ErrShoutoutNotFound, "shoutout not found")
	}

	reacted := false
	for _, k := range shoutout.ReactedBy[reactorID] {
		if k == kind {
			reacted = true
			break
		}
	}

	if reacted {
		kept := make([]model.ReactionKind, 0, len(shoutout.ReactedBy[reactorID]))
		for _, k := range shoutout.ReactedBy[reactorID] {
			if k != kind {
				kept = append(kept, k)
			}
		}
		shoutout.ReactedBy[reactorID] = kept
		if shoutout.Reactions[kind] > 0 {
			shoutout.Reactions[kind]--
		}
	} else {
		shoutout.ReactedBy[reactorID] = append(shoutout.ReactedBy[reactorID], kind)
		shoutout.Reactions[kind]++
	}

	return cloneShoutout(shoutout), nil
}

// AddComment 向帖子追加评论，评论不可修改或删除
func (s *Store) AddComment(shoutoutID, authorID int, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New(errors.ErrValidation, "comment text cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shoutout, ok := s.byID[shoutoutID]
	if !ok {
		return nil, errors.New(errors.ErrShoutoutNotFound, "shoutout not found")
	}
	author, ok := s.users[authorID]
	if !ok {
		return nil, errors.New(errors.ErrUserNotFound, "comment author not found")
	}

	comment := &model.Comment{
		ID:        s.nextCommentID,
		User:      &model.CommentAuthor{ID: author.ID, Name: author.Name},
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.nextCommentID++

	shoutout.Comments = append(shoutout.Comments, comment)
	snapshot := *comment
	snapshot.User = &model.CommentAuthor{ID: comment.User.ID, Name: comment.User.Name}
	return &snapshot, nil
}

// DeleteShoutout 永久删除帖子
func (s *Store) DeleteShoutout(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return errors.New(errors.ErrShoutoutNotFound, "shoutout not found")
	}
	delete(s.byID, id)
	for i, sh := range s.shoutouts {
		if sh.ID == id {
			s.shoutouts = append(s.shoutouts[:i], s.shoutouts[i+1:]...)
			break
		}
	}
	return nil
}

// FlagShoutout 标记帖子，标记只增不减，重复调用幂等
func (s *Store) FlagShoutout(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shoutout, ok := s.byID[id]
	if !ok {
		return errors.New(errors.ErrShoutoutNotFound, "shoutout not found")
	}
	shoutout.Flagged = true
	return nil
}

// Filter 按部门与搜索词过滤，结果按创建时间降序（相同时间保持插入顺序）。
// 部门为 "all" 或空时不限制；搜索词匹配消息、发送者或任一接收者姓名。
// 返回的都是快照，调用方可以在锁外安全地序列化。
func (s *Store) Filter(department, search string) []*model.Shoutout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(search))

	out := make([]*model.Shoutout, 0, len(s.shoutouts))
	for _, sh := range s.shoutouts {
		if department != "" && department != "all" {
			match := sh.Sender.Department == department
			for _, r := range sh.Recipients {
				if r.Department == department {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if q != "" && !matchesSearch(sh, q) {
			continue
		}
		out = append(out, cloneShoutout(sh))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matchesSearch(sh *model.Shoutout, q string) bool {
	if strings.Contains(strings.ToLower(sh.Message), q) {
		return true
	}
	if strings.Contains(strings.ToLower(sh.Sender.Name), q) {
		return true
	}
	for _, r := range sh.Recipients {
		if strings.Contains(strings.ToLower(r.Name), q) {
			return true
		}
	}
	return false
}

// 发送者与接收者的积分权重
const (
	senderPoints    = 5
	recipientPoints = 2
)

// Leaderboard 返回积分最高的前5名。
// 按用户ID累计积分（姓名仅用于展示），同分保持首次出现顺序。
func (s *Store) Leaderboard() []model.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := make(map[int]int)
	names := make(map[int]string)
	var order []int

	add := func(id int, name string, pts int) {
		if _, ok := points[id]; !ok {
			order = append(order, id)
			names[id] = name
		}
		points[id] += pts
	}

	for _, sh := range s.shoutouts {
		add(sh.Sender.ID, sh.Sender.Name, senderPoints)
		for _, r := range sh.Recipients {
			add(r.ID, r.Name, recipientPoints)
		}
	}

	entries := make([]model.LeaderboardEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, model.LeaderboardEntry{UserID: id, Name: names[id], Points: points[id]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	if len(entries) > 5 {
		entries = entries[:5]
	}
	return entries
}

// 发送者部门为空时使用的回退标签
const defaultDepartment = "General"

// DepartmentHistogram 按发送者部门统计帖子数，按部门首次出现顺序返回
func (s *Store) DepartmentHistogram() []model.DepartmentCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	var order []string
	for _, sh := range s.shoutouts {
		dept := sh.Sender.Department
		if dept == "" {
			dept = defaultDepartment
		}
		if _, ok := counts[dept]; !ok {
			order = append(order, dept)
		}
		counts[dept]++
	}

	out := make([]model.DepartmentCount, 0, len(order))
	for _, dept := range order {
		out = append(out, model.DepartmentCount{Department: dept, Count: counts[dept]})
	}
	return out
}

// Stats 汇总当前内存状态的统计数据
func (s *Store) Stats() (shoutouts, flagged, reactions, comments int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shoutouts = len(s.shoutouts)
	for _, sh := range s.shoutouts {
		if sh.Flagged {
			flagged++
		}
		for _, n := range sh.Reactions {
			reactions += n
		}
		comments += len(sh.Comments)
	}
	return
}
