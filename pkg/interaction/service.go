// pkg/interaction/service.go
package interaction

import (
	"GoalArena/pkg/model"
)

// topLimit 热榜默认条数
const topLimit = 10

// Store 互动账本存取，由database.InteractionDB实现
type Store interface {
	Upsert(typ model.InteractionType, subscriberID, matchID uint) error
	SoftDelete(typ model.InteractionType, subscriberID, matchID uint) error
	ListBySubscriber(typ model.InteractionType, subscriberID uint) ([]model.InteractionRow, error)
	MatchStats(matchID uint) (*model.MatchStats, error)
	SubscriberStats(subscriberID uint) (*model.SubscriberStats, error)
	Totals() (map[model.InteractionType]int64, error)
	TopByType(typ model.InteractionType, limit int) ([]model.TopMatch, error)
}

// TopResult 热榜结果：三类账本中活跃总量最高的一类
type TopResult struct {
	Type model.InteractionType `json:"type"`
	Rows []model.TopMatch      `json:"rows"`
}

// Service 互动账本服务
type Service struct {
	store Store
}

// NewService 创建互动账本服务
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add 幂等添加：重复添加复活软删除行，不报错不产生重复活跃行
func (s *Service) Add(typ model.InteractionType, subscriberID, matchID uint) error {
	return s.store.Upsert(typ, subscriberID, matchID)
}

// Remove 软删除，没有活跃行时上抛not-found
func (s *Service) Remove(typ model.InteractionType, subscriberID, matchID uint) error {
	return s.store.SoftDelete(typ, subscriberID, matchID)
}

// List 用户的活跃互动行
func (s *Service) List(typ model.InteractionType, subscriberID uint) ([]model.InteractionRow, error) {
	return s.store.ListBySubscriber(typ, subscriberID)
}

// MatchStats 单场比赛互动统计
func (s *Service) MatchStats(matchID uint) (*model.MatchStats, error) {
	return s.store.MatchStats(matchID)
}

// SubscriberStats 单个用户互动统计
func (s *Service) SubscriberStats(subscriberID uint) (*model.SubscriberStats, error) {
	return s.store.SubscriberStats(subscriberID)
}

// Top 选出活跃总量最高的账本类型并返回其热榜，
// 三个账本都为空时返回空结果而不是报错
func (s *Service) Top() (*TopResult, error) {
	totals, err := s.store.Totals()
	if err != nil {
		return nil, err
	}

	// 按固定顺序遍历，同分时saved优先
	order := []model.InteractionType{
		model.InteractionSaved,
		model.InteractionLoved,
		model.InteractionFavorite,
	}
	var (
		winner model.InteractionType
		best   int64
	)
	for _, typ := range order {
		if totals[typ] > best {
			best = totals[typ]
			winner = typ
		}
	}

	if best == 0 {
		return &TopResult{Rows: []model.TopMatch{}}, nil
	}

	rows, err := s.store.TopByType(winner, topLimit)
	if err != nil {
		return nil, err
	}
	return &TopResult{Type: winner, Rows: rows}, nil
}
