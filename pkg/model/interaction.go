// pkg/model/interaction.go
package model

import "time"

// InteractionType 互动账本类型
type InteractionType string

const (
	InteractionSaved    InteractionType = "saved"
	InteractionLoved    InteractionType = "loved"
	InteractionFavorite InteractionType = "favorite"
)

// SavedMatch 稍后观看账本，(subscriber_id, match_id) 唯一，软删除
type SavedMatch struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SubscriberID uint       `gorm:"uniqueIndex:uniq_saved_pair;not null" json:"subscriber_id"`
	MatchID      uint       `gorm:"uniqueIndex:uniq_saved_pair;not null;index" json:"match_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `gorm:"index" json:"deleted_at"`
}

// LovedMatch 喜爱账本
type LovedMatch struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SubscriberID uint       `gorm:"uniqueIndex:uniq_loved_pair;not null" json:"subscriber_id"`
	MatchID      uint       `gorm:"uniqueIndex:uniq_loved_pair;not null;index" json:"match_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `gorm:"index" json:"deleted_at"`
}

// FavoriteMatch 收藏账本
type FavoriteMatch struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SubscriberID uint       `gorm:"uniqueIndex:uniq_favorite_pair;not null" json:"subscriber_id"`
	MatchID      uint       `gorm:"uniqueIndex:uniq_favorite_pair;not null;index" json:"match_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `gorm:"index" json:"deleted_at"`
}

// InteractionRow 任意一类账本的活跃行
type InteractionRow struct {
	ID           uint      `json:"id"`
	SubscriberID uint      `json:"subscriber_id"`
	MatchID      uint      `json:"match_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MatchStats 单场比赛的互动统计
type MatchStats struct {
	SavedCount    int64 `json:"saved_count"`
	LovedCount    int64 `json:"loved_count"`
	FavoriteCount int64 `json:"favorite_count"`
}

// SubscriberStats 单个用户的互动统计
type SubscriberStats struct {
	SavedCount    int64 `json:"saved_count"`
	LovedCount    int64 `json:"loved_count"`
	FavoriteCount int64 `json:"favorite_count"`
}

// TopMatch 互动热榜行
type TopMatch struct {
	MatchID   uint      `json:"match_id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Total     int64     `json:"total"`
	MatchDate time.Time `json:"match_date"`
}
