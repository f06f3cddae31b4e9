// pkg/model/subscriber.go
package model

import (
	"time"
)

type SubscriberStatus string

const (
	SubscriberStatusPending   SubscriberStatus = "pending"
	SubscriberStatusActive    SubscriberStatus = "active"
	SubscriberStatusExpired   SubscriberStatus = "expired"
	SubscriberStatusCancelled SubscriberStatus = "cancelled"
)

// Subscriber 订阅用户，按MSISDN唯一，只做状态流转不做物理删除
type Subscriber struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Msisdn    string           `gorm:"uniqueIndex;size:20;not null" json:"msisdn"`
	Status    SubscriberStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	StartTime *time.Time       `json:"start_time"`
	EndTime   *time.Time       `json:"end_time"`
	Amount    float64          `json:"amount"`
	UpdatedAt time.Time        `json:"updated_at"`

	// 关联关系
	Sessions []Session `gorm:"foreignKey:SubscriberID" json:"sessions,omitempty"`
}

// SubscriptionLink 运营商对应的付费订阅链接
type SubscriptionLink struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Carrier string `gorm:"uniqueIndex;size:20;not null" json:"carrier"`
	Link    string `gorm:"size:512" json:"link"`
}
