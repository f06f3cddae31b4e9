// pkg/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session 会话令牌，过期时间与订阅周期对齐
type Session struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Token        string    `gorm:"uniqueIndex;size:64;not null" json:"token"`
	SubscriberID uint      `gorm:"not null;index" json:"subscriber_id"`
	ExpiresAt    time.Time `gorm:"index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`

	Subscriber Subscriber `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.Token == "" {
		s.Token = uuid.New().String()
	}
	return nil
}
