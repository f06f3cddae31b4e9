// pkg/database/session.go
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"GoalArena/pkg/model"
)

type SessionDB struct {
	m *MySQL
}

func (m *MySQL) Session() *SessionDB {
	return &SessionDB{m: m}
}

// Create 新建会话，令牌由模型钩子生成
func (s *SessionDB) Create(subscriberID uint, expiresAt time.Time) (string, error) {
	session := model.Session{
		SubscriberID: subscriberID,
		ExpiresAt:    expiresAt,
	}
	err := s.m.withRetry(func() error {
		return s.m.db.Create(&session).Error
	})
	if err != nil {
		return "", fmt.Errorf("创建会话失败: %w", err)
	}
	return session.Token, nil
}

// GetWithSubscriber 按令牌取会话及所属用户
func (s *SessionDB) GetWithSubscriber(token string) (*model.Session, error) {
	var session model.Session
	err := s.m.withRetry(func() error {
		return s.m.db.Preload("Subscriber").First(&session, "token = ?", token).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询会话失败: %w", err)
	}
	return &session, nil
}

// Delete 删除会话，令牌不存在也视为成功
func (s *SessionDB) Delete(token string) error {
	err := s.m.withRetry(func() error {
		return s.m.db.Delete(&model.Session{}, "token = ?", token).Error
	})
	if err != nil {
		return fmt.Errorf("删除会话失败: %w", err)
	}
	return nil
}

// PurgeExpired 清理已过期会话，返回清理条数
func (s *SessionDB) PurgeExpired(now time.Time) (int64, error) {
	var affected int64
	err := s.m.withRetry(func() error {
		result := s.m.db.Delete(&model.Session{}, "expires_at <= ?", now)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("清理过期会话失败: %w", err)
	}
	return affected, nil
}
