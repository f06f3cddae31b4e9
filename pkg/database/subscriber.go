// pkg/database/subscriber.go
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"GoalArena/pkg/model"
)

type SubscriberDB struct {
	m *MySQL
}

func (m *MySQL) Subscriber() *SubscriberDB {
	return &SubscriberDB{m: m}
}

func (s *SubscriberDB) GetByMsisdn(msisdn string) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	err := s.m.withRetry(func() error {
		return s.m.db.First(&subscriber, "msisdn = ?", msisdn).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询订阅用户失败: %w", err)
	}
	return &subscriber, nil
}

// MarkExpired 将用户标记为过期，幂等写
func (s *SubscriberDB) MarkExpired(msisdn string) error {
	err := s.m.withRetry(func() error {
		return s.m.db.Model(&model.Subscriber{}).
			Where("msisdn = ?", msisdn).
			Updates(map[string]interface{}{
				"status":     model.SubscriberStatusExpired,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return fmt.Errorf("标记订阅过期失败: %w", err)
	}
	return nil
}

// UpdateStatus 只覆盖状态，不动订阅窗口
func (s *SubscriberDB) UpdateStatus(msisdn string, status model.SubscriberStatus) error {
	err := s.m.withRetry(func() error {
		return s.m.db.Model(&model.Subscriber{}).
			Where("msisdn = ?", msisdn).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return fmt.Errorf("更新订阅状态失败: %w", err)
	}
	return nil
}

// Renew 续订，无论当前状态一律拉回active并重置订阅窗口
func (s *SubscriberDB) Renew(msisdn string, amount float64, start, end time.Time) (*model.Subscriber, error) {
	err := s.m.withRetry(func() error {
		return s.m.db.Exec(`
			INSERT INTO subscribers (msisdn, status, start_time, end_time, amount, updated_at)
			VALUES (?, 'active', ?, ?, ?, NOW())
			ON DUPLICATE KEY UPDATE
				status = 'active', start_time = VALUES(start_time),
				end_time = VALUES(end_time), amount = VALUES(amount), updated_at = NOW()
		`, msisdn, start, end, amount).Error
	})
	if err != nil {
		return nil, fmt.Errorf("续订用户失败: %w", err)
	}
	return s.GetByMsisdn(msisdn)
}

// ExpireOverdue 批量过期已超出窗口的活跃用户，返回受影响的MSISDN
func (s *SubscriberDB) ExpireOverdue(now time.Time) ([]string, error) {
	var msisdns []string
	err := s.m.withRetry(func() error {
		return s.m.db.Model(&model.Subscriber{}).
			Where("status = ? AND end_time <= ?", model.SubscriberStatusActive, now).
			Pluck("msisdn", &msisdns).Error
	})
	if err != nil {
		return nil, fmt.Errorf("查询到期用户失败: %w", err)
	}
	if len(msisdns) == 0 {
		return nil, nil
	}

	err = s.m.withRetry(func() error {
		return s.m.db.Model(&model.Subscriber{}).
			Where("msisdn IN ? AND status = ?", msisdns, model.SubscriberStatusActive).
			Updates(map[string]interface{}{
				"status":     model.SubscriberStatusExpired,
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("批量过期用户失败: %w", err)
	}
	return msisdns, nil
}

type LinkDB struct {
	m *MySQL
}

func (m *MySQL) Link() *LinkDB {
	return &LinkDB{m: m}
}

// GetByCarrier 查询运营商订阅链接，没有配置时返回空串
func (l *LinkDB) GetByCarrier(carrier string) (string, error) {
	var link model.SubscriptionLink
	err := l.m.withRetry(func() error {
		return l.m.db.First(&link, "carrier = ?", carrier).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("查询订阅链接失败: %w", err)
	}
	return link.Link, nil
}
