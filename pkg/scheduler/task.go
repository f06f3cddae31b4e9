// pkg/scheduler/task.go
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SubscriberSweeper 批量过期到期用户，由database.SubscriberDB实现
type SubscriberSweeper interface {
	ExpireOverdue(now time.Time) ([]string, error)
}

// SessionPurger 清理过期会话，由database.SessionDB实现
type SessionPurger interface {
	PurgeExpired(now time.Time) (int64, error)
}

// EventPublisher 生命周期事件发布，可为nil
type EventPublisher interface {
	Publish(subject string, data interface{}) error
}

// Scheduler 后台任务调度器
type Scheduler struct {
	cron        *cron.Cron
	subscribers SubscriberSweeper
	sessions    SessionPurger
	events      EventPublisher
}

// NewScheduler 创建任务调度器
func NewScheduler(subscribers SubscriberSweeper, sessions SessionPurger, events EventPublisher) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		subscribers: subscribers,
		sessions:    sessions,
		events:      events,
	}
}

// Start 启动调度器
func (s *Scheduler) Start() {
	// 每分钟过期超出订阅窗口的活跃用户
	s.cron.AddFunc("@every 1m", s.sweepSubscriptions)

	// 每小时清理已过期会话
	s.cron.AddFunc("@every 1h", s.purgeSessions)

	s.cron.Start()
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// sweepSubscriptions 订阅过期扫描，与在线CheckAndExpire的写语义一致（幂等）
func (s *Scheduler) sweepSubscriptions() {
	msisdns, err := s.subscribers.ExpireOverdue(time.Now())
	if err != nil {
		log.Printf("订阅过期扫描失败: %v", err)
		return
	}
	if len(msisdns) == 0 {
		return
	}

	log.Printf("已过期 %d 个订阅", len(msisdns))
	if s.events == nil {
		return
	}
	for _, m := range msisdns {
		payload := map[string]interface{}{
			"event":  "expired",
			"msisdn": m,
			"at":     time.Now().UTC(),
		}
		if err := s.events.Publish("subscription.expired", payload); err != nil {
			log.Printf("发布过期事件失败: %v", err)
		}
	}
}

// purgeSessions 过期会话清理
func (s *Scheduler) purgeSessions() {
	purged, err := s.sessions.PurgeExpired(time.Now())
	if err != nil {
		log.Printf("清理过期会话失败: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("已清理 %d 个过期会话", purged)
	}
}
