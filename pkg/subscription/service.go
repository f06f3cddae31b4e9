// pkg/subscription/service.go
package subscription

import (
	"errors"
	"log"
	"time"

	"GoalArena/pkg/database"
	"GoalArena/pkg/model"
	"GoalArena/pkg/msisdn"
)

// 续订固定金额与订阅窗口：回调/webhook确认一律重置为1天
const (
	renewalAmount = 100.0
	renewalWindow = 24 * time.Hour
)

// SubscriberStore 订阅用户存取，由database.SubscriberDB实现
type SubscriberStore interface {
	GetByMsisdn(msisdn string) (*model.Subscriber, error)
	MarkExpired(msisdn string) error
	UpdateStatus(msisdn string, status model.SubscriberStatus) error
	Renew(msisdn string, amount float64, start, end time.Time) (*model.Subscriber, error)
}

// SessionStore 会话存取，由database.SessionDB实现
type SessionStore interface {
	Create(subscriberID uint, expiresAt time.Time) (string, error)
	GetWithSubscriber(token string) (*model.Session, error)
	Delete(token string) error
}

// WebhookStore 回调审计日志，由database.WebhookDB实现
type WebhookStore interface {
	Append(event *model.WebhookEvent) error
}

// LinkStore 运营商订阅链接，由database.LinkDB实现
type LinkStore interface {
	GetByCarrier(carrier string) (string, error)
}

// EventPublisher 生命周期事件发布，由messaging.Client实现，可为nil
type EventPublisher interface {
	Publish(subject string, data interface{}) error
}

// AccessPayload 鉴权相关接口的统一返回体
type AccessPayload struct {
	Status           model.SubscriberStatus `json:"status"`
	Msisdn           string                 `json:"msisdn"`
	Carrier          string                 `json:"carrier,omitempty"`
	StartTime        *time.Time             `json:"start_time,omitempty"`
	EndTime          *time.Time             `json:"end_time,omitempty"`
	SessionToken     *string                `json:"session_token"`
	SessionExpiresAt *time.Time             `json:"session_expires_at,omitempty"`
	SubscriptionLink *string                `json:"subscription_link,omitempty"`
	IsFirstTime      bool                   `json:"is_first_time"`
	RemainingSeconds int64                  `json:"remaining_seconds"`
}

// Service 订阅生命周期管理器
type Service struct {
	subscribers SubscriberStore
	sessions    SessionStore
	webhooks    WebhookStore
	links       LinkStore
	events      EventPublisher
	now         func() time.Time
}

// NewService 创建订阅生命周期管理器，events可为nil
func NewService(subscribers SubscriberStore, sessions SessionStore, webhooks WebhookStore, links LinkStore, events EventPublisher) *Service {
	return &Service{
		subscribers: subscribers,
		sessions:    sessions,
		webhooks:    webhooks,
		links:       links,
		events:      events,
		now:         time.Now,
	}
}

// publish 发布生命周期事件，失败只记日志不影响主流程
func (s *Service) publish(event, msisdnValue string) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"event":  event,
		"msisdn": msisdnValue,
		"at":     s.now().UTC(),
	}
	if err := s.events.Publish("subscription."+event, payload); err != nil {
		log.Printf("发布订阅事件 %s 失败: %v", event, err)
	}
}

// CheckAndExpire 按需检查订阅过期：活跃且已越过窗口则落库为expired并返回expired，
// 否则返回存量状态。写操作幂等，读取存量状态前必须先走这里
func (s *Service) CheckAndExpire(subscriber *model.Subscriber) (model.SubscriberStatus, error) {
	if subscriber.Status == model.SubscriberStatusActive &&
		subscriber.EndTime != nil && !s.now().Before(*subscriber.EndTime) {
		if err := s.subscribers.MarkExpired(subscriber.Msisdn); err != nil {
			return "", err
		}
		s.publish("expired", subscriber.Msisdn)
		return model.SubscriberStatusExpired, nil
	}
	return subscriber.Status, nil
}

// CreateSession 签发会话令牌，会话有效期与订阅窗口对齐
func (s *Service) CreateSession(subscriberID uint, endTime time.Time) (string, error) {
	return s.sessions.Create(subscriberID, endTime)
}

// DestroySession 销毁会话，令牌不存在也视为成功
func (s *Service) DestroySession(token string) error {
	return s.sessions.Delete(token)
}

// remainingSeconds 剩余秒数，向下取整且不为负
func (s *Service) remainingSeconds(endTime *time.Time) int64 {
	if endTime == nil {
		return 0
	}
	d := endTime.Sub(s.now())
	if d <= 0 {
		return 0
	}
	return int64(d.Seconds())
}

// subscriptionLink 查运营商订阅链接，查不到返回nil
func (s *Service) subscriptionLink(carrier string) *string {
	link, err := s.links.GetByCarrier(carrier)
	if err != nil {
		log.Printf("查询 %s 订阅链接失败: %v", carrier, err)
		return nil
	}
	if link == "" {
		return nil
	}
	return &link
}

// Login MSISDN登录：活跃用户发令牌，其余返回带订阅链接的引导payload
func (s *Service) Login(rawMsisdn string) (*AccessPayload, string, error) {
	m := msisdn.Normalize(rawMsisdn)
	carrier := msisdn.DetectCarrier(m)
	if carrier == "" {
		return nil, "", ErrUnknownCarrier
	}

	subscriber, err := s.subscribers.GetByMsisdn(m)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// 首次访问，引导去订阅
			payload := &AccessPayload{
				Status:           model.SubscriberStatusPending,
				Msisdn:           m,
				Carrier:          carrier,
				SubscriptionLink: s.subscriptionLink(carrier),
				IsFirstTime:      true,
			}
			return payload, "Subscription required", nil
		}
		return nil, "", err
	}

	status, err := s.CheckAndExpire(subscriber)
	if err != nil {
		return nil, "", err
	}

	if status != model.SubscriberStatusActive {
		payload := &AccessPayload{
			Status:           status,
			Msisdn:           m,
			Carrier:          carrier,
			SubscriptionLink: s.subscriptionLink(carrier),
			IsFirstTime:      false,
		}
		return payload, "Subscription required", nil
	}

	token, err := s.CreateSession(subscriber.ID, *subscriber.EndTime)
	if err != nil {
		return nil, "", err
	}

	payload := &AccessPayload{
		Status:           status,
		Msisdn:           subscriber.Msisdn,
		StartTime:        subscriber.StartTime,
		EndTime:          subscriber.EndTime,
		SessionToken:     &token,
		SessionExpiresAt: subscriber.EndTime,
		IsFirstTime:      false,
		RemainingSeconds: s.remainingSeconds(subscriber.EndTime),
	}
	return payload, "Access granted", nil
}

// Callback 运营商支付完成后的跳转入口：一律视为付费成功，
// 重置1天订阅窗口并签发会话
func (s *Service) Callback(rawMsisdn, carrier string) (*AccessPayload, string, error) {
	m := msisdn.Normalize(rawMsisdn)

	firstTime := false
	if _, err := s.subscribers.GetByMsisdn(m); err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return nil, "", err
		}
		firstTime = true
	}

	now := s.now()
	subscriber, err := s.subscribers.Renew(m, renewalAmount, now, now.Add(renewalWindow))
	if err != nil {
		return nil, "", err
	}
	s.publish("renewed", m)

	token, err := s.CreateSession(subscriber.ID, *subscriber.EndTime)
	if err != nil {
		return nil, "", err
	}

	payload := &AccessPayload{
		Status:           subscriber.Status,
		Msisdn:           subscriber.Msisdn,
		Carrier:          carrier,
		StartTime:        subscriber.StartTime,
		EndTime:          subscriber.EndTime,
		SessionToken:     &token,
		SessionExpiresAt: subscriber.EndTime,
		IsFirstTime:      firstTime,
		RemainingSeconds: s.remainingSeconds(subscriber.EndTime),
	}
	return payload, "Subscription verified", nil
}

// Status 双入口状态查询：带令牌走会话解析，否则按MSISDN轮询，
// 轮询模式下活跃用户顺带补发令牌
func (s *Service) Status(token, rawMsisdn string) (*AccessPayload, string, error) {
	if token != "" {
		return s.statusByToken(token)
	}
	return s.statusByMsisdn(rawMsisdn)
}

func (s *Service) statusByToken(token string) (*AccessPayload, string, error) {
	session, err := s.sessions.GetWithSubscriber(token)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, "", ErrSessionInvalid
		}
		return nil, "", err
	}

	// 会话过期即销毁并拒绝
	if !s.now().Before(session.ExpiresAt) {
		if err := s.DestroySession(token); err != nil {
			log.Printf("销毁过期会话失败: %v", err)
		}
		return nil, "", ErrSessionExpired
	}

	subscriber := &session.Subscriber
	status, err := s.CheckAndExpire(subscriber)
	if err != nil {
		return nil, "", err
	}

	payload := &AccessPayload{
		Status:           status,
		Msisdn:           subscriber.Msisdn,
		StartTime:        subscriber.StartTime,
		EndTime:          subscriber.EndTime,
		SessionToken:     &session.Token,
		SessionExpiresAt: &session.ExpiresAt,
		IsFirstTime:      false,
	}
	message := "Subscription expired"
	if status == model.SubscriberStatusActive {
		payload.RemainingSeconds = s.remainingSeconds(subscriber.EndTime)
		message = "Session valid"
	}
	return payload, message, nil
}

func (s *Service) statusByMsisdn(rawMsisdn string) (*AccessPayload, string, error) {
	m := msisdn.Normalize(rawMsisdn)

	subscriber, err := s.subscribers.GetByMsisdn(m)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, "", ErrSubscriberNotFound
		}
		return nil, "", err
	}

	status, err := s.CheckAndExpire(subscriber)
	if err != nil {
		return nil, "", err
	}

	payload := &AccessPayload{
		Status:      status,
		Msisdn:      subscriber.Msisdn,
		StartTime:   subscriber.StartTime,
		EndTime:     subscriber.EndTime,
		IsFirstTime: false,
	}

	message := "Subscription expired"
	if status == model.SubscriberStatusActive {
		// 轮询模式下顺带补发令牌，省掉一次login往返
		token, err := s.CreateSession(subscriber.ID, *subscriber.EndTime)
		if err != nil {
			return nil, "", err
		}
		payload.SessionToken = &token
		payload.SessionExpiresAt = subscriber.EndTime
		payload.RemainingSeconds = s.remainingSeconds(subscriber.EndTime)
		message = "Session valid"
	}
	return payload, message, nil
}

// Logout 登出，幂等
func (s *Service) Logout(token string) error {
	return s.DestroySession(token)
}
