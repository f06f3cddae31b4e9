package subscription

import (
	"errors"
	"testing"
	"time"

	"GoalArena/pkg/database"
	"GoalArena/pkg/model"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

// stubSubscribers 内存版订阅用户存取
type stubSubscribers struct {
	byMsisdn map[string]*model.Subscriber
	expired  []string
	updated  map[string]model.SubscriberStatus
	renewed  []string
}

func newStubSubscribers() *stubSubscribers {
	return &stubSubscribers{
		byMsisdn: map[string]*model.Subscriber{},
		updated:  map[string]model.SubscriberStatus{},
	}
}

func (s *stubSubscribers) GetByMsisdn(m string) (*model.Subscriber, error) {
	sub, ok := s.byMsisdn[m]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (s *stubSubscribers) MarkExpired(m string) error {
	s.expired = append(s.expired, m)
	if sub, ok := s.byMsisdn[m]; ok {
		sub.Status = model.SubscriberStatusExpired
	}
	return nil
}

func (s *stubSubscribers) UpdateStatus(m string, status model.SubscriberStatus) error {
	s.updated[m] = status
	if sub, ok := s.byMsisdn[m]; ok {
		sub.Status = status
	}
	return nil
}

func (s *stubSubscribers) Renew(m string, amount float64, start, end time.Time) (*model.Subscriber, error) {
	s.renewed = append(s.renewed, m)
	sub, ok := s.byMsisdn[m]
	if !ok {
		sub = &model.Subscriber{ID: uint(len(s.byMsisdn) + 1), Msisdn: m}
		s.byMsisdn[m] = sub
	}
	sub.Status = model.SubscriberStatusActive
	sub.StartTime = &start
	sub.EndTime = &end
	sub.Amount = amount
	copied := *sub
	return &copied, nil
}

// stubSessions 内存版会话存取
type stubSessions struct {
	byToken map[string]*model.Session
	minted  int
	deleted []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{byToken: map[string]*model.Session{}}
}

func (s *stubSessions) Create(subscriberID uint, expiresAt time.Time) (string, error) {
	s.minted++
	token := "token-" + string(rune('a'+s.minted-1))
	s.byToken[token] = &model.Session{Token: token, SubscriberID: subscriberID, ExpiresAt: expiresAt}
	return token, nil
}

func (s *stubSessions) GetWithSubscriber(token string) (*model.Session, error) {
	session, ok := s.byToken[token]
	if !ok {
		return nil, database.ErrNotFound
	}
	return session, nil
}

func (s *stubSessions) Delete(token string) error {
	s.deleted = append(s.deleted, token)
	delete(s.byToken, token)
	return nil
}

// stubWebhooks 记录审计事件
type stubWebhooks struct {
	events []*model.WebhookEvent
}

func (s *stubWebhooks) Append(event *model.WebhookEvent) error {
	s.events = append(s.events, event)
	return nil
}

// stubLinks 固定订阅链接
type stubLinks struct {
	links map[string]string
}

func (s *stubLinks) GetByCarrier(carrier string) (string, error) {
	return s.links[carrier], nil
}

// stubEvents 记录发布的事件主题
type stubEvents struct {
	subjects []string
}

func (s *stubEvents) Publish(subject string, data interface{}) error {
	s.subjects = append(s.subjects, subject)
	return nil
}

type fixture struct {
	svc         *Service
	subscribers *stubSubscribers
	sessions    *stubSessions
	webhooks    *stubWebhooks
	events      *stubEvents
}

func newFixture() *fixture {
	subscribers := newStubSubscribers()
	sessions := newStubSessions()
	webhooks := &stubWebhooks{}
	events := &stubEvents{}
	links := &stubLinks{links: map[string]string{"MTN": "https://mtn.example/subscribe"}}

	svc := NewService(subscribers, sessions, webhooks, links, events)
	svc.now = func() time.Time { return testNow }

	return &fixture{svc: svc, subscribers: subscribers, sessions: sessions, webhooks: webhooks, events: events}
}

func (f *fixture) seedActive(m string, endIn time.Duration) {
	start := testNow.Add(-time.Hour)
	end := testNow.Add(endIn)
	f.subscribers.byMsisdn[m] = &model.Subscriber{
		ID: 1, Msisdn: m, Status: model.SubscriberStatusActive,
		StartTime: &start, EndTime: &end,
	}
}

func TestCheckAndExpireOverdue(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", -time.Minute)

	sub, _ := f.subscribers.GetByMsisdn("2348031234567")
	status, err := f.svc.CheckAndExpire(sub)
	if err != nil {
		t.Fatalf("CheckAndExpire: %v", err)
	}
	if status != model.SubscriberStatusExpired {
		t.Errorf("status = %q, want expired", status)
	}
	if len(f.subscribers.expired) != 1 {
		t.Error("expiry not persisted")
	}
	if len(f.events.subjects) != 1 || f.events.subjects[0] != "subscription.expired" {
		t.Errorf("events = %v", f.events.subjects)
	}
}

func TestCheckAndExpireStillActive(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", time.Hour)

	sub, _ := f.subscribers.GetByMsisdn("2348031234567")
	status, err := f.svc.CheckAndExpire(sub)
	if err != nil {
		t.Fatalf("CheckAndExpire: %v", err)
	}
	if status != model.SubscriberStatusActive {
		t.Errorf("status = %q, want active", status)
	}
	if len(f.subscribers.expired) != 0 {
		t.Error("active subscription should not be expired")
	}
}

func TestLoginUnknownCarrier(t *testing.T) {
	f := newFixture()
	_, _, err := f.svc.Login("2347991234567")
	if !errors.Is(err, ErrUnknownCarrier) {
		t.Errorf("err = %v, want ErrUnknownCarrier", err)
	}
}

func TestLoginFirstTime(t *testing.T) {
	f := newFixture()

	payload, message, err := f.svc.Login("08031234567")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if message != "Subscription required" {
		t.Errorf("message = %q", message)
	}
	if !payload.IsFirstTime {
		t.Error("first visit should flag is_first_time")
	}
	if payload.Status != model.SubscriberStatusPending {
		t.Errorf("status = %q, want pending", payload.Status)
	}
	if payload.SessionToken != nil {
		t.Error("no session should be minted before subscription")
	}
	if payload.Msisdn != "2348031234567" {
		t.Errorf("msisdn = %q, want normalized form", payload.Msisdn)
	}
	if payload.SubscriptionLink == nil || *payload.SubscriptionLink != "https://mtn.example/subscribe" {
		t.Errorf("subscription link = %v", payload.SubscriptionLink)
	}
}

func TestLoginActiveGrantsSession(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", time.Hour)

	payload, message, err := f.svc.Login("08031234567")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if message != "Access granted" {
		t.Errorf("message = %q", message)
	}
	if payload.SessionToken == nil {
		t.Fatal("active login should mint a session")
	}
	if payload.RemainingSeconds != 3600 {
		t.Errorf("remaining = %d, want 3600", payload.RemainingSeconds)
	}
}

func TestLoginExpiredOnRead(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", -time.Minute)

	payload, message, err := f.svc.Login("08031234567")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if message != "Subscription required" {
		t.Errorf("message = %q", message)
	}
	if payload.Status != model.SubscriberStatusExpired {
		t.Errorf("status = %q, want expired", payload.Status)
	}
	if payload.SessionToken != nil {
		t.Error("expired login should not mint a session")
	}
}

func TestCallbackRenewsAndMintsSession(t *testing.T) {
	f := newFixture()

	payload, message, err := f.svc.Callback("08031234567", "MTN")
	if err != nil {
		t.Fatalf("Callback: %v", err)
	}
	if message != "Subscription verified" {
		t.Errorf("message = %q", message)
	}
	if !payload.IsFirstTime {
		t.Error("unseen msisdn should flag is_first_time")
	}
	if payload.Status != model.SubscriberStatusActive {
		t.Errorf("status = %q, want active", payload.Status)
	}
	if payload.SessionToken == nil {
		t.Error("callback should mint a session")
	}
	if payload.EndTime == nil || !payload.EndTime.Equal(testNow.Add(24*time.Hour)) {
		t.Errorf("end time = %v, want one-day window", payload.EndTime)
	}
	if len(f.events.subjects) != 1 || f.events.subjects[0] != "subscription.renewed" {
		t.Errorf("events = %v", f.events.subjects)
	}
}

func TestCallbackExistingSubscriberNotFirstTime(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", time.Hour)

	payload, _, err := f.svc.Callback("08031234567", "MTN")
	if err != nil {
		t.Fatalf("Callback: %v", err)
	}
	if payload.IsFirstTime {
		t.Error("known msisdn should not flag is_first_time")
	}
}

func TestStatusByTokenValid(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", time.Hour)
	token, _ := f.sessions.Create(1, testNow.Add(time.Hour))
	f.sessions.byToken[token].Subscriber = *f.subscribers.byMsisdn["2348031234567"]

	payload, message, err := f.svc.Status(token, "")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if message != "Session valid" {
		t.Errorf("message = %q", message)
	}
	if payload.RemainingSeconds != 3600 {
		t.Errorf("remaining = %d", payload.RemainingSeconds)
	}
}

func TestStatusByTokenInvalid(t *testing.T) {
	f := newFixture()
	_, _, err := f.svc.Status("nonsense", "")
	if !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("err = %v, want ErrSessionInvalid", err)
	}
}

func TestStatusByTokenExpiredSessionDestroyed(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", time.Hour)
	token, _ := f.sessions.Create(1, testNow.Add(-time.Minute))

	_, _, err := f.svc.Status(token, "")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if len(f.sessions.deleted) != 1 {
		t.Error("expired session should be destroyed")
	}
}

func TestStatusByMsisdnNotFound(t *testing.T) {
	f := newFixture()
	_, _, err := f.svc.Status("", "08031234567")
	if !errors.Is(err, ErrSubscriberNotFound) {
		t.Errorf("err = %v, want ErrSubscriberNotFound", err)
	}
}

func TestStatusByMsisdnActiveMintsToken(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", time.Hour)

	payload, message, err := f.svc.Status("", "08031234567")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if message != "Session valid" {
		t.Errorf("message = %q", message)
	}
	if payload.SessionToken == nil {
		t.Error("polling an active subscriber should mint a token")
	}
}

func TestRemainingSecondsClamped(t *testing.T) {
	f := newFixture()
	past := testNow.Add(-time.Minute)
	if got := f.svc.remainingSeconds(&past); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}
	if got := f.svc.remainingSeconds(nil); got != 0 {
		t.Errorf("remaining for nil = %d, want 0", got)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	f := newFixture()
	if err := f.svc.Logout("never-issued"); err != nil {
		t.Errorf("Logout: %v", err)
	}
}
