package subscription

import (
	"testing"
	"time"

	"GoalArena/pkg/model"
)

func TestMapWebhookStatus(t *testing.T) {
	cases := []struct {
		raw        string
		want       model.SubscriberStatus
		recognized bool
	}{
		{"active", model.SubscriberStatusActive, true},
		{"ACTIVATED", model.SubscriberStatusActive, true},
		{" renewed ", model.SubscriberStatusActive, true},
		{"success", model.SubscriberStatusActive, true},
		{"terminated", model.SubscriberStatusExpired, true},
		{"deactivated", model.SubscriberStatusExpired, true},
		{"Inactive", model.SubscriberStatusExpired, true},
		{"processing", model.SubscriberStatusPending, true},
		{"canceled", model.SubscriberStatusCancelled, true},
		{"unsubscribed", model.SubscriberStatusCancelled, true},
		{"bogus", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := MapWebhookStatus(tc.raw)
		if ok != tc.recognized {
			t.Errorf("MapWebhookStatus(%q) recognized = %v, want %v", tc.raw, ok, tc.recognized)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("MapWebhookStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestWebhookActiveRenews(t *testing.T) {
	f := newFixture()

	err := f.svc.Webhook("08031234567", "renewed", `{"msisdn":"08031234567","status":"renewed"}`)
	if err != nil {
		t.Fatalf("Webhook: %v", err)
	}

	if len(f.webhooks.events) != 1 {
		t.Fatal("audit event not appended")
	}
	event := f.webhooks.events[0]
	if event.Msisdn != "2348031234567" {
		t.Errorf("audit msisdn = %q, want normalized", event.Msisdn)
	}
	if event.NormalizedStatus == nil || *event.NormalizedStatus != string(model.SubscriberStatusActive) {
		t.Errorf("normalized status = %v", event.NormalizedStatus)
	}

	if len(f.subscribers.renewed) != 1 {
		t.Error("active webhook should renew subscription")
	}
	sub := f.subscribers.byMsisdn["2348031234567"]
	if sub == nil || sub.EndTime == nil || !sub.EndTime.Equal(testNow.Add(24*time.Hour)) {
		t.Errorf("renewal window wrong: %+v", sub)
	}
	if len(f.events.subjects) != 1 || f.events.subjects[0] != "subscription.renewed" {
		t.Errorf("events = %v", f.events.subjects)
	}
}

func TestWebhookTerminatedMarksExpired(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", time.Hour)

	if err := f.svc.Webhook("08031234567", "terminated", "{}"); err != nil {
		t.Fatalf("Webhook: %v", err)
	}

	if f.subscribers.updated["2348031234567"] != model.SubscriberStatusExpired {
		t.Error("terminated webhook should set status to expired")
	}
	// 状态覆盖不触发续订
	if len(f.subscribers.renewed) != 0 {
		t.Error("non-active webhook must not renew")
	}
	if len(f.events.subjects) != 1 || f.events.subjects[0] != "subscription.expired" {
		t.Errorf("events = %v", f.events.subjects)
	}
}

func TestWebhookUnrecognizedAuditOnly(t *testing.T) {
	f := newFixture()
	f.seedActive("2348031234567", time.Hour)

	if err := f.svc.Webhook("08031234567", "bogus", "{}"); err != nil {
		t.Fatalf("Webhook: %v", err)
	}

	if len(f.webhooks.events) != 1 {
		t.Fatal("unrecognized status must still be audited")
	}
	if f.webhooks.events[0].NormalizedStatus != nil {
		t.Error("unrecognized status should have nil normalized column")
	}
	if len(f.subscribers.renewed) != 0 || len(f.subscribers.updated) != 0 {
		t.Error("unrecognized status must not mutate subscriber")
	}
	if len(f.events.subjects) != 0 {
		t.Errorf("no lifecycle event expected, got %v", f.events.subjects)
	}
}

func TestWebhookEmptyMsisdnAuditOnly(t *testing.T) {
	f := newFixture()

	if err := f.svc.Webhook("", "active", "{}"); err != nil {
		t.Fatalf("Webhook: %v", err)
	}
	if len(f.webhooks.events) != 1 {
		t.Fatal("malformed payload must still be audited")
	}
	if len(f.subscribers.renewed) != 0 {
		t.Error("empty msisdn must not mutate subscriber")
	}
}
