// pkg/subscription/webhook.go
package subscription

import (
	"log"
	"strings"

	"GoalArena/pkg/model"
	"GoalArena/pkg/msisdn"
)

// webhookVocabulary 运营商回调状态到内部状态的固定词表
var webhookVocabulary = map[string]model.SubscriberStatus{
	"active":       model.SubscriberStatusActive,
	"activated":    model.SubscriberStatusActive,
	"subscribed":   model.SubscriberStatusActive,
	"renewed":      model.SubscriberStatusActive,
	"success":      model.SubscriberStatusActive,
	"expired":      model.SubscriberStatusExpired,
	"terminated":   model.SubscriberStatusExpired,
	"deactivated":  model.SubscriberStatusExpired,
	"inactive":     model.SubscriberStatusExpired,
	"pending":      model.SubscriberStatusPending,
	"processing":   model.SubscriberStatusPending,
	"cancelled":    model.SubscriberStatusCancelled,
	"canceled":     model.SubscriberStatusCancelled,
	"unsubscribed": model.SubscriberStatusCancelled,
}

// MapWebhookStatus 映射运营商原始状态串，未识别返回false
func MapWebhookStatus(raw string) (model.SubscriberStatus, bool) {
	status, ok := webhookVocabulary[strings.ToLower(strings.TrimSpace(raw))]
	return status, ok
}

// Webhook 处理运营商状态回调。审计日志先行（畸形输入也落盘）；
// 映射为active触发与callback相同的续订，其余映射只覆盖状态不动窗口，
// 未识别的状态只留痕不改数据
func (s *Service) Webhook(rawMsisdn, rawStatus, rawPayload string) error {
	m := msisdn.Normalize(rawMsisdn)
	mapped, recognized := MapWebhookStatus(rawStatus)

	event := &model.WebhookEvent{
		Msisdn:     m,
		RawStatus:  rawStatus,
		RawPayload: rawPayload,
	}
	if recognized {
		normalized := string(mapped)
		event.NormalizedStatus = &normalized
	}
	if err := s.webhooks.Append(event); err != nil {
		// 审计失败不阻断后续处理，留给内部日志
		log.Printf("写入回调审计失败: %v", err)
	}

	if m == "" || !recognized {
		return nil
	}

	if mapped == model.SubscriberStatusActive {
		now := s.now()
		if _, err := s.subscribers.Renew(m, renewalAmount, now, now.Add(renewalWindow)); err != nil {
			return err
		}
		s.publish("renewed", m)
		return nil
	}

	if err := s.subscribers.UpdateStatus(m, mapped); err != nil {
		return err
	}
	s.publish(string(mapped), m)
	return nil
}
