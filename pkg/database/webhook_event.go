// pkg/database/webhook_event.go
package database

import (
	"fmt"

	"GoalArena/pkg/model"
)

type WebhookDB struct {
	m *MySQL
}

func (m *MySQL) Webhook() *WebhookDB {
	return &WebhookDB{m: m}
}

// Append 追加一条回调审计记录
func (w *WebhookDB) Append(event *model.WebhookEvent) error {
	err := w.m.withRetry(func() error {
		return w.m.db.Create(event).Error
	})
	if err != nil {
		return fmt.Errorf("写入回调审计日志失败: %w", err)
	}
	return nil
}
