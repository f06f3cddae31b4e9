// pkg/model/webhook_event.go
package model

import "time"

// WebhookEvent 运营商回调审计日志，只追加不修改
type WebhookEvent struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Msisdn           string    `gorm:"size:20;index" json:"msisdn"`
	RawStatus        string    `gorm:"size:64" json:"raw_status"`
	NormalizedStatus *string   `gorm:"size:20" json:"normalized_status"`
	RawPayload       string    `gorm:"type:text" json:"raw_payload"`
	ReceivedAt       time.Time `gorm:"autoCreateTime;index" json:"received_at"`
}
