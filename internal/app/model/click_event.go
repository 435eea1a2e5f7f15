package model

import "time"

// ClickEvent represents a single resolution of a short link. Events flow
// through NATS JetStream and land in Postgres for analytics.
type ClickEvent struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Slug      string    `json:"slug" gorm:"size:64;index;not null"`
	IP        string    `json:"ip" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"type:text"`
	Referer   string    `json:"referer" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

const (
	ClickStreamName     = "CLICKS"
	ClickStreamSubject  = "clicks.events"
	ClickConsumerName   = "click-logger"
	ClickStreamMaxBytes = 1024 * 1024 * 100 // 100MB
)
