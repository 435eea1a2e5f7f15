package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/reddaiahsirigireddy/shortt/internal/app/model"
)

// ClickPublisher publishes click events to NATS JetStream. Publishing is
// fire-and-forget; a lost click never blocks or fails a redirect.
type ClickPublisher struct {
	js nats.JetStreamContext
}

// NewClickPublisher creates a new click event publisher.
func NewClickPublisher(js nats.JetStreamContext) *ClickPublisher {
	return &ClickPublisher{js: js}
}

// Publish emits one click event for the resolved slug.
func (p *ClickPublisher) Publish(slug, ip, userAgent, referer string) error {
	event := model.ClickEvent{
		ID:        uuid.New().String(),
		Slug:      slug,
		IP:        ip,
		UserAgent: userAgent,
		Referer:   referer,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(model.ClickStreamSubject, data)
	return err
}
