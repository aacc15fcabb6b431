// Package events broadcasts content record changes to interested listeners.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"contentportal/internal/domain"
)

// Channel is the Redis pub/sub channel record changes are published on.
const Channel = "contentportal:records"

// Kind names the change that happened to a record.
type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
)

// Event is the message published for each record change.
type Event struct {
	Event Kind                  `json:"event"`
	Item  *domain.ContentRecord `json:"item"`
}

// Publisher delivers record change events.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type redisPublishClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher publishes events as JSON on a Redis channel.
type RedisPublisher struct {
	client  redisPublishClient
	channel string
}

// NewRedisPublisher publishes on Channel through client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, channel: Channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events: encode: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("events: publish: %w", err)
	}
	return nil
}

// Nop discards every event. It is used when Redis is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
