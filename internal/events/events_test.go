package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentportal/internal/domain"
)

type fakeRedis struct {
	channel string
	message []byte
	err     error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.message, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

func TestRedisPublisherEncodesEvent(t *testing.T) {
	fake := &fakeRedis{}
	pub := &RedisPublisher{client: fake, channel: Channel}

	rec := &domain.ContentRecord{ID: "r1", Kind: domain.ContentKindVideo, Status: domain.ContentStatusProcessing}
	require.NoError(t, pub.Publish(context.Background(), Event{Event: KindCreated, Item: rec}))

	assert.Equal(t, "contentportal:records", fake.channel)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(fake.message, &decoded))
	assert.Equal(t, "created", decoded["event"])
	item, ok := decoded["item"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "r1", item["id"])
	assert.Equal(t, "video", item["type"])
}

func TestRedisPublisherWrapsFailure(t *testing.T) {
	boom := errors.New("connection refused")
	pub := &RedisPublisher{client: &fakeRedis{err: boom}, channel: Channel}

	err := pub.Publish(context.Background(), Event{Event: KindUpdated})
	assert.ErrorIs(t, err, boom)
}

func TestNopPublisher(t *testing.T) {
	var pub Publisher = Nop{}
	assert.NoError(t, pub.Publish(context.Background(), Event{Event: KindCreated}))
}
