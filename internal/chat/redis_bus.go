package chat

import (
	"context"
	"encoding/json"

	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"skillswap/internal/app"
)

// BusMessage carries one chat event across instances. Origin lets the
// publishing instance skip its own echo, since it already delivered locally.
type BusMessage struct {
	Origin string      `json:"origin"`
	RoomID string      `json:"roomId"`
	Event  ServerEvent `json:"event"`
}

type RedisBus struct {
	rdb    *redis.Client
	log    *slog.Logger
	origin string
}

// NewRedisBus connects to redis and verifies connectivity
func NewRedisBus(ctx context.Context, cfg app.Config, log *slog.Logger) (*RedisBus, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisBus{rdb: rdb, log: log, origin: uuid.New().String()}, nil
}

// Publish sends an event to the redis channel for a room
func (b *RedisBus) Publish(ctx context.Context, roomID string, ev ServerEvent) error {
	raw, _ := json.Marshal(BusMessage{Origin: b.origin, RoomID: roomID, Event: ev})
	return b.rdb.Publish(ctx, channel(roomID), raw).Err()
}

// Subscribe listens to all room channels and invokes fn for each message
// published by another instance
func (b *RedisBus) Subscribe(ctx context.Context, fn func(BusMessage)) {
	pubsub := b.rdb.PSubscribe(ctx, channel("*"))
	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			_ = pubsub.Close()
			return
		case msg := <-ch:
			var bm BusMessage
			_ = json.Unmarshal([]byte(msg.Payload), &bm)
			if bm.RoomID != "" && bm.Origin != b.origin {
				fn(bm)
			}
		}
	}
}

// Close shuts down the redis connection
func (b *RedisBus) Close() { _ = b.rdb.Close() }

// channel namespacing for room pub/sub
func channel(roomID string) string { return "room:" + roomID }
