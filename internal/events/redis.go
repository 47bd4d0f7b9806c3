package events

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"sitrack/internal/logging"
)

// redisPublishClient is the part of *redis.Client used for publishing.
type redisPublishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes events on a Redis pub/sub channel.
type RedisPublisher struct {
	client  redisPublishClient
	channel string
}

// NewRedisPublisher creates a publisher for channel.
func NewRedisPublisher(client redisPublishClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	b, err := e.Encode()
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, b).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.channel, err)
	}
	return nil
}

// RedisSubscriber relays events from a Redis channel to a local sink,
// so every API instance sees changes made through the others.
type RedisSubscriber struct {
	client  *redis.Client
	channel string
	log     *logging.Logger
}

// NewRedisSubscriber creates a subscriber on channel.
func NewRedisSubscriber(client *redis.Client, channel string, log *logging.Logger) *RedisSubscriber {
	return &RedisSubscriber{client: client, channel: channel, log: log}
}

// Run forwards messages to sink until ctx is done.
func (s *RedisSubscriber) Run(ctx context.Context, sink Publisher) error {
	ps := s.client.Subscribe(ctx, s.channel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe %s: %w", s.channel, err)
	}
	s.log.Info("events_subscribed", map[string]any{"channel": s.channel})

	relay(ctx, ps.Channel(), sink, s.log)
	return ctx.Err()
}

func relay(ctx context.Context, msgs <-chan *redis.Message, sink Publisher, log *logging.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			e, err := Decode([]byte(msg.Payload))
			if err != nil {
				log.Warn("events_decode_failed", map[string]any{"channel": msg.Channel, "error": err.Error()})
				continue
			}
			if err := sink.Publish(ctx, e); err != nil {
				log.Warn("events_relay_failed", map[string]any{"table": string(e.Table), "id": e.ID, "error": err.Error()})
			}
		}
	}
}
