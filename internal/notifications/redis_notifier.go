package notifications

import (
	"context"
	"encoding/json"

	"github.com/redis/rueidis"
)

type RedisNotifier struct {
	client  rueidis.Client
	channel string
}

func NewRedisNotifier(client rueidis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
	}
}

func (r *RedisNotifier) Publish(ctx context.Context, event TaskEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	cmd := r.client.B().Publish().Channel(r.channel).Message(rueidis.BinaryString(payload)).Build()
	return r.client.Do(ctx, cmd).Error()
}
