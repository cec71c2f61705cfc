package eventsvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

// publisher is the part of *redis.Client we need.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher broadcasts course events as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	rdb     publisher
	channel string
}

var _ course.Publisher = (*RedisPublisher)(nil)

// NewRedisClient connects to conf.Redis.Address and checks the connection.
func NewRedisClient(ctx context.Context, conf *core.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        conf.Redis.Address,
		Password:    conf.Redis.Password,
		DB:          conf.Redis.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return rdb, nil
}

func NewRedisPublisher(rdb *redis.Client, conf *core.Config) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: conf.Redis.Channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, evt course.Event) error {
	raw, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrap(err, "encoding event")
	}
	return errors.Wrapf(p.rdb.Publish(ctx, p.channel, raw).Err(), "publishing %s", evt.Type)
}
