package redis

import (
	"context"

	"github.com/idena-network/ecosystem-client/db"
	"github.com/idena-network/ecosystem-client/types"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ecosystem:"

type store struct {
	client *redis.Client
}

func NewStore(redisURL string) (db.Store, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis url")
	}
	client := redis.NewClient(options)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "unable to connect to redis")
	}
	return &store{
		client: client,
	}, nil
}

func (s *store) Get(key string) (string, error) {
	value, err := s.client.Get(context.Background(), keyPrefix+key).Result()
	if err == redis.Nil {
		return "", types.NoDataFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "unable to get %s", key)
	}
	return value, nil
}

// Set stores the value without expiration, the client validates token expiry itself.
func (s *store) Set(key, value string) error {
	if err := s.client.Set(context.Background(), keyPrefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "unable to set %s", key)
	}
	return nil
}

func (s *store) Remove(key string) error {
	if err := s.client.Del(context.Background(), keyPrefix+key).Err(); err != nil {
		return errors.Wrapf(err, "unable to remove %s", key)
	}
	return nil
}
