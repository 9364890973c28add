package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the session core.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrRecordCorrupt is returned when the stored session blob cannot be decoded.
var ErrRecordCorrupt = errors.New("session record corrupt")

const defaultRedisPrefix = "ga"

// Redis is a [TokenStore] backend over a Redis key. It serves shared-device
// deployments (kiosk gates) where the session must survive the process and
// be reachable by sibling processes on the same terminal.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis describes the newredis operation and its observable behavior.
//
// NewRedis may return an error when input validation, dependency calls, or security checks fail.
// NewRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedis(client *redis.Client, prefix, deviceID string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &Redis{
		client: client,
		key:    fmt.Sprintf("%s:session:%s", prefix, deviceID),
	}
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Redis) Load(ctx context.Context) (Record, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, errors.Join(ErrRedisUnavailable, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, errors.Join(ErrRecordCorrupt, err)
	}
	return record, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Redis) Save(ctx context.Context, record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return errors.Join(ErrRedisUnavailable, err)
	}
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Redis) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Join(ErrRedisUnavailable, err)
	}
	return nil
}
