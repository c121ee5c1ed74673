package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"nyayamitra/models"

	"github.com/go-redis/redis/v8"
)

const assistantContextPrefix = "assistant:ctx:"

// RedisContextStore holds each user's rolling assistant context.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, userEmail string) (*models.AssistantContext, error) {
	key := assistantContextPrefix + userEmail
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.AssistantContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var assistantCtx models.AssistantContext
	if err := json.Unmarshal([]byte(data), &assistantCtx); err != nil {
		return nil, err
	}
	return &assistantCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, userEmail string, assistantCtx *models.AssistantContext) error {
	key := assistantContextPrefix + userEmail
	b, err := json.Marshal(assistantCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, userEmail string) error {
	key := assistantContextPrefix + userEmail
	return s.client.Del(ctx, key).Err()
}
