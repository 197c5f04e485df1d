package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/utils"
)

const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	key := sessionKeyPrefix + token
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), TTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, apperrors.ErrUnauthorized
	}
	key := sessionKeyPrefix + token
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, apperrors.ErrUnauthorized
	}
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, apperrors.ErrUnauthorized
	}
	// sliding lifetime
	_ = s.client.Expire(ctx, key, TTL).Err()
	return uint(userID), nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
