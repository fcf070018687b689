package identity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hailsim/internal/domain"
)

// Key layout: one hash of email -> JSON user record, one plain key holding
// the current-user pointer.
const (
	usersKey       = "users"
	currentUserKey = "currentUser"
)

// RedisStore is the default identity store backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore on an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetUser(ctx context.Context, email string) (*domain.User, error) {
	data, err := s.client.HGet(ctx, usersKey, email).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	return &user, nil
}

func (s *RedisStore) SaveUser(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}
	if err := s.client.HSet(ctx, usersKey, user.Email, data).Err(); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *RedisStore) UserExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.client.HExists(ctx, usersKey, email).Result()
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (s *RedisStore) SetCurrentUser(ctx context.Context, email string) error {
	return s.client.Set(ctx, currentUserKey, email, 0).Err()
}

func (s *RedisStore) CurrentUser(ctx context.Context) (string, error) {
	email, err := s.client.Get(ctx, currentUserKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("get current user pointer: %w", err)
	}
	return email, nil
}

func (s *RedisStore) ClearCurrentUser(ctx context.Context) error {
	return s.client.Del(ctx, currentUserKey).Err()
}
