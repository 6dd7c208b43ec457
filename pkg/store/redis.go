package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultPrefix is the key prefix of precompiled templates in Redis
const DefaultPrefix = "template:precompiled:"

// Redis stores precompiled templates as plain Redis strings
type Redis struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

// NewRedis creates a Redis store. An empty prefix selects DefaultPrefix.
func NewRedis(client redis.UniversalClient, prefix string, logger *zap.Logger) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *Redis) key(name string) string {
	return s.prefix + name
}

// Save saves a precompiled template
func (s *Redis) Save(ctx context.Context, name, precompiled string) error {
	if err := s.client.Set(ctx, s.key(name), precompiled, 0).Err(); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Debug("precompiled template saved", zap.String("name", name))
	return nil
}

// Load loads a precompiled template
func (s *Redis) Load(ctx context.Context, name string) (string, error) {
	data, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("failed to load template: %w", err)
	}

	return data, nil
}

// Delete deletes a precompiled template
func (s *Redis) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	return nil
}

// Exists checks if a precompiled template is stored
func (s *Redis) Exists(ctx context.Context, name string) (bool, error) {
	result, err := s.client.Exists(ctx, s.key(name)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return result > 0, nil
}

// SetTTL sets a time-to-live for a stored template
func (s *Redis) SetTTL(ctx context.Context, name string, ttl time.Duration) error {
	ok, err := s.client.Expire(ctx, s.key(name), ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to set TTL: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return nil
}

// List returns the sorted names of every stored template
func (s *Redis) List(ctx context.Context) ([]string, error) {
	var names []string

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		name := strings.TrimPrefix(iter.Val(), s.prefix)
		if name != "" {
			names = append(names, name)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	// SCAN may return a key more than once
	sort.Strings(names)
	return slices.Compact(names), nil
}
