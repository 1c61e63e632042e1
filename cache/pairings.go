package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/siherrmann/blender/helper"
	"github.com/siherrmann/blender/model"
)

// keyPrefix namespaces pairing keys so the cache can share a redis db
const keyPrefix = "blender:pairings:"

// PairingCache holds precomputed pairing maps in redis, so repeated
// start-ups skip the O(N^2) pairing precompute. A nil cache is valid
// and behaves as a cache that always misses.
type PairingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPairingCache connects to redis with the given configuration
func NewPairingCache(config *helper.CacheConfiguration) (*PairingCache, error) {
	if config == nil {
		return nil, fmt.Errorf("cache configuration must not be nil")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, helper.NewError("redis ping", err)
	}

	return &PairingCache{client: client, ttl: config.TTL}, nil
}

// Get looks up the cached pairings of a game. A miss is not an error.
func (c *PairingCache) Get(ctx context.Context, gameID string) (model.ScoreMap, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	value, err := c.client.Get(ctx, keyPrefix+gameID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, helper.NewError("redis get", err)
	}

	pairings := model.ScoreMap{}
	if err := json.Unmarshal([]byte(value), &pairings); err != nil {
		return nil, false, helper.NewError("unmarshal pairings", err)
	}
	return pairings, true, nil
}

// Set stores the pairings of a game with the configured TTL
func (c *PairingCache) Set(ctx context.Context, gameID string, pairings model.ScoreMap) error {
	if c == nil || c.client == nil {
		return nil
	}

	value, err := json.Marshal(pairings)
	if err != nil {
		return helper.NewError("marshal pairings", err)
	}
	if err := c.client.Set(ctx, keyPrefix+gameID, value, c.ttl).Err(); err != nil {
		return helper.NewError("redis set", err)
	}
	return nil
}

// Invalidate drops the cached pairings of a game
func (c *PairingCache) Invalidate(ctx context.Context, gameID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, keyPrefix+gameID).Err(); err != nil {
		return helper.NewError("redis del", err)
	}
	return nil
}

// Close closes the redis connection
func (c *PairingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
