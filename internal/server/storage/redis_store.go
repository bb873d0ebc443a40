package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
)

const (
	roomKeyPrefix = "trix:room:"

	// Snapshots outlive any plausible match duration and then expire on
	// their own.
	roomExpiration = 6 * time.Hour
)

// RedisStore persists room snapshots for external observers (admin
// tooling, history collectors). The core never reads them back to make a
// gameplay decision; the in-memory registry stays the sole authority.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRoom writes the room's membership/settings snapshot.
func (rs *RedisStore) SaveRoom(ctx context.Context, info protocol.RoomInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", info.RoomID, err)
	}
	return rs.client.Set(ctx, roomKeyPrefix+info.RoomID, data, roomExpiration).Err()
}

// LoadRoom reads a room snapshot back, redis.Nil when absent.
func (rs *RedisStore) LoadRoom(ctx context.Context, roomID string) (*protocol.RoomInfo, error) {
	data, err := rs.client.Get(ctx, roomKeyPrefix+roomID).Bytes()
	if err != nil {
		return nil, err
	}
	var info protocol.RoomInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", roomID, err)
	}
	return &info, nil
}

// DeleteRoom drops a released room's snapshot.
func (rs *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	return rs.client.Del(ctx, roomKeyPrefix+roomID).Err()
}

// ListRooms returns the ids of every stored snapshot.
func (rs *RedisStore) ListRooms(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, roomKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, key[len(roomKeyPrefix):])
	}
	return ids, nil
}
