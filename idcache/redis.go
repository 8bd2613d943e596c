// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package idcache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/js-arias/gtdblib/config"
	"github.com/js-arias/gtdblib/tree"
	"github.com/redis/go-redis/v9"
)

// DefaultPort is the port used
// if the Redis host is defined without a port.
const DefaultPort = "6379"

// Redis is a cache backed by a Redis server,
// with a small local cache.
type Redis struct {
	rdb  *redis.Client
	data *cache.Cache
	ttl  time.Duration
}

var _ Cache = (*Redis)(nil)

// NewRedis returns a cache
// using the Redis server of the given configuration.
func NewRedis(ctx context.Context, cfg config.Redis, ttl time.Duration) (*Redis, error) {
	addr := cfg.Host
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, DefaultPort)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Pass,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis %q: %v", addr, err)
	}

	return &Redis{
		rdb: rdb,
		data: cache.New(&cache.Options{
			Redis:      rdb,
			LocalCache: cache.NewTinyLFU(1_000, time.Minute),
		}),
		ttl: ttl,
	}, nil
}

// entry is the stored value.
// Map keys are encoded as slices.
type entry struct {
	Nodes []int
	Left  []string
	Right []string
}

func (r *Redis) Get(ctx context.Context, name string) (tree.IDMap, error) {
	var e entry
	err := r.data.Get(ctx, cacheKey(name), &e)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make(tree.IDMap, len(e.Nodes))
	for i, id := range e.Nodes {
		ids[id] = tree.Pair{Left: e.Left[i], Right: e.Right[i]}
	}
	return ids, nil
}

func (r *Redis) Set(ctx context.Context, name string, ids tree.IDMap) error {
	e := entry{
		Nodes: make([]int, 0, len(ids)),
		Left:  make([]string, 0, len(ids)),
		Right: make([]string, 0, len(ids)),
	}
	for id, p := range ids {
		e.Nodes = append(e.Nodes, id)
		e.Left = append(e.Left, p.Left)
		e.Right = append(e.Right, p.Right)
	}
	return r.data.Set(&cache.Item{
		Ctx:   ctx,
		Key:   cacheKey(name),
		Value: e,
		TTL:   r.ttl,
	})
}

func (r *Redis) Purge(ctx context.Context, name string) error {
	err := r.data.Delete(ctx, cacheKey(name))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}

// Close closes the connection with the server.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
