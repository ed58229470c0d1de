package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shamaton/msgpack/v2"
)

const (
	keyPrefix = "pathviz:reply:"
	// lockExpiry bounds how long a crashed solver can hold a key.
	lockExpiry = 10 * time.Second
)

// entry is the msgpack form of a reply.
type entry struct {
	Path        [][2]int
	Visited     [][2]int
	WithVisited bool
	Elapsed     float64
}

// RedisResultCache stores solver replies in Redis with a TTL.
type RedisResultCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	expiry time.Duration // lock expiry
}

// NewRedisResultCache initializes a RedisResultCache with the provided Redis client and TTL.
func NewRedisResultCache(client *redis.Client, ttlSeconds int) (i.ResultCache, error) {
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", ttlSeconds)
	}
	c := &RedisResultCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		expiry: lockExpiry,
	}
	pool := goredis.NewPool(client)
	c.locker = redsync.New(pool)
	return c, nil
}

// Get returns the reply stored under key, if any.
func (c *RedisResultCache) Get(ctx context.Context, key uint64) (solver.Reply, bool, error) {
	data, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return solver.Reply{}, false, nil
	}
	if err != nil {
		return solver.Reply{}, false, err
	}

	reply, err := decode(data)
	if err != nil {
		return solver.Reply{}, false, err
	}
	return reply, true, nil
}

// Put stores reply under key until the TTL runs out.
func (c *RedisResultCache) Put(ctx context.Context, key uint64, reply solver.Reply) error {
	data, err := encode(reply)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(key), data, c.ttl).Err()
}

// Lock takes a distributed mutex for key.
func (c *RedisResultCache) Lock(ctx context.Context, key uint64) (func(), error) {
	mutex := c.locker.NewMutex(redisKey(key)+":lock", redsync.WithExpiry(c.expiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func redisKey(key uint64) string {
	return fmt.Sprintf("%s%016x", keyPrefix, key)
}

func encode(reply solver.Reply) ([]byte, error) {
	e := entry{
		Path:        pairs(reply.Path),
		Visited:     pairs(reply.Visited),
		WithVisited: reply.WithVisited,
		Elapsed:     reply.Elapsed,
	}
	data, err := msgpack.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding cached reply: %w", err)
	}
	return data, nil
}

func decode(data []byte) (solver.Reply, error) {
	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return solver.Reply{}, fmt.Errorf("decoding cached reply: %w", err)
	}
	return solver.Reply{
		Path:        points(e.Path),
		Visited:     points(e.Visited),
		WithVisited: e.WithVisited,
		Elapsed:     e.Elapsed,
	}, nil
}

func pairs(ps []grid.Point) [][2]int {
	if ps == nil {
		return nil
	}
	out := make([][2]int, len(ps))
	for i, p := range ps {
		out[i] = [2]int{p.Row, p.Col}
	}
	return out
}

func points(ps [][2]int) []grid.Point {
	if len(ps) == 0 {
		return nil
	}
	out := make([]grid.Point, len(ps))
	for i, p := range ps {
		out[i] = grid.Point{Row: p[0], Col: p[1]}
	}
	return out
}
