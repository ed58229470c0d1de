package cache

import (
	"testing"
	"time"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryEncoding(t *testing.T) {
	reply := solver.Reply{
		Path:        []grid.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		Visited:     []grid.Point{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}},
		WithVisited: true,
		Elapsed:     0.0025,
	}

	data, err := encode(reply)
	require.NoError(t, err)
	back, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, reply, back)
	assert.Equal(t, solver.PathWithVisited, back.Classify().Kind)

	_, err = decode([]byte{0xc1})
	assert.Error(t, err)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "pathviz:reply:00000000000000ff", redisKey(0xff))
}

func TestNewRejectsZeroTTL(t *testing.T) {
	_, err := NewRedisResultCache(nil, 0)
	assert.Error(t, err)
}

func TestLockExpiryIsIndependentOfTTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	c, err := NewRedisResultCache(client, 3600)
	require.NoError(t, err)
	rc := c.(*RedisResultCache)
	assert.Equal(t, time.Hour, rc.ttl)
	assert.Equal(t, lockExpiry, rc.expiry)
	assert.LessOrEqual(t, rc.expiry, 10*time.Second)
}
