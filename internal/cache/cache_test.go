package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitrack/internal/events"
)

type fakeRedis struct {
	data    map[string]string
	ttl     map[string]time.Duration
	getErr  error
	deleted []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
		f.deleted = append(f.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type entry struct {
	NoSurat  string `json:"no_surat"`
	Progress int    `json:"progress"`
}

func TestTracking(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := NewTracking(fake, "sitrack:track:", time.Minute)

	assert.Equal(t, "sitrack:track:ns-01", c.Key("  NS-01 "))

	var got entry
	hit, err := c.Get(ctx, "NS-01", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "NS-01", entry{NoSurat: "NS-01", Progress: 50}))
	assert.Equal(t, time.Minute, fake.ttl["sitrack:track:ns-01"])

	hit, err = c.Get(ctx, "ns-01", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 50, got.Progress)

	require.NoError(t, c.Evict(ctx, "Ns-01"))
	hit, err = c.Get(ctx, "NS-01", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestTracking_GetError(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("timeout")
	c := NewTracking(fake, "p:", time.Minute)

	var got entry
	hit, err := c.Get(context.Background(), "x", &got)
	assert.False(t, hit)
	assert.EqualError(t, err, "cache get: timeout")
}

func TestTracking_Evictor(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := NewTracking(fake, "p:", time.Minute)
	ev := c.Evictor()

	require.NoError(t, ev.Publish(ctx, events.Event{Table: events.TableProfiles, Type: events.TypeUpdate, ID: "u-1"}))
	assert.Empty(t, fake.deleted)

	require.NoError(t, ev.Publish(ctx, events.Event{Table: events.TableReports, Type: events.TypeUpdate, ID: "r-1", NoSurat: "NS-9"}))
	assert.Equal(t, []string{"p:ns-9"}, fake.deleted)
}
