package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/logic-master/internal/storage"
)

type fakeClient struct {
	data map[string]string
	err  error
}

func (c *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	if c.err != nil {
		return redis.NewStringResult("", c.err)
	}
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *fakeClient) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	if c.err != nil {
		return redis.NewStatusResult("", c.err)
	}
	c.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{data: make(map[string]string)}
	s := NewKVStore(client)

	_, err := s.Get(ctx, "userProfile")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "userProfile", []byte(`{"id":"a"}`)))
	assert.Contains(t, client.data, "logicmaster:userProfile")

	got, err := s.Get(ctx, "userProfile")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"a"}`), got)
}

func TestKVStore_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	s := NewKVStore(&fakeClient{data: make(map[string]string), err: boom})

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("{}")), boom)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "http://not-redis")
	assert.Error(t, err)
}
