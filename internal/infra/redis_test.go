package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	type estado struct {
		Msg string `json:"msg"`
	}
	var got estado
	assert.ErrorIs(t, GetJSON(ctx, rdb, "k", &got), redis.Nil)

	require.NoError(t, SetJSON(ctx, rdb, "k", estado{Msg: "active"}, time.Minute))
	require.NoError(t, GetJSON(ctx, rdb, "k", &got))
	assert.Equal(t, "active", got.Msg)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, GetJSON(ctx, rdb, "k", &got), redis.Nil)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := NewRedis("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer rdb.Close()

	_, err = NewRedis("not-a-url")
	assert.Error(t, err)
}
