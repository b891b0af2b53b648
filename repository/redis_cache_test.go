package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(db, "loan:")
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet("loan:emi:1").SetVal(`{"emi":100}`)

		val, ok, err := cache.Get(ctx, "emi:1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"emi":100}`, val)
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet("loan:emi:2").RedisNil()

		val, ok, err := cache.Get(ctx, "emi:2")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, val)
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectGet("loan:emi:3").SetErr(errors.New("connection refused"))

		_, ok, err := cache.Get(ctx, "emi:3")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(db, "loan:")
	ctx := context.Background()

	mock.ExpectSet("loan:schedule:1", "[]", time.Hour).SetVal("OK")
	require.NoError(t, cache.Set(ctx, "schedule:1", "[]", time.Hour))

	mock.ExpectSet("loan:schedule:2", "[]", time.Hour).SetErr(errors.New("readonly"))
	assert.Error(t, cache.Set(ctx, "schedule:2", "[]", time.Hour))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(db, "")

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, cache.Ping(context.Background()))

	mock.ExpectPing().SetErr(errors.New("down"))
	assert.Error(t, cache.Ping(context.Background()))
}
