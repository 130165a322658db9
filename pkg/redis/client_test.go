package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := Options(Config{})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("password override", func(t *testing.T) {
		opts, err := Options(Config{URL: "redis://:fromurl@cache.internal:6380/2", Password: "override"})
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "override", opts.Password)
		assert.Equal(t, 2, opts.DB)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("tls scheme", func(t *testing.T) {
		opts, err := Options(Config{URL: "rediss://default:pw@cache.example.com:6379"})
		require.NoError(t, err)
		require.NotNil(t, opts.TLSConfig)
		assert.Equal(t, "pw", opts.Password)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := Options(Config{URL: "http://nope"})
		assert.Error(t, err)
	})
}

func TestHealth_NilClient(t *testing.T) {
	assert.Error(t, Health{}.Ping(context.Background()))
}
