package storage_test

import (
	"testing"

	"github.com/muxury/storefront/internal/adapter/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV(t *testing.T) {
	newKV := func(t *testing.T) *storage.KV {
		kv, err := storage.NewKV(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(kv.Close)
		return kv
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		kv := newKV(t)

		require.NoError(t, kv.Save("cart", []byte(`[{"product_id":"1"}]`)))

		value, ok := kv.Load("cart")
		require.True(t, ok)
		assert.JSONEq(t, `[{"product_id":"1"}]`, string(value))
	})

	t.Run("AbsentKey", func(t *testing.T) {
		kv := newKV(t)

		_, ok := kv.Load("missing")
		assert.False(t, ok)
	})

	t.Run("Overwrite", func(t *testing.T) {
		kv := newKV(t)

		require.NoError(t, kv.Save("k", []byte("v1")))
		require.NoError(t, kv.Save("k", []byte("v2")))

		value, ok := kv.Load("k")
		require.True(t, ok)
		assert.Equal(t, "v2", string(value))
	})

	t.Run("Remove", func(t *testing.T) {
		kv := newKV(t)

		require.NoError(t, kv.Save("k", []byte("v")))
		require.NoError(t, kv.Remove("k"))

		_, ok := kv.Load("k")
		assert.False(t, ok)

		require.NoError(t, kv.Remove("k")) // idempotent
	})

	t.Run("SurvivesReopen", func(t *testing.T) {
		dir := t.TempDir()

		kv, err := storage.NewKV(dir)
		require.NoError(t, err)
		require.NoError(t, kv.Save("k", []byte("v")))
		kv.Close()

		reopened, err := storage.NewKV(dir)
		require.NoError(t, err)
		defer reopened.Close()

		value, ok := reopened.Load("k")
		require.True(t, ok)
		assert.Equal(t, "v", string(value))
	})
}
