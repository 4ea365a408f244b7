package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) Backend {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newRedis(t *testing.T) Backend {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreWithClient(client, "test:")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func backends() map[string]func(t *testing.T) Backend {
	return map[string]func(t *testing.T) Backend{
		"memory": func(t *testing.T) Backend { return NewMemoryStore() },
		"sqlite": newSQLite,
		"redis":  newRedis,
	}
}

func TestStore_Contract(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("absent key is not an error", func(t *testing.T) {
				s := open(t)
				v, ok, err := s.Get(ctx, KeyToken)
				require.NoError(t, err)
				assert.False(t, ok)
				assert.Empty(t, v)
			})

			t.Run("set then get returns exactly the value", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, KeyMerchantExtID, "m-42"))

				v, ok, err := s.Get(ctx, KeyMerchantExtID)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "m-42", v)
			})

			t.Run("empty string is stored, not absent", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, KeyPaymentStatus, ""))

				v, ok, err := s.Get(ctx, KeyPaymentStatus)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Empty(t, v)
			})

			t.Run("set overwrites", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, KeyBranchExtID, "old"))
				require.NoError(t, s.Set(ctx, KeyBranchExtID, "new"))

				v, _, err := s.Get(ctx, KeyBranchExtID)
				require.NoError(t, err)
				assert.Equal(t, "new", v)
			})

			t.Run("remove then get is absent, remove is idempotent", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, KeyToken, "tok"))
				require.NoError(t, s.Remove(ctx, KeyToken))

				_, ok, err := s.Get(ctx, KeyToken)
				require.NoError(t, err)
				assert.False(t, ok)

				require.NoError(t, s.Remove(ctx, KeyToken))
			})

			t.Run("set many and list", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.SetMany(ctx, map[Key]string{
					KeyMerchantTxID:  "tx-1",
					KeyPaymentStatus: "APPROVED",
				}))
				require.NoError(t, s.Set(ctx, KeyToken, "tok"))

				all, err := s.List(ctx)
				require.NoError(t, err)
				assert.Equal(t, map[Key]string{
					KeyMerchantTxID:  "tx-1",
					KeyPaymentStatus: "APPROVED",
					KeyToken:         "tok",
				}, all)
			})

			t.Run("unknown keys are rejected", func(t *testing.T) {
				s := open(t)
				_, _, err := s.Get(ctx, Key("userToken"))
				require.ErrorIs(t, err, ErrUnknownKey)
				require.ErrorIs(t, s.Set(ctx, Key("auth_token"), "x"), ErrUnknownKey)
				require.ErrorIs(t, s.Remove(ctx, Key("@jwt_token")), ErrUnknownKey)
				require.ErrorIs(t, s.SetMany(ctx, map[Key]string{KeyToken: "a", Key("ext_id"): "b"}), ErrUnknownKey)

				_, ok, err := s.Get(ctx, KeyToken)
				require.NoError(t, err)
				assert.False(t, ok, "a rejected batch must not write anything")
			})

			t.Run("concurrent writes to the same key settle on one value", func(t *testing.T) {
				s := open(t)
				var wg sync.WaitGroup
				for _, v := range []string{"a", "b", "c", "d"} {
					wg.Add(1)
					go func(v string) {
						defer wg.Done()
						assert.NoError(t, s.Set(ctx, KeyToken, v))
					}(v)
				}
				wg.Wait()

				v, ok, err := s.Get(ctx, KeyToken)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Contains(t, []string{"a", "b", "c", "d"}, v)
			})
		})
	}
}

func TestKey_Valid(t *testing.T) {
	for _, k := range AllKeys() {
		assert.True(t, k.Valid(), k.String())
	}
	for _, k := range []Key{"", "userToken", "auth_token", "@jwt_token", "ext_id", "TOKEN"} {
		assert.False(t, k.Valid(), k.String())
	}
}

func TestAllKeys_ReturnsCopy(t *testing.T) {
	keys := AllKeys()
	keys[0] = "mutated"
	assert.Equal(t, KeyToken, AllKeys()[0])
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, err := Open(ctx, Options{Driver: DriverMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, b)
	})

	t.Run("sqlite", func(t *testing.T) {
		b, err := Open(ctx, Options{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "x.db")})
		require.NoError(t, err)
		defer b.Close()
		assert.IsType(t, &SQLiteStore{}, b)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		b, err := Open(ctx, Options{Driver: DriverRedis, RedisAddr: mr.Addr()})
		require.NoError(t, err)
		defer b.Close()
		assert.IsType(t, &RedisStore{}, b)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		addr := mr.Addr()
		mr.Close()

		_, err = Open(ctx, Options{Driver: DriverRedis, RedisAddr: addr})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unavailable")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(ctx, Options{Driver: "etcd"})
		require.ErrorIs(t, err, ErrUnknownDriver)
	})
}
