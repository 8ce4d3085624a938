package scratch

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, 1, KeyTranscription)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, 1, KeyTranscription, "Patient: bonjour"))
	require.NoError(t, store.Set(ctx, 2, KeyTranscription, "autre chat"))

	v, ok, err := store.Get(ctx, 1, KeyTranscription)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Patient: bonjour", v)

	// Пустая строка хранится как значение
	require.NoError(t, store.Set(ctx, 1, KeyPatientCode, ""))
	v, ok, err = store.Get(ctx, 1, KeyPatientCode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)

	require.NoError(t, store.Delete(ctx, 1, KeyTranscription))
	_, ok, err = store.Get(ctx, 1, KeyTranscription)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = store.Get(ctx, 2, KeyTranscription)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "autre chat", v)

	// Удаление отсутствующего ключа не ошибка
	require.NoError(t, store.Delete(ctx, 3, KeyPatientID))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisStore(client, time.Hour))
}

func TestRedisStore_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, 0)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, 9, KeyPatientID, "p-1"))

	assert.Equal(t, DefaultTTL, mr.TTL("psy:scratch:9:patient_id"))

	mr.FastForward(DefaultTTL + time.Second)
	_, ok, err := store.Get(ctx, 9, KeyPatientID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := Connect(context.Background(), addr, "", 0)
	require.NoError(t, err)
	_ = client.Close()

	// У остановленного miniredis адреса уже нет
	mr.Close()
	_, err = Connect(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
