package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutTake(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "id-1", []byte("payload"), time.Minute))

	got, err := s.Take(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	// 2回目のTakeはnilを返す
	got, err = s.Take(ctx, "id-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_TakeUnknown(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.Take(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	s.now = func() time.Time { return current }

	require.NoError(t, s.Put(ctx, "id-1", []byte("payload"), time.Minute))

	// TTL経過後は取得できない
	current = current.Add(2 * time.Minute)
	got, err := s.Take(ctx, "id-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// 期限切れのTakeでもレコードは消えている
	assert.Zero(t, s.Len())
}

func TestMemoryStore_PutCopiesPayload(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("original")
	require.NoError(t, s.Put(ctx, "id-1", payload, time.Minute))

	// 呼び出し側がバッファを書き換えても保存済みデータは変わらない
	payload[0] = 'X'

	got, err := s.Take(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestMemoryStore_ConcurrentTake(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "id-1", []byte("payload"), time.Minute))

	const goroutines = 32
	var wg sync.WaitGroup
	winners := make(chan []byte, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Take(ctx, "id-1")
			assert.NoError(t, err)
			if got != nil {
				winners <- got
			}
		}()
	}
	wg.Wait()
	close(winners)

	// 取得に成功するのはちょうど1ゴルーチンだけ
	count := 0
	for range winners {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestMemoryStore_ManyEntries(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		require.NoError(t, s.Put(ctx, fmt.Sprintf("id-%d", i), []byte{byte(i)}, time.Minute))
	}
	assert.Equal(t, 100, s.Len())

	got, err := s.Take(ctx, "id-42")
	require.NoError(t, err)
	assert.Equal(t, []byte{42}, got)
	assert.Equal(t, 99, s.Len())
}
