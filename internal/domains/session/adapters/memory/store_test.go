package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet_UnknownIDIsAbsent(t *testing.T) {
	store := NewStore()

	cookie, ok, err := store.Get(context.Background(), "never-put")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, cookie)
}

func TestPutThenGet_ReturnsExactValue(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", "token=abc; id=42"))

	cookie, ok, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "token=abc; id=42", cookie)
}

func TestPut_OverwritesExisting(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", "token=old"))
	require.NoError(t, store.Put(ctx, "sid-1", "token=new"))

	cookie, ok, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "token=new", cookie)
}

func TestRemove_IsIdempotent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", "token=abc"))
	require.NoError(t, store.Remove(ctx, "sid-1"))
	require.NoError(t, store.Remove(ctx, "sid-1"))

	_, ok, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.False(t, ok)

	// Removing an id that never existed is also a no-op.
	require.NoError(t, store.Remove(ctx, "ghost"))
}

func TestConcurrentAccess_NoCrossEntryInterference(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("sid-%d", n)
			cookie := fmt.Sprintf("token=%d", n)
			for j := 0; j < 100; j++ {
				require.NoError(t, store.Put(ctx, id, cookie))
				got, ok, err := store.Get(ctx, id)
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, cookie, got)
			}
			require.NoError(t, store.Remove(ctx, id))
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		_, ok, err := store.Get(ctx, fmt.Sprintf("sid-%d", i))
		require.NoError(t, err)
		require.False(t, ok)
	}
}
