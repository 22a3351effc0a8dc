package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	if _, ok := s.Get(ctx, "player-stats:totals:alice"); ok {
		t.Fatal("unexpected hit on empty store")
	}

	s.Set(ctx, "player-stats:totals:alice", 42)
	value, ok := s.Get(ctx, "player-stats:totals:alice")
	if !ok || value != 42 {
		t.Fatalf("unexpected read: value=%v ok=%v", value, ok)
	}

	s.Delete(ctx, "player-stats:totals:alice")
	if _, ok := s.Get(ctx, "player-stats:totals:alice"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Nanosecond)

	s.Set(ctx, "key", "value")
	time.Sleep(time.Millisecond)

	if _, ok := s.Get(ctx, "key"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)

	s.Set(ctx, "key", "value")
	time.Sleep(time.Millisecond)

	if _, ok := s.Get(ctx, "key"); !ok {
		t.Fatal("expected zero-ttl entry to persist")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	s.Set(ctx, "player-stats:game:alice:game-1", 1)
	s.Set(ctx, "player-stats:totals:alice", 2)
	s.Set(ctx, "team-stats:totals:huckers", 3)

	s.DeletePrefix(ctx, "player-stats:")

	if _, ok := s.Get(ctx, "player-stats:game:alice:game-1"); ok {
		t.Fatal("expected prefix delete to drop game key")
	}
	if _, ok := s.Get(ctx, "player-stats:totals:alice"); ok {
		t.Fatal("expected prefix delete to drop totals key")
	}
	if _, ok := s.Get(ctx, "team-stats:totals:huckers"); !ok {
		t.Fatal("expected other keyspace to survive")
	}
}

func TestStore_GetOrLoad_SharesOneLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	var loads atomic.Int32
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(5 * time.Millisecond)
		return "loaded", nil
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := s.GetOrLoad(ctx, "key", loader)
			if err != nil || value != "loaded" {
				t.Errorf("unexpected result: value=%v err=%v", value, err)
			}
		}()
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	calls := 0
	_, err := s.GetOrLoad(ctx, "key", func(context.Context) (any, error) {
		calls++
		return nil, fmt.Errorf("backend down")
	})
	if err == nil {
		t.Fatal("expected load error")
	}

	value, err := s.GetOrLoad(ctx, "key", func(context.Context) (any, error) {
		calls++
		return "recovered", nil
	})
	if err != nil || value != "recovered" {
		t.Fatalf("unexpected retry result: value=%v err=%v", value, err)
	}
	if calls != 2 {
		t.Fatalf("expected failed load to be retried, calls=%d", calls)
	}
}
