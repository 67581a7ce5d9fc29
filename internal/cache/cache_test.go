package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetMemoizes(t *testing.T) {
	c := New[int](nil, 0)
	key := Key{ID: "wimbledon"}

	calls := 0
	compute := func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.Get(context.Background(), key, compute)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != 42 {
			t.Errorf("Get() = %d, want 42", got)
		}
	}

	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestGetDistinctKeys(t *testing.T) {
	c := New[string](nil, 0)

	from := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2015, time.December, 31, 0, 0, 0, 0, time.UTC)

	keys := []Key{
		{ID: "wimbledon"},
		{ID: "wimbledon", From: from},
		{ID: "wimbledon", From: from, To: to},
	}

	for i, key := range keys {
		want := key.String()
		got, err := c.Get(context.Background(), key, func(ctx context.Context) (string, error) {
			return want, nil
		})
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != want {
			t.Errorf("key %d: Get() = %q, want %q", i, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestGetDoesNotCacheFailures(t *testing.T) {
	c := New[int](nil, 0)
	key := Key{ID: "flaky"}

	calls := 0
	_, err := c.Get(context.Background(), key, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("source unavailable")
	})
	if err == nil {
		t.Fatal("Get() expected error, got nil")
	}

	got, err := c.Get(context.Background(), key, func(ctx context.Context) (int, error) {
		calls++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 7 {
		t.Errorf("Get() = %d, want 7", got)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2", calls)
	}
}

func TestGetAtMostOnceUnderConcurrency(t *testing.T) {
	c := New[int](nil, 0)
	key := Key{ID: "tour-average"}

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 99, nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]int, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Get(context.Background(), key, compute)
		}(i)
	}

	// Let the goroutines pile up on the key before the computation is
	// allowed to finish.
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: Get() error = %v", i, errs[i])
		}
		if results[i] != 99 {
			t.Errorf("worker %d: Get() = %d, want 99", i, results[i])
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("compute ran %d times, want 1", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	now := time.Date(2016, time.July, 3, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New[int](clock, time.Hour)
	key := Key{ID: "daily"}

	calls := 0
	compute := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	got, err := c.Get(context.Background(), key, compute)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Get() = %d, want 1", got)
	}

	// Within the TTL the entry is served.
	now = now.Add(30 * time.Minute)
	got, _ = c.Get(context.Background(), key, compute)
	if got != 1 {
		t.Errorf("Get() = %d, want 1 before expiry", got)
	}

	// Past the TTL it is recomputed.
	now = now.Add(2 * time.Hour)
	got, _ = c.Get(context.Background(), key, compute)
	if got != 2 {
		t.Errorf("Get() = %d, want 2 after expiry", got)
	}
}

func TestInvalidate(t *testing.T) {
	c := New[int](nil, 0)
	key := Key{ID: "match-1"}

	calls := 0
	compute := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, err := c.Get(context.Background(), key, compute); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	c.Invalidate(key)

	got, err := c.Get(context.Background(), key, compute)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 2 {
		t.Errorf("Get() = %d after Invalidate, want 2", got)
	}
}
