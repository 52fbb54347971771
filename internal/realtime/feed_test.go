package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type listStore struct {
	mu    sync.Mutex
	items []string
	err   error
}

func (s *listStore) load(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *listStore) set(items []string, err error) {
	s.mu.Lock()
	s.items = items
	s.err = err
	s.mu.Unlock()
}

func TestFeedDeliversInitialSnapshot(t *testing.T) {
	store := &listStore{items: []string{"a", "b"}}
	feed := NewFeed[string](store.load)

	var got []string
	unsub := feed.Subscribe(func(items []string) { got = items }, nil)
	defer unsub()

	if len(got) != 2 || got[0] != "a" {
		t.Fatalf("unexpected initial snapshot %v", got)
	}
}

func TestFeedRefreshReplacesSnapshot(t *testing.T) {
	store := &listStore{items: []string{"a"}}
	feed := NewFeed[string](store.load)

	deliveries := 0
	var got []string
	unsub := feed.Subscribe(func(items []string) { deliveries++; got = items }, nil)

	store.set([]string{"b", "c"}, nil)
	feed.Refresh(context.Background())
	if deliveries != 2 || len(got) != 2 || got[0] != "b" {
		t.Fatalf("expected full replacement, got %v after %d deliveries", got, deliveries)
	}

	unsub()
	unsub()
	store.set([]string{"d"}, nil)
	feed.Refresh(context.Background())
	if deliveries != 2 {
		t.Fatalf("delivery after unsubscribe")
	}
	if feed.Len() != 0 {
		t.Fatalf("expected no subscribers, got %d", feed.Len())
	}
}

func TestFeedDegradesToEmptyOnError(t *testing.T) {
	store := &listStore{err: errors.New("connection refused")}
	feed := NewFeed[string](store.load)

	var got []string
	var gotErr error
	unsub := feed.Subscribe(func(items []string) { got = items }, func(err error) { gotErr = err })
	defer unsub()

	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
	if gotErr == nil {
		t.Fatalf("expected error callback")
	}
}

func TestFeedSubscribersGetIndependentCopies(t *testing.T) {
	store := &listStore{items: []string{"a"}}
	feed := NewFeed[string](store.load)

	var first, second []string
	u1 := feed.Subscribe(func(items []string) { first = items }, nil)
	u2 := feed.Subscribe(func(items []string) { second = items }, nil)
	defer u1()
	defer u2()

	feed.Refresh(context.Background())
	first[0] = "mutated"
	if second[0] != "a" {
		t.Fatalf("subscribers share backing array")
	}
}

func TestFeedSetKeysAndCleanup(t *testing.T) {
	data := map[string][]string{"u1": {"x"}, "u2": {"y", "z"}}
	set := NewFeedSet[string](func(ctx context.Context, key string) ([]string, error) {
		return data[key], nil
	})

	var u1got, u2got []string
	un1 := set.Subscribe("u1", func(items []string) { u1got = items }, nil)
	un2 := set.Subscribe("u2", func(items []string) { u2got = items }, nil)
	if len(u1got) != 1 || len(u2got) != 2 {
		t.Fatalf("unexpected snapshots %v %v", u1got, u2got)
	}
	if len(set.Keys()) != 2 {
		t.Fatalf("expected 2 live keys")
	}

	data["u1"] = []string{"x", "w"}
	set.Refresh(context.Background(), "u1")
	if len(u1got) != 2 || len(u2got) != 2 {
		t.Fatalf("refresh leaked across keys: %v %v", u1got, u2got)
	}

	un1()
	un2()
	if len(set.Keys()) != 0 {
		t.Fatalf("expected feeds dropped, got %v", set.Keys())
	}
	set.Refresh(context.Background(), "u1")
}
