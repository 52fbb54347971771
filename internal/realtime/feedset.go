package realtime

import (
	"context"
	"sync"
)

// KeyedLoader reads the snapshot for one key, typically a user id.
type KeyedLoader[T any] func(ctx context.Context, key string) ([]T, error)

// FeedSet keeps one Feed per key, created on first subscription and dropped
// when its last subscriber leaves.
type FeedSet[T any] struct {
	load KeyedLoader[T]
	opts []Option

	mu    sync.Mutex
	feeds map[string]*Feed[T]
}

func NewFeedSet[T any](load KeyedLoader[T], opts ...Option) *FeedSet[T] {
	return &FeedSet[T]{load: load, opts: opts, feeds: make(map[string]*Feed[T])}
}

func (s *FeedSet[T]) Subscribe(key string, onData func([]T), onErr func(error)) Unsubscribe {
	s.mu.Lock()
	feed, ok := s.feeds[key]
	if !ok {
		feed = NewFeed[T](func(ctx context.Context) ([]T, error) { return s.load(ctx, key) }, s.opts...)
		s.feeds[key] = feed
	}
	id, sub := feed.add(onData, onErr)
	s.mu.Unlock()

	feed.refreshMu.Lock()
	items, err := feed.read(context.Background())
	sub.deliver(clone(items), err)
	feed.refreshMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			feed.remove(id)
			if feed.Len() == 0 && s.feeds[key] == feed {
				delete(s.feeds, key)
			}
		})
	}
}

// Refresh pushes a new snapshot to the subscribers of key, if any.
func (s *FeedSet[T]) Refresh(ctx context.Context, key string) {
	s.mu.Lock()
	feed, ok := s.feeds[key]
	s.mu.Unlock()
	if ok {
		feed.Refresh(ctx)
	}
}

// Keys lists the keys that currently have subscribers.
func (s *FeedSet[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.feeds))
	for k := range s.feeds {
		out = append(out, k)
	}
	return out
}
