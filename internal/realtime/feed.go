// Package realtime fans full-replacement snapshots out to live subscribers.
//
// A Feed re-reads its whole collection from the backing store whenever it is
// refreshed and hands every subscriber the complete list. Subscribers never
// see deltas, so applying a delivery means replacing what they held before.
// When the store cannot be read the subscriber receives an empty list and the
// error, never a panic.
package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/backend"
)

// Loader reads the current snapshot from the store.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Unsubscribe stops deliveries. It is safe to call more than once.
type Unsubscribe func()

type Option func(*options)

type options struct {
	timeout time.Duration
	log     logrus.FieldLogger
	name    string
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func buildOptions(opts []Option) options {
	o := options{timeout: backend.DefaultTimeout, log: logrus.StandardLogger(), name: "feed"}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

type subscriber[T any] struct {
	onData func([]T)
	onErr  func(error)
	active atomic.Bool
}

func (s *subscriber[T]) deliver(items []T, err error) {
	if !s.active.Load() {
		return
	}
	s.onData(items)
	if err != nil && s.onErr != nil {
		s.onErr(err)
	}
}

// Feed is a live query over one collection.
type Feed[T any] struct {
	load Loader[T]
	opts options

	// refreshMu keeps loads and their broadcasts in order.
	refreshMu sync.Mutex

	mu   sync.Mutex
	subs map[uint64]*subscriber[T]
	next uint64
}

func NewFeed[T any](load Loader[T], opts ...Option) *Feed[T] {
	return &Feed[T]{load: load, opts: buildOptions(opts), subs: make(map[uint64]*subscriber[T])}
}

// Subscribe registers onData and delivers the current snapshot before
// returning. onErr may be nil. Callbacks must not call Subscribe or Refresh
// on the same feed synchronously.
func (f *Feed[T]) Subscribe(onData func([]T), onErr func(error)) Unsubscribe {
	id, sub := f.add(onData, onErr)
	f.refreshMu.Lock()
	items, err := f.read(context.Background())
	sub.deliver(clone(items), err)
	f.refreshMu.Unlock()
	return f.unsubscriber(id)
}

// Refresh re-reads the store and pushes the snapshot to every subscriber.
func (f *Feed[T]) Refresh(ctx context.Context) {
	f.refreshMu.Lock()
	defer f.refreshMu.Unlock()

	subs := f.snapshotSubs()
	if len(subs) == 0 {
		return
	}
	items, err := f.read(ctx)
	for _, s := range subs {
		s.deliver(clone(items), err)
	}
}

// Len reports the number of live subscribers.
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *Feed[T]) add(onData func([]T), onErr func(error)) (uint64, *subscriber[T]) {
	sub := &subscriber[T]{onData: onData, onErr: onErr}
	sub.active.Store(true)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.subs[f.next] = sub
	return f.next, sub
}

func (f *Feed[T]) remove(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sub, ok := f.subs[id]; ok {
		sub.active.Store(false)
		delete(f.subs, id)
	}
}

func (f *Feed[T]) unsubscriber(id uint64) Unsubscribe {
	var once sync.Once
	return func() { once.Do(func() { f.remove(id) }) }
}

func (f *Feed[T]) snapshotSubs() []*subscriber[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*subscriber[T], 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out
}

func (f *Feed[T]) read(ctx context.Context) ([]T, error) {
	ctx, cancel := backend.WithTimeout(ctx, f.opts.timeout)
	defer cancel()
	items, err := f.load(ctx)
	if err != nil {
		f.opts.log.WithError(err).WithField("feed", f.opts.name).Warn("snapshot read failed, delivering empty list")
		return []T{}, err
	}
	return items, nil
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
