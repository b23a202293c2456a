// Package fetch wraps synchronous data stores in cached asynchronous reads
// with an artificial latency, exposing loading/error/data states.
package fetch

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/trezcool/masomo-dashboard/core"
)

const defaultCacheSize = 16

// Func reads the current value for key.
type Func[T any] func(ctx context.Context, key string) (T, error)

type Options struct {
	Latency   time.Duration
	CacheSize int
	Metrics   *Metrics
}

// State is a point-in-time view of a cache key.
type State[T any] struct {
	Data      T
	IsLoading bool
	Err       error
	FetchedAt time.Time
}

// Loaded reports whether data is available for the key.
func (s State[T]) Loaded() bool { return !s.FetchedAt.IsZero() }

type entry[T any] struct {
	data      T
	fetchedAt time.Time
}

// Loader performs at most one fetch per cache key until the key is refetched or
// invalidated. Concurrent first reads of a key share a single fetch.
type Loader[T any] struct {
	name    string
	fetch   Func[T]
	latency time.Duration
	metrics *Metrics
	cache   *lru.Cache[string, entry[T]]
	group   singleflight.Group

	mu      sync.Mutex
	loading map[string]int
	errs    map[string]error
}

func NewLoader[T any](name string, fn Func[T], opts Options) (*Loader[T], error) {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, entry[T]](size)
	if err != nil {
		return nil, errors.Wrap(err, "creating loader cache")
	}
	return &Loader[T]{
		name:    name,
		fetch:   fn,
		latency: opts.Latency,
		metrics: opts.Metrics,
		cache:   cache,
		loading: make(map[string]int),
		errs:    make(map[string]error),
	}, nil
}

func (l *Loader[T]) Name() string { return l.name }

// Get returns the cached value for key, fetching it first if needed.
func (l *Loader[T]) Get(ctx context.Context, key string) (T, error) {
	if e, ok := l.cache.Get(key); ok {
		l.metrics.recordHit(l.name)
		return e.data, nil
	}
	return l.load(ctx, key)
}

// Refetch forces a new fetch of key and replaces the cached value.
func (l *Loader[T]) Refetch(ctx context.Context, key string) (T, error) {
	return l.load(ctx, key)
}

// Invalidate drops key and its last error so the next Get fetches again.
func (l *Loader[T]) Invalidate(key string) {
	l.cache.Remove(key)
	l.mu.Lock()
	delete(l.errs, key)
	l.mu.Unlock()
}

func (l *Loader[T]) State(key string) State[T] {
	var st State[T]
	if e, ok := l.cache.Peek(key); ok {
		st.Data = e.data
		st.FetchedAt = e.fetchedAt
	}
	l.mu.Lock()
	st.IsLoading = l.loading[key] > 0
	st.Err = l.errs[key]
	l.mu.Unlock()
	return st
}

// load runs the fetch detached from the caller's context so that a cancelled
// caller does not fail the other callers sharing the fetch. The caller itself
// stops waiting as soon as ctx is done.
func (l *Loader[T]) load(ctx context.Context, key string) (T, error) {
	ch := l.group.DoChan(key, func() (interface{}, error) {
		return l.doFetch(context.WithoutCancel(ctx), key)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (l *Loader[T]) doFetch(ctx context.Context, key string) (T, error) {
	l.setLoading(key, 1)
	defer l.setLoading(key, -1)

	start := time.Now()
	data, err := l.wait(ctx, key)
	l.metrics.recordFetch(l.name, time.Since(start), err)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.errs[key] = err
		return data, errors.Wrapf(err, "fetching %s[%s]", l.name, key)
	}
	delete(l.errs, key)
	l.cache.Add(key, entry[T]{data: data, fetchedAt: time.Now().UTC()})
	return data, nil
}

func (l *Loader[T]) wait(ctx context.Context, key string) (T, error) {
	if err := core.Wait(ctx, l.latency); err != nil {
		var zero T
		return zero, err
	}
	return l.fetch(ctx, key)
}

func (l *Loader[T]) setLoading(key string, delta int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading[key] += delta
	if l.loading[key] <= 0 {
		delete(l.loading, key)
	}
}
