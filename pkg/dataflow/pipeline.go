// Package dataflow provides typed channel stages that honour context
// cancellation. A stage closes its output once its input is drained or the
// context is done.
package dataflow

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Stream is a read-only channel of messages.
type Stream[T any] <-chan T

// From creates a stream from a slice of data.
func From[T any](ctx context.Context, items ...T) Stream[T] {
	out := make(chan T, len(items))
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()
	return out
}

// New wraps an existing channel into a Stream.
func New[T any](c <-chan T) Stream[T] {
	return Stream[T](c)
}

// run executes fn with the configured retries. It returns ctx.Err() when the
// context ends during a backoff wait.
func (cfg *config) run(ctx context.Context, fn func() error) error {
	err := fn()
	for i := 1; err != nil && i <= cfg.maxRetries; i++ {
		if cfg.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.backoff(i)):
			}
		}
		err = fn()
	}
	return err
}

func (cfg *config) handled(err error) bool {
	return cfg.errorHandler != nil && cfg.errorHandler(err)
}

// Map transforms the stream using the provided function. Items whose
// function fails after retries are dropped. Output order is only preserved
// with a single worker.
func Map[In, Out any](ctx context.Context, input Stream[In], fn func(In) (Out, error), opts ...Option) Stream[Out] {
	cfg := defaultConfig(opts)
	out := make(chan Out, cfg.bufferSize)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}
				var res Out
				err := cfg.run(ctx, func() error {
					var err error
					res, err = fn(msg)
					return err
				})
				if err != nil {
					cfg.handled(err)
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

var errSkip = errors.New("skip item")

// Filter keeps items where fn returns true.
func Filter[T any](ctx context.Context, input Stream[T], fn func(T) bool, opts ...Option) Stream[T] {
	return Map(ctx, input, func(msg T) (T, error) {
		if fn(msg) {
			return msg, nil
		}
		var zero T
		return zero, errSkip
	}, append(opts, WithErrorHandler(func(err error) bool {
		return errors.Is(err, errSkip)
	}))...)
}

// Batch groups consecutive items into slices of at most size items. The last
// batch may be shorter. A non-positive size is treated as 1.
func Batch[T any](ctx context.Context, input Stream[T], size int, opts ...Option) Stream[[]T] {
	cfg := defaultConfig(opts)
	if size <= 0 {
		size = 1
	}
	out := make(chan []T, cfg.bufferSize)

	go func() {
		defer close(out)
		batch := make([]T, 0, size)
		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- batch:
				batch = make([]T, 0, size)
				return true
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					flush()
					return
				}
				batch = append(batch, msg)
				if len(batch) == size && !flush() {
					return
				}
			}
		}
	}()
	return out
}

// ForEach executes an action for every item in the stream.
// It blocks until the stream is exhausted or context cancelled, and returns
// the first unhandled error.
func ForEach[T any](ctx context.Context, input Stream[T], fn func(T) error, opts ...Option) error {
	cfg := defaultConfig(opts)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}
				err := cfg.run(ctx, func() error { return fn(msg) })
				if err != nil && !cfg.handled(err) {
					errOnce.Do(func() { firstErr = err })
				}
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return firstErr
}

// Collect drains the stream into a slice.
func Collect[T any](ctx context.Context, input Stream[T]) ([]T, error) {
	var out []T
	err := ForEach(ctx, input, func(item T) error {
		out = append(out, item)
		return nil
	})
	return out, err
}
