package core

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Future holds the result of a single dispatched request. It resolves exactly once.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{
		done: make(chan struct{}),
	}
}

// Async runs fn in a new goroutine. A panic inside fn resolves the future with an unknown error.
func Async[T any](fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error(fmt.Sprintf("request panicked: %v", r))
				var zero T
				f.resolve(zero, newNetError(KindUnknown, errors.Errorf("panic: %v", r)))
			}
		}()
		value, err := fn()
		f.resolve(value, err)
	}()
	return f
}

func (f *Future[T]) resolve(value T, err error) bool {
	resolved := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		resolved = true
		close(f.done)
	})
	return resolved
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future resolves or ctx is done. Giving up does not cancel the request.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (c *RestClient) DataRequestAsync(request *http.Request) *Future[[]byte] {
	return Async(func() ([]byte, error) {
		return c.DataRequest(request)
	})
}

func (c *RestClient) RequestAsync(request *http.Request) *Future[struct{}] {
	return Async(func() (struct{}, error) {
		return struct{}{}, c.Request(request)
	})
}
