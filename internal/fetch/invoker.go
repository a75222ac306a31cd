// Package fetch wraps remote calls and tracks their loading, data and error state.
package fetch

import (
	"context"
	"errors"
	"sync"
)

// ErrInFlight is returned when Run is called while a previous call is still loading.
var ErrInFlight = errors.New("request already in progress")

// Func is a remote call.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Invoker runs one kind of remote call at a time and remembers the outcome of
// the last completed call.
type Invoker[In, Out any] struct {
	fn Func[In, Out]

	mu      sync.Mutex
	loading bool
	data    Out
	hasData bool
	err     error
}

// New returns an Invoker for fn.
func New[In, Out any](fn Func[In, Out]) *Invoker[In, Out] {
	return &Invoker[In, Out]{fn: fn}
}

// Run calls the wrapped function. Data is replaced only on success and Err
// only reflects the most recent call.
func (i *Invoker[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	i.mu.Lock()
	if i.loading {
		i.mu.Unlock()
		var zero Out
		return zero, ErrInFlight
	}
	i.loading = true
	i.err = nil
	i.mu.Unlock()

	out, err := i.fn(ctx, in)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.loading = false
	if err != nil {
		i.err = err
		var zero Out
		return zero, err
	}
	i.data = out
	i.hasData = true
	return out, nil
}

// Loading reports whether a call is in flight.
func (i *Invoker[In, Out]) Loading() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.loading
}

// Data returns the result of the last successful call.
func (i *Invoker[In, Out]) Data() (Out, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.data, i.hasData
}

// Err returns the error of the last call, if it failed.
func (i *Invoker[In, Out]) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}
