package wirebind

import (
	"context"

	"github.com/wirebind/wirebind/errors"
)

// Future is the completion handle returned by future-flavor stubs. It
// completes exactly once, on the goroutine that ran the underlying call.
type Future struct {
	done  chan struct{}
	reply any
	err   error
}

// InvokeFuture starts the call on its own goroutine and returns immediately.
// The reply container is written before the future completes and must not be
// read until then.
func InvokeFuture(ctx context.Context, ch Channel, call *Call, reply any) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		err := ch.Invoke(ctx, call, reply)
		f.reply = reply
		f.err = err
		close(f.done)
	}()
	return f
}

// Done returns a channel closed when the call completes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Get waits for completion and returns the reply or the call's error. A
// cancelled ctx abandons the wait without cancelling the underlying call;
// cancellation of the call itself is the transport's responsibility.
func (f *Future) Get(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.reply, f.err
	case <-ctx.Done():
		return nil, errors.FromContextError(ctx.Err())
	}
}
