package wirebind

import (
	"context"

	"golang.org/x/net/trace"
)

// TraceDecorator records each call in an x/net/trace event family, visible
// on the /debug/requests page.
func TraceDecorator() Decorator {
	return func(next Channel) Channel {
		return &traceChannel{next: next}
	}
}

var _ Channel = (*traceChannel)(nil)
var _ ChannelUnwrapper = (*traceChannel)(nil)

type traceChannel struct {
	next Channel
}

func (t *traceChannel) Invoke(ctx context.Context, call *Call, reply any) error {
	tr := trace.New("wirebind.call", call.Path())
	defer tr.Finish()

	tr.LazyPrintf("request: %v", call.Message)

	ctx = trace.NewContext(ctx, tr)
	err := t.next.Invoke(ctx, call, reply)
	if err != nil {
		tr.LazyPrintf("%s", err)
		tr.SetError()
		return err
	}
	tr.LazyPrintf("response: %v", reply)

	return nil
}

func (t *traceChannel) Unwrap() Channel {
	return t.next
}
