package wirebind

// A Decorator wraps a Channel to add behavior, such as logging or tracing,
// transparently to callers of the wrapped interface. Decorators may replace
// the context, observe requests and outcomes, or emit telemetry; the
// channels they return must be safe to call concurrently.
type Decorator func(Channel) Channel

// A TransportDecorator does the same for the low-level request/response
// client.
type TransportDecorator func(TransportClient) TransportClient

// ChannelUnwrapper is implemented by decorated channels that can expose
// their delegate. Reverse lookup walks Unwrap chains to reach the channel
// adapter underneath arbitrary decorator stacks.
type ChannelUnwrapper interface {
	Unwrap() Channel
}

// ChainDecorators composes decorators into one. The first decorator in the
// slice becomes the outermost wrapper and therefore acts first; nil entries
// are skipped.
func ChainDecorators(decorators ...Decorator) Decorator {
	return func(ch Channel) Channel {
		for i := len(decorators) - 1; i >= 0; i-- {
			if d := decorators[i]; d != nil {
				ch = d(ch)
			}
		}
		return ch
	}
}

// ChainTransportDecorators composes transport decorators into one, with the
// same ordering as ChainDecorators.
func ChainTransportDecorators(decorators ...TransportDecorator) TransportDecorator {
	return func(tc TransportClient) TransportClient {
		for i := len(decorators) - 1; i >= 0; i-- {
			if d := decorators[i]; d != nil {
				tc = d(tc)
			}
		}
		return tc
	}
}
