// Package memtransport is an in-memory TransportFactory for tests and
// examples: requests are served by an in-process handler function instead of
// a network round trip.
package memtransport

import (
	"context"
	"net/url"

	"github.com/wirebind/wirebind"
)

// Handler serves one transport request.
type Handler func(ctx context.Context, req *wirebind.TransportRequest) (*wirebind.TransportResponse, error)

// Echo replies to every request with its own body.
func Echo() Handler {
	return func(_ context.Context, req *wirebind.TransportRequest) (*wirebind.TransportResponse, error) {
		return &wirebind.TransportResponse{Body: req.Body}, nil
	}
}

var _ wirebind.TransportFactory = (*Factory)(nil)

type Factory struct {
	handler Handler
}

func NewFactory(handler Handler) *Factory {
	return &Factory{handler: handler}
}

// SupportedSchemes implements wirebind.TransportFactory.
func (f *Factory) SupportedSchemes() []wirebind.Scheme {
	protocols := wirebind.SessionProtocols()
	schemes := make([]wirebind.Scheme, 0, len(protocols))
	for _, p := range protocols {
		schemes = append(schemes, wirebind.SchemeOf(wirebind.SerializationNone, p))
	}
	return schemes
}

// NewTransport implements wirebind.TransportFactory.
func (f *Factory) NewTransport(*url.URL) (wirebind.TransportClient, error) {
	return &client{handler: f.handler}, nil
}

var _ wirebind.TransportClient = (*client)(nil)

type client struct {
	handler Handler
}

// RoundTrip implements wirebind.TransportClient.
func (c *client) RoundTrip(ctx context.Context, req *wirebind.TransportRequest) (*wirebind.TransportResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.handler(ctx, req)
}
