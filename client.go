// Package wirebind binds caller-registered, strongly-typed client stubs to
// transport-agnostic request/response channels, and composes cross-cutting
// decorators such as logging around the call path.
package wirebind

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Call is a single invocation of a remote method: the method identity plus
// its argument message.
type Call struct {
	Service string
	Method  string
	Message any
}

// Path returns the call's wire path, "/Service/Method".
func (c *Call) Path() string {
	return "/" + c.Service + "/" + c.Method
}

// Channel performs a single call given a method identity and arguments,
// unmarshaling the result into reply. It is bound to exactly one client
// descriptor and is safe for concurrent use; any number of stubs may share
// one Channel.
type Channel interface {
	Invoke(ctx context.Context, call *Call, reply any) error
}

// TransportRequest is the delegate transport's request type: a serialized
// call ready for transmission.
type TransportRequest struct {
	Path        string
	ContentType string
	Header      http.Header
	Body        []byte
}

// TransportResponse is the delegate transport's response type.
type TransportResponse struct {
	Header http.Header
	Body   []byte
}

// TransportClient is the low-level request/response client that actually
// transmits bytes. Implementations must be safe for concurrent use.
type TransportClient interface {
	RoundTrip(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}

// TransportFactory produces TransportClients for transport-only targets. It
// is the external collaborator this layer delegates session handling and
// connection pooling to.
type TransportFactory interface {
	// SupportedSchemes returns the schemes the factory accepts. A factory
	// usable as a delegate must support every session protocol with
	// SerializationNone.
	SupportedSchemes() []Scheme

	// NewTransport returns a client bound to the given transport-only target
	// URI (no serialization suffix in the scheme).
	NewTransport(target *url.URL) (TransportClient, error)
}

type callIDKey struct{}

// ContextWithCallID returns a context carrying a call ID, generating one if
// the context does not have one yet, together with the ID.
func ContextWithCallID(ctx context.Context) (context.Context, string) {
	if id, ok := ctx.Value(callIDKey{}).(string); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return context.WithValue(ctx, callIDKey{}, id), id
}

// CallID returns the call ID carried by ctx, or "" if there is none.
func CallID(ctx context.Context) string {
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}
