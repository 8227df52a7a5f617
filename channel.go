package wirebind

import (
	"context"
	"net/http"
	"net/url"
	"reflect"

	"github.com/wirebind/wirebind/compress"
	"github.com/wirebind/wirebind/encoding"
	"github.com/wirebind/wirebind/errors"
)

const (
	headerCallID          = "X-Call-Id"
	headerContentEncoding = "Content-Encoding"
)

// builderParamsCarrier is the capability interface reverse lookup tests for.
// Only this layer's channel adapter implements it.
type builderParamsCarrier interface {
	builderParams() *ClientParams
}

// channel adapts the RPC call abstraction onto the delegate transport's
// request/response types. It holds no per-call mutable state; concurrent
// Invoke calls are safe.
type channel struct {
	params    *ClientParams
	codec     encoding.Codec
	transport TransportClient
	opts      clientOptions
}

var _ Channel = (*channel)(nil)
var _ builderParamsCarrier = (*channel)(nil)

func newChannel(delegate TransportFactory, target *url.URL, clientType reflect.Type, scheme Scheme, opts clientOptions, userOpts []ClientOption) (*channel, error) {
	codec := opts.codec
	if codec == nil {
		codec = encoding.GetCodec(scheme.Serialization.CodecName())
	}
	if codec == nil {
		return nil, errors.Newf("no codec registered for serialization format %q", scheme.Serialization).
			WithCode(errors.Unimplemented)
	}

	transport, err := delegate.NewTransport(transportTarget(target, scheme))
	if err != nil {
		return nil, errors.FromError(err).WithCode(errors.Unavailable)
	}
	if len(opts.transportDecorators) > 0 {
		transport = ChainTransportDecorators(opts.transportDecorators...)(transport)
	}

	return &channel{
		params: &ClientParams{
			URI:        target,
			ClientType: clientType,
			Scheme:     scheme,
			Endpoint:   EndpointOf(target),
			Options:    userOpts,
		},
		codec:     codec,
		transport: transport,
		opts:      opts,
	}, nil
}

// transportTarget derives the transport-only sub-URI: same authority, the
// session protocol alone, no serialization suffix. The target was already
// validated, so a failure here is a broken invariant, not a user error.
func transportTarget(target *url.URL, scheme Scheme) *url.URL {
	raw := SchemeOf(SerializationNone, scheme.Protocol).URIText() + "://" + target.Host
	u, err := url.Parse(raw)
	if err != nil {
		errors.InvariantViolationf("cannot derive transport URI from validated target %q: %v", target, err)
	}
	return u
}

// Invoke implements Channel.
func (c *channel) Invoke(ctx context.Context, call *Call, reply any) error {
	if call == nil {
		return errors.New("nil call").WithCode(errors.InvalidArgument)
	}
	body, err := c.codec.Marshal(call.Message)
	if err != nil {
		return errors.FromError(err).WithCode(errors.Internal)
	}

	ctx, id := ContextWithCallID(ctx)
	header := make(http.Header, len(c.opts.header)+2)
	for k, vs := range c.opts.header {
		header[k] = append([]string(nil), vs...)
	}
	header.Set(headerCallID, id)

	if pool := c.opts.compressionPool; pool != nil && len(body) >= c.opts.compressMinBytes {
		compressed, err := pool.Compress(body)
		if err != nil {
			return err
		}
		body = compressed
		header.Set(headerContentEncoding, c.opts.compressionName)
	}

	res, err := c.transport.RoundTrip(ctx, &TransportRequest{
		Path:        call.Path(),
		ContentType: "application/" + c.codec.Name(),
		Header:      header,
		Body:        body,
	})
	if err != nil {
		return errors.FromContextError(err)
	}

	data := res.Body
	if enc := res.Header.Get(headerContentEncoding); enc != "" && enc != compress.CompressionIdentity {
		if c.opts.compressionPool == nil || enc != c.opts.compressionName {
			return errors.Newf("unknown response compression %q", enc).WithCode(errors.Unimplemented)
		}
		if data, err = c.opts.compressionPool.Decompress(data); err != nil {
			return err
		}
	}
	if reply == nil {
		return nil
	}
	if err := c.codec.Unmarshal(data, reply); err != nil {
		return errors.FromError(err).WithCode(errors.Internal)
	}
	return nil
}

func (c *channel) builderParams() *ClientParams {
	return c.params
}
