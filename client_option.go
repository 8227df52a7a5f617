package wirebind

import (
	"net/http"

	"github.com/wirebind/wirebind/compress"
	"github.com/wirebind/wirebind/encoding"
)

type ClientOption func(o *clientOptions)

type clientOptions struct {
	decorators          []Decorator
	transportDecorators []TransportDecorator
	header              http.Header
	codec               encoding.Codec
	compressionName     string
	compressionPool     *compress.CompressionPool
	compressMinBytes    int
}

var defaultClientOptions = clientOptions{
	compressMinBytes: 1024,
}

var globalClientOptions []ClientOption

// WithDecorators layers the given channel decorators around every call made
// through the produced client. The first decorator acts first.
func WithDecorators(decorators ...Decorator) ClientOption {
	return func(o *clientOptions) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithTransportDecorators layers decorators around the delegate transport
// client instead of the channel.
func WithTransportDecorators(decorators ...TransportDecorator) ClientOption {
	return func(o *clientOptions) {
		o.transportDecorators = append(o.transportDecorators, decorators...)
	}
}

// WithHeader adds headers sent with every transport request.
func WithHeader(header http.Header) ClientOption {
	return func(o *clientOptions) {
		if o.header == nil {
			o.header = make(http.Header, len(header))
		}
		for k, vs := range header {
			o.header[k] = append(o.header[k], vs...)
		}
	}
}

// WithCodec overrides the codec derived from the target scheme's
// serialization format.
func WithCodec(codec encoding.Codec) ClientOption {
	return func(o *clientOptions) {
		o.codec = codec
	}
}

// WithCompression compresses request bodies with the named pool and accepts
// responses compressed the same way. Bodies smaller than the configured
// minimum (see WithCompressMinBytes) are sent as-is.
func WithCompression(name string, pool *compress.CompressionPool) ClientOption {
	return func(o *clientOptions) {
		o.compressionName = name
		o.compressionPool = pool
	}
}

// WithCompressMinBytes sets the smallest request body that gets compressed.
func WithCompressMinBytes(min int) ClientOption {
	return func(o *clientOptions) {
		o.compressMinBytes = min
	}
}
