// Package transport provides an HTTP-backed TransportFactory usable as the
// delegate under a wirebind.Factory. It speaks HTTP/1.1, h2c, and TLS h2.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/net/http2"

	"github.com/wirebind/wirebind"
	"github.com/wirebind/wirebind/errors"
)

var _ wirebind.TransportFactory = (*Factory)(nil)

// Factory builds HTTP transport clients. The zero value is not usable; call
// NewFactory.
type Factory struct {
	opts factoryOptions
}

type FactoryOption func(o *factoryOptions)

type factoryOptions struct {
	tlsConfig *tls.Config
}

// WithTLSConfig sets the TLS configuration used for TLS session protocols.
func WithTLSConfig(cfg *tls.Config) FactoryOption {
	return func(o *factoryOptions) {
		o.tlsConfig = cfg
	}
}

func NewFactory(opt ...FactoryOption) *Factory {
	var opts factoryOptions
	for _, o := range opt {
		o(&opts)
	}
	return &Factory{opts: opts}
}

// SupportedSchemes implements wirebind.TransportFactory: every session
// protocol, with no serialization applied.
func (f *Factory) SupportedSchemes() []wirebind.Scheme {
	protocols := wirebind.SessionProtocols()
	schemes := make([]wirebind.Scheme, 0, len(protocols))
	for _, p := range protocols {
		schemes = append(schemes, wirebind.SchemeOf(wirebind.SerializationNone, p))
	}
	return schemes
}

// NewTransport implements wirebind.TransportFactory.
func (f *Factory) NewTransport(target *url.URL) (wirebind.TransportClient, error) {
	scheme, err := wirebind.ParseScheme(target.Scheme)
	if err != nil {
		return nil, errors.FromError(err).WithCode(errors.InvalidArgument)
	}
	if scheme.Serialization != wirebind.SerializationNone {
		return nil, errors.Newf("transport target %q must not carry a serialization format", target).
			WithCode(errors.InvalidArgument)
	}

	httpScheme := "http"
	if scheme.Protocol.TLS() {
		httpScheme = "https"
	}
	client := &http.Client{Transport: f.roundTripper(scheme.Protocol)}
	return &httpTransport{
		base:   url.URL{Scheme: httpScheme, Host: target.Host},
		client: client,
	}, nil
}

func (f *Factory) roundTripper(p wirebind.SessionProtocol) http.RoundTripper {
	switch p {
	case wirebind.ProtocolH2C:
		// HTTP/2 over cleartext: dial plain TCP but speak h2.
		return &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, network, addr)
			},
		}
	case wirebind.ProtocolH2:
		return &http2.Transport{TLSClientConfig: f.opts.tlsConfig}
	default:
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = f.opts.tlsConfig
		return t
	}
}

var _ wirebind.TransportClient = (*httpTransport)(nil)

type httpTransport struct {
	base   url.URL
	client *http.Client
}

// RoundTrip implements wirebind.TransportClient.
func (t *httpTransport) RoundTrip(ctx context.Context, req *wirebind.TransportRequest) (*wirebind.TransportResponse, error) {
	u := t.base
	u.Path = req.Path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(req.Body))
	if err != nil {
		return nil, errors.FromError(err).WithCode(errors.Internal)
	}
	for k, vs := range req.Header {
		httpReq.Header[k] = vs
	}
	httpReq.Header.Set("Content-Type", req.ContentType)

	httpRes, err := t.client.Do(httpReq)
	if err != nil {
		return nil, errors.FromContextError(err)
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, errors.FromError(err).WithCode(errors.Unavailable)
	}
	if httpRes.StatusCode != http.StatusOK {
		return nil, errors.Newf("remote returned HTTP %d: %s", httpRes.StatusCode, bytes.TrimSpace(body)).
			WithCode(codeForHTTPStatus(httpRes.StatusCode))
	}
	return &wirebind.TransportResponse{Header: httpRes.Header, Body: body}, nil
}

func codeForHTTPStatus(status int) errors.Code {
	switch status {
	case http.StatusBadRequest:
		return errors.InvalidArgument
	case http.StatusUnauthorized:
		return errors.Unauthenticated
	case http.StatusForbidden:
		return errors.PermissionDenied
	case http.StatusNotFound:
		return errors.NotFound
	case http.StatusTooManyRequests:
		return errors.ResourceExhausted
	case http.StatusNotImplemented:
		return errors.Unimplemented
	case http.StatusServiceUnavailable:
		return errors.Unavailable
	case http.StatusGatewayTimeout:
		return errors.DeadlineExceeded
	default:
		return errors.Unknown
	}
}
