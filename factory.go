package wirebind

import (
	"net/url"
	"reflect"

	"github.com/wirebind/wirebind/errors"

	_ "github.com/wirebind/wirebind/encoding/protobinary" // register protobuf codec
	_ "github.com/wirebind/wirebind/encoding/protojson"   // register json codec
)

// Factory builds typed client stubs over a delegate transport factory. One
// factory may build any number of clients; construction is synchronous and
// cheap relative to call latency.
type Factory struct {
	delegate TransportFactory
}

// NewFactory validates that the delegate supports every session protocol
// with no serialization applied and returns a factory over it.
func NewFactory(delegate TransportFactory) (*Factory, error) {
	if delegate == nil {
		return nil, errors.New("nil transport factory").WithCode(errors.InvalidArgument)
	}
	supported := make(map[Scheme]bool)
	for _, s := range delegate.SupportedSchemes() {
		supported[s] = true
	}
	for _, p := range SessionProtocols() {
		if !supported[SchemeOf(SerializationNone, p)] {
			return nil, errors.Newf("%s not supported by transport factory %T", p, delegate).
				WithCode(errors.FailedPrecondition)
		}
	}
	return &Factory{delegate: delegate}, nil
}

// SupportedSchemes returns the set of schemes this factory accepts.
func (f *Factory) SupportedSchemes() []Scheme {
	return SupportedSchemes()
}

// NewClient builds a client of clientType for the given target URI. The
// type must be registered through RegisterFamily. Failures are synchronous:
// an unsupported scheme, an unresolvable client type, or a constructor
// failure; none are retried.
func (f *Factory) NewClient(target string, clientType reflect.Type, opt ...ClientOption) (any, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, errors.FromError(err).WithCode(errors.InvalidArgument)
	}
	scheme, err := ParseScheme(u.Scheme)
	if err != nil || !IsSupportedScheme(scheme) {
		return nil, errors.NewUnsupportedSchemeError(u.Scheme)
	}

	opts := defaultClientOptions
	for _, o := range globalClientOptions {
		o(&opts)
	}
	for _, o := range opt {
		o(&opts)
	}

	ch, err := newChannel(f.delegate, u, clientType, scheme, opts, opt)
	if err != nil {
		return nil, err
	}
	var decorated Channel = ch
	if len(opts.decorators) > 0 {
		decorated = ChainDecorators(opts.decorators...)(ch)
	}
	return resolveStub(clientType, decorated)
}

// NewClient builds a client of type T from the factory. T is resolved the
// same way as Factory.NewClient and must be registered through
// RegisterFamily.
func NewClient[T any](f *Factory, target string, opt ...ClientOption) (T, error) {
	var zero T
	clientType := reflect.TypeOf((*T)(nil)).Elem()
	v, err := f.NewClient(target, clientType, opt...)
	if err != nil {
		return zero, err
	}
	stub, ok := v.(T)
	if !ok {
		return zero, errors.NewStubConstructionError(clientType.String(),
			errors.Newf("constructor produced %T", v))
	}
	return stub, nil
}

// ChannelProvider is implemented by stubs that expose the channel they were
// bound to. Generated stubs embed their channel and satisfy this interface.
type ChannelProvider interface {
	Channel() Channel
}

// ClientBuilderParams reports the construction parameters of a client
// produced by this layer. For any other value, including clients built by
// other factories, it returns (nil, false) rather than failing.
func (f *Factory) ClientBuilderParams(client any) (*ClientParams, bool) {
	provider, ok := client.(ChannelProvider)
	if !ok {
		return nil, false
	}
	ch := provider.Channel()
	for ch != nil {
		if carrier, ok := ch.(builderParamsCarrier); ok {
			return carrier.builderParams(), true
		}
		unwrapper, ok := ch.(ChannelUnwrapper)
		if !ok {
			return nil, false
		}
		ch = unwrapper.Unwrap()
	}
	return nil, false
}
