package wirebind

import (
	"net/url"
	"reflect"
	"strconv"
)

// Endpoint is the network authority a client connects to.
type Endpoint struct {
	Host string
	Port int
}

// EndpointOf derives the endpoint from a target URI's authority.
func EndpointOf(target *url.URL) Endpoint {
	port, _ := strconv.Atoi(target.Port())
	return Endpoint{Host: target.Hostname(), Port: port}
}

// Authority returns "host:port", or just the host when no port is set.
func (e Endpoint) Authority() string {
	if e.Port == 0 {
		return e.Host
	}
	return e.Host + ":" + strconv.Itoa(e.Port)
}

// ClientParams records how a client was built: the target URI, the requested
// client type, the resolved scheme, the endpoint, and the options supplied
// at construction. It is created once per client construction, owned by the
// produced channel, and treated as immutable afterwards.
type ClientParams struct {
	URI        *url.URL
	ClientType reflect.Type
	Scheme     Scheme
	Endpoint   Endpoint
	Options    []ClientOption
}
