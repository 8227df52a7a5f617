package wirebind

import (
	"fmt"
	"strings"
)

// SerializationFormat names how call messages are encoded on the wire. Its
// value doubles as the codec name in the encoding registry.
type SerializationFormat string

const (
	// SerializationNone marks a transport-only scheme with no serialization
	// applied.
	SerializationNone SerializationFormat = "none"

	SerializationProto SerializationFormat = "proto"
	SerializationJSON  SerializationFormat = "json"
)

// CodecName returns the name the format's codec is registered under.
func (f SerializationFormat) CodecName() string {
	return string(f)
}

// SessionProtocol names the transport/session protocol of a scheme.
type SessionProtocol string

const (
	ProtocolHTTP  SessionProtocol = "http"
	ProtocolHTTPS SessionProtocol = "https"
	ProtocolH1C   SessionProtocol = "h1c"
	ProtocolH1    SessionProtocol = "h1"
	ProtocolH2C   SessionProtocol = "h2c"
	ProtocolH2    SessionProtocol = "h2"
)

var sessionProtocols = []SessionProtocol{
	ProtocolHTTP, ProtocolHTTPS, ProtocolH1C, ProtocolH1, ProtocolH2C, ProtocolH2,
}

// SessionProtocols returns all session protocols this layer binds clients
// over.
func SessionProtocols() []SessionProtocol {
	out := make([]SessionProtocol, len(sessionProtocols))
	copy(out, sessionProtocols)
	return out
}

// TLS reports whether the protocol runs over TLS.
func (p SessionProtocol) TLS() bool {
	return p == ProtocolHTTPS || p == ProtocolH1 || p == ProtocolH2
}

// Scheme is a (serialization format, session protocol) pair identifying how
// a client communicates. Schemes are immutable and usable as map keys.
type Scheme struct {
	Serialization SerializationFormat
	Protocol      SessionProtocol
}

func SchemeOf(f SerializationFormat, p SessionProtocol) Scheme {
	return Scheme{Serialization: f, Protocol: p}
}

// URIText returns the scheme's URI form: "proto+h2c", or just "h2c" when no
// serialization is applied.
func (s Scheme) URIText() string {
	if s.Serialization == SerializationNone {
		return string(s.Protocol)
	}
	return string(s.Serialization) + "+" + string(s.Protocol)
}

// ParseScheme parses the URI form produced by URIText. A missing
// serialization part parses as SerializationNone.
func ParseScheme(text string) (Scheme, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	serialization := SerializationNone
	protocol := text
	if first, rest, ok := strings.Cut(text, "+"); ok {
		serialization = SerializationFormat(first)
		protocol = rest
	}
	p := SessionProtocol(protocol)
	if !isSessionProtocol(p) {
		return Scheme{}, fmt.Errorf("unknown session protocol %q in scheme %q", protocol, text)
	}
	switch serialization {
	case SerializationNone, SerializationProto, SerializationJSON:
	default:
		return Scheme{}, fmt.Errorf("unknown serialization format %q in scheme %q", serialization, text)
	}
	return SchemeOf(serialization, p), nil
}

func isSessionProtocol(p SessionProtocol) bool {
	for _, known := range sessionProtocols {
		if p == known {
			return true
		}
	}
	return false
}

// enabledSerializations lists the formats included in the supported set.
// JSON is registered as a codec but not enabled here yet; adding it widens
// the set without breaking any invariant.
var enabledSerializations = []SerializationFormat{SerializationProto}

var supportedSchemeSet = func() map[Scheme]bool {
	m := make(map[Scheme]bool, len(sessionProtocols)*len(enabledSerializations))
	for _, p := range sessionProtocols {
		for _, f := range enabledSerializations {
			m[SchemeOf(f, p)] = true
		}
	}
	return m
}()

// SupportedSchemes returns every (serialization, protocol) combination this
// layer produces clients for: the cross product of the session protocols and
// the enabled serialization formats.
func SupportedSchemes() []Scheme {
	out := make([]Scheme, 0, len(supportedSchemeSet))
	for _, p := range sessionProtocols {
		for _, f := range enabledSerializations {
			out = append(out, SchemeOf(f, p))
		}
	}
	return out
}

// IsSupportedScheme reports whether s is in the supported set.
func IsSupportedScheme(s Scheme) bool {
	return supportedSchemeSet[s]
}
