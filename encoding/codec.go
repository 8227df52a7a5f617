package encoding

import (
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

const (
	CodecNameProto = "proto"
	CodecNameJSON  = "json"
)

// Codec translates between in-memory messages and their wire format.
// Implementations must be safe for concurrent use; a Codec's methods can be
// called from concurrent goroutines.
type Codec interface {
	// Marshal returns the wire format of v.
	Marshal(v any) ([]byte, error)
	// Unmarshal parses the wire format into v.
	Unmarshal(data []byte, v any) error
	// Name returns the name of the Codec implementation. The returned string
	// is used as the content subtype in transmission and must be static.
	Name() string
}

var registeredCodecs = make(map[string]Codec)

// RegisterCodec registers the provided Codec for use by all channels.
//
// The Codec is stored and looked up by the result of its Name() method,
// case-insensitively. This function must only be called during
// initialization time (i.e. in an init() function) and is not thread-safe.
// If multiple Codecs are registered with the same name, the one registered
// last takes effect.
func RegisterCodec(codec Codec) {
	if codec == nil {
		panic("cannot register a nil Codec")
	}
	if codec.Name() == "" {
		panic("cannot register Codec with empty string result for Name()")
	}
	registeredCodecs[strings.ToLower(codec.Name())] = codec
}

// GetCodec returns the registered Codec for the given name, or nil if none
// is registered. The name is expected to be lowercase.
func GetCodec(name string) Codec {
	return registeredCodecs[name]
}

// Names returns the names of all registered codecs.
func Names() []string {
	names := make([]string, 0, len(registeredCodecs))
	for name := range registeredCodecs {
		names = append(names, name)
	}
	return names
}

// MessageV2Of converts v to a proto.Message, accepting both protobuf API
// generations. It returns nil if v is not a protobuf message.
func MessageV2Of(v any) proto.Message {
	switch v := v.(type) {
	case protoadapt.MessageV1:
		return protoadapt.MessageV2Of(v)
	case protoadapt.MessageV2:
		return v
	}
	return nil
}
