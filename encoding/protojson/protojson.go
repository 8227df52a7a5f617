package protojson

import (
	"fmt"

	"github.com/wirebind/wirebind/encoding"
	"google.golang.org/protobuf/encoding/protojson"
)

const Name = encoding.CodecNameJSON

func init() {
	encoding.RegisterCodec(&protoJSON{})
}

var _ encoding.Codec = (*protoJSON)(nil)

type protoJSON struct{}

// Marshal implements encoding.Codec.
func (c *protoJSON) Marshal(v any) ([]byte, error) {
	vv := encoding.MessageV2Of(v)
	if vv == nil {
		return nil, fmt.Errorf("protojson: failed to marshal, message is %T, want proto.Message", v)
	}
	return protojson.Marshal(vv)
}

// Unmarshal implements encoding.Codec.
func (c *protoJSON) Unmarshal(data []byte, v any) error {
	vv := encoding.MessageV2Of(v)
	if vv == nil {
		return fmt.Errorf("protojson: failed to unmarshal, message is %T, want proto.Message", v)
	}
	return protojson.Unmarshal(data, vv)
}

// Name implements encoding.Codec.
func (c *protoJSON) Name() string {
	return Name
}
