package wirebind_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind"
)

func TestSchemeURITextRoundTrip(t *testing.T) {
	tests := []struct {
		text   string
		scheme wirebind.Scheme
	}{
		{"h2c", wirebind.SchemeOf(wirebind.SerializationNone, wirebind.ProtocolH2C)},
		{"proto+h2c", wirebind.SchemeOf(wirebind.SerializationProto, wirebind.ProtocolH2C)},
		{"proto+https", wirebind.SchemeOf(wirebind.SerializationProto, wirebind.ProtocolHTTPS)},
		{"json+http", wirebind.SchemeOf(wirebind.SerializationJSON, wirebind.ProtocolHTTP)},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			parsed, err := wirebind.ParseScheme(tc.text)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.scheme, parsed); diff != "" {
				t.Errorf("ParseScheme(%q) mismatch (-want +got):\n%s", tc.text, diff)
			}
			assert.Equal(t, tc.text, parsed.URIText())
		})
	}
}

func TestParseSchemeRejectsUnknown(t *testing.T) {
	for _, text := range []string{"", "ftp", "proto+ftp", "avro+h2c", "proto+h2c+extra"} {
		t.Run(text, func(t *testing.T) {
			_, err := wirebind.ParseScheme(text)
			assert.Error(t, err)
		})
	}
}

func TestSupportedSchemesCrossProduct(t *testing.T) {
	protocols := wirebind.SessionProtocols()
	schemes := wirebind.SupportedSchemes()

	// One serialization format is enabled at present, so the cross product
	// has exactly one scheme per session protocol.
	require.Len(t, schemes, len(protocols))
	for _, s := range schemes {
		assert.Equal(t, wirebind.SerializationProto, s.Serialization)
		assert.True(t, wirebind.IsSupportedScheme(s), "scheme %v", s)
	}
}

func TestIsSupportedScheme(t *testing.T) {
	assert.True(t, wirebind.IsSupportedScheme(wirebind.SchemeOf(wirebind.SerializationProto, wirebind.ProtocolH2C)))
	assert.False(t, wirebind.IsSupportedScheme(wirebind.SchemeOf(wirebind.SerializationNone, wirebind.ProtocolH2C)))
	assert.False(t, wirebind.IsSupportedScheme(wirebind.SchemeOf(wirebind.SerializationJSON, wirebind.ProtocolH2C)))
}
