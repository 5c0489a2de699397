package usigwire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcperf/usig-go/usigwire"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	data, err := usigwire.EncodeEnvelope(42, []byte("tag-bytes"))
	require.NoError(t, err)

	counter, body, err := usigwire.DecodeEnvelope(data)
	require.NoError(t, err)
	assert.EqualValues(t, 42, counter)
	assert.Equal(t, []byte("tag-bytes"), body)
}

func TestEnvelopeEncodingIsDeterministic(t *testing.T) {
	a, err := usigwire.EncodeEnvelope(7, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.NoError(t, err)
	b, err := usigwire.EncodeEnvelope(7, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEnvelopeEncodingCarriesNoMessageField(t *testing.T) {
	data, err := usigwire.EncodeEnvelope(1, []byte("body"))
	require.NoError(t, err)

	// A minimal two-element array never serializes to more bytes than
	// counter + body + a handful of CBOR framing bytes.
	assert.LessOrEqual(t, len(data), len("body")+16)
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	_, _, err := usigwire.DecodeEnvelope([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestAttestationRoundTrip(t *testing.T) {
	data, err := usigwire.EncodeAttestation("Ed25519", []byte("pubkey-bytes"))
	require.NoError(t, err)

	alg, key, err := usigwire.DecodeAttestation(data)
	require.NoError(t, err)
	assert.Equal(t, "Ed25519", alg)
	assert.Equal(t, []byte("pubkey-bytes"), key)
}
