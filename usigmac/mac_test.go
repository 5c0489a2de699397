package usigmac_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcperf/usig-go"
	"github.com/abcperf/usig-go/usigmac"
	"github.com/abcperf/usig-go/usigtest"
)

func freshKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestConformance(t *testing.T) {
	usigtest.RunConformance(t, usigtest.Factory[usigmac.Envelope, usigmac.Attestation]{
		New: func() usig.Usig[usigmac.Envelope, usigmac.Attestation] {
			u, err := usigmac.TryNew(freshKey(t))
			if err != nil {
				panic(err)
			}
			return u
		},
	})
}

func TestTryNewRejectsEmptyKey(t *testing.T) {
	_, err := usigmac.TryNew(nil)
	assert.ErrorIs(t, err, usigmac.ErrInvalidKeyLength)
}

func TestAddRemotePartyRejectsOversizedKey(t *testing.T) {
	u, err := usigmac.TryNew(freshKey(t))
	require.NoError(t, err)

	oversized := make([]byte, 1<<20)
	ok := u.AddRemoteParty(usig.ReplicaId(1), usigmac.Attestation{Alg: "HMAC-SHA256", Key: oversized})
	assert.False(t, ok)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	u, err := usigmac.TryNew(freshKey(t))
	require.NoError(t, err)

	env, err := u.Sign(usig.RawMessage("payload"))
	require.NoError(t, err)

	data, err := env.MarshalBinary()
	require.NoError(t, err)

	var decoded usigmac.Envelope
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, env.Counter(), decoded.Counter())
	assert.Equal(t, env.Tag(), decoded.Tag())
}

func TestNewWithAlgorithmHMACSHA512(t *testing.T) {
	key := freshKey(t)
	signer, err := usigmac.NewWithAlgorithm(usigmac.AlgorithmHMACSHA512, key)
	require.NoError(t, err)

	att, err := signer.Attest()
	require.NoError(t, err)

	verifier, err := usigmac.NewWithAlgorithm(usigmac.AlgorithmHMACSHA512, key)
	require.NoError(t, err)
	require.True(t, verifier.AddRemoteParty(usig.ReplicaId(0), att))

	env, err := signer.Sign(usig.RawMessage("hello"))
	require.NoError(t, err)
	assert.NoError(t, verifier.Verify(usig.ReplicaId(0), usig.RawMessage("hello"), env))
}
