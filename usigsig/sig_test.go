package usigsig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcperf/usig-go"
	"github.com/abcperf/usig-go/usigsig"
	"github.com/abcperf/usig-go/usigtest"
)

func TestConformance(t *testing.T) {
	usigtest.RunConformance(t, usigtest.Factory[usigsig.Envelope, usigsig.Attestation]{
		New: func() usig.Usig[usigsig.Envelope, usigsig.Attestation] {
			u, err := usigsig.NewEd25519()
			if err != nil {
				panic(err)
			}
			return u
		},
	})
}

func TestAddRemotePartyRejectsMalformedKey(t *testing.T) {
	u, err := usigsig.NewEd25519()
	require.NoError(t, err)

	ok := u.AddRemoteParty(usig.ReplicaId(1), usigsig.Attestation{Alg: "Ed25519", Key: []byte{1, 2, 3}})
	assert.False(t, ok)
}

func TestAddRemotePartyRejectsUnknownAlgorithm(t *testing.T) {
	u, err := usigsig.NewEd25519()
	require.NoError(t, err)

	att, err := u.Attest()
	require.NoError(t, err)
	att.Alg = "RSA-PSS"

	ok := u.AddRemoteParty(usig.ReplicaId(1), att)
	assert.False(t, ok)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	u, err := usigsig.NewEd25519()
	require.NoError(t, err)

	env, err := u.Sign(usig.RawMessage("payload"))
	require.NoError(t, err)

	data, err := env.MarshalBinary()
	require.NoError(t, err)

	var decoded usigsig.Envelope
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, env.Counter(), decoded.Counter())
	assert.Equal(t, env.Signature(), decoded.Signature())
}
