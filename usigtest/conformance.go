// Package usigtest is a reusable conformance suite every USIG backend
// must satisfy. It exercises properties P1-P11 and scenarios S1-S6
// against three topologies: a composed USIG, a USIG split into its two
// halves, and (where a backend supports independently-constructed
// halves) an "individual" topology pairing them directly.
package usigtest

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcperf/usig-go"
)

// Factory builds fresh instances of the backend under test.
type Factory[E usig.Envelope, A any] struct {
	// New returns a fresh composed USIG.
	New func() usig.Usig[E, A]

	// NewIndividual, if non-nil, returns a fresh, independently
	// constructed sign/verify pair (the "individual" topology). Leave
	// nil for backends whose halves cannot be constructed without a
	// shared USIG, such as usigmac and usigsig.
	NewIndividual func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])
}

var (
	messageEmpty = usig.RawMessage("")
	message1     = usig.RawMessage("message one")
	message2     = usig.RawMessage("message two")
	replicaID    = usig.ReplicaId(0)
)

// countingMessage wraps a byte slice and counts how many times Bytes was
// called, to verify the single-read contract (P1).
type countingMessage struct {
	data  []byte
	calls *atomic.Int64
}

func newCountingMessage(data []byte) (*countingMessage, *atomic.Int64) {
	var calls atomic.Int64
	return &countingMessage{data: data, calls: &calls}, &calls
}

func (m *countingMessage) Bytes() []byte {
	m.calls.Add(1)
	return m.data
}

// RunConformance registers the full conformance suite as subtests of t.
func RunConformance[E usig.Envelope, A any](t *testing.T, f Factory[E, A]) {
	t.Run("composed", func(t *testing.T) {
		runTopology(t, func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A]) {
			u := f.New()
			return u, u
		})
	})

	t.Run("split", func(t *testing.T) {
		runTopology(t, func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A]) {
			return f.New().Split()
		})
	})

	if f.NewIndividual != nil {
		t.Run("individual", func(t *testing.T) {
			runTopology(t, f.NewIndividual)
		})
	}
}

func runTopology[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	t.Run("single_read_of_message", func(t *testing.T) { testSingleRead(t, newPair) })
	t.Run("valid", func(t *testing.T) { testValid(t, newPair) })
	t.Run("empty_message", func(t *testing.T) { testEmptyMessage(t, newPair) })
	t.Run("double_sign_is_monotone", func(t *testing.T) { testDoubleSign(t, newPair) })
	t.Run("valid_iteration", func(t *testing.T) { testValidIteration(t, newPair) })
	t.Run("attest_after_sign", func(t *testing.T) { testAttestAfterSign(t, newPair) })
	t.Run("enrollment_overwrite", func(t *testing.T) { testEnrollmentOverwrite(t, newPair) })
	t.Run("mixed_enrollment", func(t *testing.T) { testMixed(t, newPair) })
	t.Run("unknown_id", func(t *testing.T) { testUnknownID(t, newPair) })
	t.Run("wrong_id", func(t *testing.T) { testWrongID(t, newPair) })
	t.Run("wrong_key", func(t *testing.T) { testWrongKey(t, newPair) })
	t.Run("wrong_message", func(t *testing.T) { testWrongMessage(t, newPair) })
}

// P1: sign and verify each resolve the message exactly once per call.
func testSingleRead[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	att, err := sign.Attest()
	require.NoError(t, err)
	require.True(t, verify.AddRemoteParty(replicaID, att))

	signMsg, signCalls := newCountingMessage([]byte{})
	env, err := sign.Sign(signMsg)
	require.NoError(t, err)
	assert.EqualValues(t, 1, signCalls.Load())

	verifyMsg, verifyCalls := newCountingMessage([]byte{})
	require.NoError(t, verify.Verify(replicaID, verifyMsg, env))
	assert.EqualValues(t, 1, verifyCalls.Load())
}

// S1: fresh USIG, attest, enroll, sign, verify.
func testValid[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	att, err := sign.Attest()
	require.NoError(t, err)
	require.True(t, verify.AddRemoteParty(replicaID, att))

	env, err := sign.Sign(message1)
	require.NoError(t, err)
	assert.Equal(t, usig.Count(0), env.Counter())
	assert.NoError(t, verify.Verify(replicaID, message1, env))
}

// P4: S1 holds for the empty message.
func testEmptyMessage[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	att, err := sign.Attest()
	require.NoError(t, err)
	require.True(t, verify.AddRemoteParty(replicaID, att))

	env, err := sign.Sign(messageEmpty)
	require.NoError(t, err)
	assert.NoError(t, verify.Verify(replicaID, messageEmpty, env))
}

// S2/P2: counters strictly increase by one across successive signings of
// the same message.
func testDoubleSign[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	att, err := sign.Attest()
	require.NoError(t, err)
	require.True(t, verify.AddRemoteParty(replicaID, att))

	env1, err := sign.Sign(message1)
	require.NoError(t, err)
	env2, err := sign.Sign(message1)
	require.NoError(t, err)

	assert.NoError(t, verify.Verify(replicaID, message1, env1))
	assert.NoError(t, verify.Verify(replicaID, message1, env2))
	assert.Equal(t, env1.Counter().Add(1), env2.Counter())
}

// S3: 100 successive signings of the same message stay strictly
// monotone, and a differing final message still verifies.
func testValidIteration[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	att, err := sign.Attest()
	require.NoError(t, err)
	require.True(t, verify.AddRemoteParty(replicaID, att))

	first, err := sign.Sign(message1)
	require.NoError(t, err)
	initial := first.Counter()
	prev := initial

	for i := 0; i < 100; i++ {
		env, err := sign.Sign(message1)
		require.NoError(t, err)
		assert.Equal(t, prev.Add(1), env.Counter())
		prev = env.Counter()
	}

	env, err := sign.Sign(message2)
	require.NoError(t, err)
	assert.Equal(t, initial.Add(101), env.Counter())
	assert.NoError(t, verify.Verify(replicaID, message2, env))
}

// P10: signing is permitted before any enrollment; subsequent enrollment
// makes prior envelopes verifiable.
func testAttestAfterSign[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	env, err := sign.Sign(message1)
	require.NoError(t, err)

	att, err := sign.Attest()
	require.NoError(t, err)
	require.True(t, verify.AddRemoteParty(replicaID, att))

	assert.NoError(t, verify.Verify(replicaID, message1, env))
}

// S5/P9: re-enrolling an id replaces its verification material;
// envelopes from the previously-enrolled party now fail.
func testEnrollmentOverwrite[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign1, _ := newPair()
	sign2, _ := newPair()
	_, verify3 := newPair()

	sig1, err := sign1.Sign(message1)
	require.NoError(t, err)
	sig2, err := sign2.Sign(message2)
	require.NoError(t, err)

	assertUnknownID(t, verify3.Verify(replicaID, message1, sig1))
	assertUnknownID(t, verify3.Verify(replicaID, message2, sig2))

	att1, err := sign1.Attest()
	require.NoError(t, err)
	require.True(t, verify3.AddRemoteParty(replicaID, att1))

	assert.NoError(t, verify3.Verify(replicaID, message1, sig1))
	assertInvalidSignature(t, verify3.Verify(replicaID, message2, sig2))

	att2, err := sign2.Attest()
	require.NoError(t, err)
	require.True(t, verify3.AddRemoteParty(replicaID, att2))

	assertInvalidSignature(t, verify3.Verify(replicaID, message1, sig1))
	assert.NoError(t, verify3.Verify(replicaID, message2, sig2))

	require.True(t, verify3.AddRemoteParty(replicaID, att1))

	assert.NoError(t, verify3.Verify(replicaID, message1, sig1))
	assertInvalidSignature(t, verify3.Verify(replicaID, message2, sig2))
}

// S6: every cross-combination of (id, message, envelope) verifies iff
// the id and message both match the envelope's producer.
func testMixed[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign1, _ := newPair()
	sign2, _ := newPair()
	_, verify3 := newPair()

	const id1, id2 = usig.ReplicaId(1), usig.ReplicaId(2)

	att1, err := sign1.Attest()
	require.NoError(t, err)
	require.True(t, verify3.AddRemoteParty(id1, att1))

	att2, err := sign2.Attest()
	require.NoError(t, err)
	require.True(t, verify3.AddRemoteParty(id2, att2))

	sig1, err := sign1.Sign(message1)
	require.NoError(t, err)
	sig2, err := sign2.Sign(message2)
	require.NoError(t, err)

	assert.NoError(t, verify3.Verify(id1, message1, sig1))
	assert.NoError(t, verify3.Verify(id2, message2, sig2))

	assertInvalidSignature(t, verify3.Verify(id2, message1, sig1))
	assertInvalidSignature(t, verify3.Verify(id1, message2, sig2))
	assertInvalidSignature(t, verify3.Verify(id1, message2, sig1))
	assertInvalidSignature(t, verify3.Verify(id2, message1, sig2))
	assertInvalidSignature(t, verify3.Verify(id1, message1, sig2))
	assertInvalidSignature(t, verify3.Verify(id2, message2, sig1))
}

// S4/P5: verifying with an unenrolled id fails with UnknownID.
func testUnknownID[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	env, err := sign.Sign(message1)
	require.NoError(t, err)
	assertUnknownID(t, verify.Verify(replicaID, message1, env))
}

// P6: verifying under a different, unenrolled id fails with that id's
// UnknownID.
func testWrongID[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	att, err := sign.Attest()
	require.NoError(t, err)

	const enrolled = usig.ReplicaId(1)
	const other = usig.ReplicaId(0)
	require.True(t, verify.AddRemoteParty(enrolled, att))

	env, err := sign.Sign(message1)
	require.NoError(t, err)
	assert.NoError(t, verify.Verify(enrolled, message1, env))
	assertUnknownID(t, verify.Verify(other, message1, env))
}

// P7: verifying an envelope from an unenrolled producer against a
// different enrolled identity's material fails with InvalidSignature.
func testWrongKey[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign1, _ := newPair()
	sign2, verify2 := newPair()

	att, err := sign2.Attest()
	require.NoError(t, err)
	require.True(t, verify2.AddRemoteParty(replicaID, att))

	env, err := sign1.Sign(message1)
	require.NoError(t, err)
	assertInvalidSignature(t, verify2.Verify(replicaID, message1, env))
}

// P8: verifying under a message different from the one signed fails
// with InvalidSignature.
func testWrongMessage[E usig.Envelope, A any](t *testing.T, newPair func() (usig.SignHalf[E, A], usig.VerifyHalf[E, A])) {
	sign, verify := newPair()
	att, err := sign.Attest()
	require.NoError(t, err)
	require.True(t, verify.AddRemoteParty(replicaID, att))

	env, err := sign.Sign(message1)
	require.NoError(t, err)
	assertInvalidSignature(t, verify.Verify(replicaID, message2, env))
}

func assertUnknownID(t *testing.T, err error) {
	t.Helper()
	assert.ErrorIs(t, err, usig.ErrUnknownID)
}

func assertInvalidSignature(t *testing.T, err error) {
	t.Helper()
	assert.ErrorIs(t, err, usig.ErrInvalidSignature)
}
