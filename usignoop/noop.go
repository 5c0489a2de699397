// Package usignoop provides a trivial USIG backend that performs no
// cryptography: attestations and envelopes carry only the counter. It
// exists for the conformance suite's "individual" topology, where a
// sign half and a verify half are constructed independently and paired
// by the caller, and for local tests that need a USIG without key
// material.
package usignoop

import (
	"math"
	"sync"

	"github.com/abcperf/usig-go"
)

// Envelope carries only the counter; there is no authentication
// artifact to check.
type Envelope struct {
	counter uint64
}

// Counter returns the bound counter.
func (e Envelope) Counter() usig.Count {
	return usig.Count(e.counter)
}

// Attestation is empty: enrollment under this backend only ever records
// that an id is "known".
type Attestation struct{}

// SignHalf is independently constructible via NewSignHalf, matching the
// spec's "individual" conformance topology.
type SignHalf struct {
	counter uint64
}

// NewSignHalf returns a fresh SignHalf with its counter at zero.
func NewSignHalf() *SignHalf {
	return &SignHalf{}
}

// Sign ignores message's content beyond resolving it once (to honor the
// single-read contract) and returns the current counter, advancing it by
// one.
func (s *SignHalf) Sign(message usig.MessageSource) (Envelope, error) {
	if s.counter == math.MaxUint64 {
		return Envelope{}, usig.ErrSigningFailed
	}
	_ = message.Bytes()
	counter := s.counter
	s.counter++
	return Envelope{counter: counter}, nil
}

// Attest returns the empty attestation.
func (s *SignHalf) Attest() (Attestation, error) {
	return Attestation{}, nil
}

// VerifyHalf is independently constructible via NewVerifyHalf.
type VerifyHalf struct {
	mu  sync.RWMutex
	ids map[usig.ReplicaId]struct{}
}

// NewVerifyHalf returns a fresh VerifyHalf with no enrolled ids.
func NewVerifyHalf() *VerifyHalf {
	return &VerifyHalf{ids: make(map[usig.ReplicaId]struct{})}
}

// Verify succeeds iff id has been enrolled; it does not otherwise
// inspect env.
func (v *VerifyHalf) Verify(id usig.ReplicaId, message usig.MessageSource, _ Envelope) error {
	v.mu.RLock()
	_, ok := v.ids[id]
	v.mu.RUnlock()
	if !ok {
		return usig.UnknownIDError(id)
	}
	_ = message.Bytes()
	return nil
}

// AddRemoteParty always succeeds and enrolls id.
func (v *VerifyHalf) AddRemoteParty(id usig.ReplicaId, _ Attestation) bool {
	v.mu.Lock()
	v.ids[id] = struct{}{}
	v.mu.Unlock()
	return true
}

// USIG composes a no-op SignHalf and VerifyHalf.
type USIG struct {
	sign   *SignHalf
	verify *VerifyHalf
}

// New returns a fresh no-op USIG.
func New() *USIG {
	return &USIG{sign: NewSignHalf(), verify: NewVerifyHalf()}
}

// Sign delegates to the signer half.
func (u *USIG) Sign(message usig.MessageSource) (Envelope, error) {
	return u.sign.Sign(message)
}

// Attest delegates to the signer half.
func (u *USIG) Attest() (Attestation, error) {
	return u.sign.Attest()
}

// Verify delegates to the verifier half.
func (u *USIG) Verify(id usig.ReplicaId, message usig.MessageSource, env Envelope) error {
	return u.verify.Verify(id, message, env)
}

// AddRemoteParty delegates to the verifier half.
func (u *USIG) AddRemoteParty(id usig.ReplicaId, att Attestation) bool {
	return u.verify.AddRemoteParty(id, att)
}

// Split decomposes u into independently-owned halves. There is no path
// to rejoin them.
func (u *USIG) Split() (usig.SignHalf[Envelope, Attestation], usig.VerifyHalf[Envelope, Attestation]) {
	return u.sign, u.verify
}

var (
	_ usig.Envelope                         = Envelope{}
	_ usig.SignHalf[Envelope, Attestation]   = (*SignHalf)(nil)
	_ usig.VerifyHalf[Envelope, Attestation] = (*VerifyHalf)(nil)
	_ usig.Usig[Envelope, Attestation]       = (*USIG)(nil)
)
