// Package usigmac implements the symmetric, MAC-based USIG backend for
// authenticated channels between mutually-trusting parties. The
// reference instantiation is HMAC-SHA-256.
package usigmac

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/abcperf/usig-go"
)

// ErrInvalidKeyLength is returned by TryNew and NewWithAlgorithm when the
// supplied key is empty or longer than maxKeyLength bytes.
var ErrInvalidKeyLength = fmt.Errorf("usigmac: invalid key length")

const maxKeyLength = 4096

// SignHalf is the signing half of a MAC-backed USIG. It holds the
// monotonic counter and the shared key.
//
// Sign and Attest require exclusive access; the half performs no
// internal locking.
type SignHalf struct {
	alg     Algorithm
	key     []byte
	counter uint64
}

// newSignHalf validates key and returns a fresh SignHalf for it.
func newSignHalf(alg Algorithm, key []byte) (*SignHalf, error) {
	if len(key) == 0 || len(key) > maxKeyLength {
		return nil, ErrInvalidKeyLength
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &SignHalf{alg: alg, key: k}, nil
}

// Sign binds message to the current counter, producing an HMAC tag over
// big_endian_u64(counter) || message, and advances the counter by one.
func (s *SignHalf) Sign(message usig.MessageSource) (Envelope, error) {
	if s.counter == math.MaxUint64 {
		return Envelope{}, usig.ErrSigningFailed
	}
	counter := s.counter
	s.counter++

	mac := hmac.New(s.alg.hashFunc().New, s.key)
	var counterBuf [8]byte
	binary.BigEndian.PutUint64(counterBuf[:], counter)
	mac.Write(counterBuf[:])
	mac.Write(message.Bytes())

	return Envelope{counter: counter, tag: mac.Sum(nil)}, nil
}

// Attest returns a clone of the shared key. It never advances the
// counter.
func (s *SignHalf) Attest() (Attestation, error) {
	key := make([]byte, len(s.key))
	copy(key, s.key)
	return Attestation{Alg: s.alg.String(), Key: key}, nil
}

// VerifyHalf is the verifying half of a MAC-backed USIG. It holds a map
// of enrolled ReplicaIds to their shared key.
//
// Verify may run concurrently with other Verify calls; AddRemoteParty
// requires exclusive access. Both are internally synchronized so the two
// may be called from different goroutines without external locking.
type VerifyHalf struct {
	alg  Algorithm
	mu   sync.RWMutex
	keys map[usig.ReplicaId][]byte
}

func newVerifyHalf(alg Algorithm) *VerifyHalf {
	return &VerifyHalf{alg: alg, keys: make(map[usig.ReplicaId][]byte)}
}

// Verify reconstructs big_endian_u64(env.Counter()) || message and checks
// it against env's tag using the key enrolled for id.
func (v *VerifyHalf) Verify(id usig.ReplicaId, message usig.MessageSource, env Envelope) error {
	v.mu.RLock()
	key, ok := v.keys[id]
	v.mu.RUnlock()
	if !ok {
		return usig.UnknownIDError(id)
	}

	mac := hmac.New(v.alg.hashFunc().New, key)
	var counterBuf [8]byte
	binary.BigEndian.PutUint64(counterBuf[:], env.counter)
	mac.Write(counterBuf[:])
	mac.Write(message.Bytes())

	if subtle.ConstantTimeCompare(mac.Sum(nil), env.tag) != 1 {
		return usig.ErrInvalidSignature
	}
	return nil
}

// AddRemoteParty enrolls att under id, overwriting any existing entry. It
// returns false, leaving state unchanged, if att's key has an invalid
// length.
func (v *VerifyHalf) AddRemoteParty(id usig.ReplicaId, att Attestation) bool {
	if len(att.Key) == 0 || len(att.Key) > maxKeyLength {
		return false
	}
	key := make([]byte, len(att.Key))
	copy(key, att.Key)

	v.mu.Lock()
	v.keys[id] = key
	v.mu.Unlock()
	return true
}

// USIG composes a MAC SignHalf and VerifyHalf.
type USIG struct {
	sign   *SignHalf
	verify *VerifyHalf
}

// TryNew returns a fresh USIG keyed with key, using HMAC-SHA-256.
func TryNew(key []byte) (*USIG, error) {
	return NewWithAlgorithm(AlgorithmHMACSHA256, key)
}

// NewWithAlgorithm returns a fresh USIG keyed with key, using the given
// HMAC variant.
func NewWithAlgorithm(alg Algorithm, key []byte) (*USIG, error) {
	sign, err := newSignHalf(alg, key)
	if err != nil {
		return nil, err
	}
	return &USIG{sign: sign, verify: newVerifyHalf(alg)}, nil
}

// NewVerifyHalf returns a standalone, empty VerifyHalf for alg, with no
// matching SignHalf. It is meant for processes that only ever verify,
// never sign, under this backend.
func NewVerifyHalf(alg Algorithm) *VerifyHalf {
	return newVerifyHalf(alg)
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
