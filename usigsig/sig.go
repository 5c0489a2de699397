// Package usigsig implements the asymmetric, digital-signature USIG
// backend for multi-party BFT deployments. The reference instantiation
// is Ed25519.
package usigsig

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/abcperf/usig-go"
)

// SignHalf is the signing half of a signature-backed USIG. It holds the
// monotonic counter and the private key.
//
// Sign and Attest require exclusive access; the half performs no
// internal locking.
type SignHalf struct {
	counter uint64
	signer  Signer
	pub     Verifier
	pubKey  []byte
}

func newSignHalf(signer Signer, pub Verifier, pubKey []byte) *SignHalf {
	return &SignHalf{signer: signer, pub: pub, pubKey: pubKey}
}

// Sign signs big_endian_u64(counter) || message with the private key,
// then advances the counter by one.
func (s *SignHalf) Sign(message usig.MessageSource) (Envelope, error) {
	if s.counter == math.MaxUint64 {
		return Envelope{}, usig.ErrSigningFailed
	}
	counter := s.counter
	s.counter++

	msg := message.Bytes()
	data := make([]byte, 8+len(msg))
	binary.BigEndian.PutUint64(data[:8], counter)
	copy(data[8:], msg)

	sig, err := s.signer.Sign(rand.Reader, data)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", usig.ErrSigningFailed, err)
	}
	return Envelope{counter: counter, signature: sig}, nil
}

// Attest returns a clone of the public verification key. It never
// advances the counter.
func (s *SignHalf) Attest() (Attestation, error) {
	key := make([]byte, len(s.pubKey))
	copy(key, s.pubKey)
	return Attestation{Alg: s.pub.Algorithm(), Key: key}, nil
}

// VerifyHalf is the verifying half of a signature-backed USIG. It holds
// a map of enrolled ReplicaIds to their public key.
//
// Verify may run concurrently with other Verify calls; AddRemoteParty
// requires exclusive access. Both are internally synchronized so the two
// may be called from different goroutines without external locking.
type VerifyHalf struct {
	mu   sync.RWMutex
	keys map[usig.ReplicaId]Verifier
}

func newVerifyHalf() *VerifyHalf {
	return &VerifyHalf{keys: make(map[usig.ReplicaId]Verifier)}
}

// Verify reconstructs big_endian_u64(env.Counter()) || message and checks
// it against env's signature using the key enrolled for id.
func (v *VerifyHalf) Verify(id usig.ReplicaId, message usig.MessageSource, env Envelope) error {
	v.mu.RLock()
	verifier, ok := v.keys[id]
	v.mu.RUnlock()
	if !ok {
		return usig.UnknownIDError(id)
	}

	msg := message.Bytes()
	data := make([]byte, 8+len(msg))
	binary.BigEndian.PutUint64(data[:8], env.counter)
	copy(data[8:], msg)

	if err := verifier.Verify(data, env.signature); err != nil {
		return usig.ErrInvalidSignature
	}
	return nil
}

// AddRemoteParty enrolls att under id, overwriting any existing entry. It
// returns false, leaving state unchanged, if att's algorithm is not
// "Ed25519" or its key is not a 32-byte Ed25519 public key.
func (v *VerifyHalf) AddRemoteParty(id usig.ReplicaId, att Attestation) bool {
	verifier, err := newVerifier(att)
	if err != nil {
		return false
	}

	v.mu.Lock()
	v.keys[id] = verifier
	v.mu.Unlock()
	return true
}

func newVerifier(att Attestation) (Verifier, error) {
	switch att.Alg {
	case "Ed25519":
		if len(att.Key) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("usigsig: invalid Ed25519 key length %d", len(att.Key))
		}
		return &ed25519Verifier{key: ed25519.PublicKey(att.Key)}, nil
	default:
		return nil, fmt.Errorf("usigsig: unsupported algorithm %q", att.Alg)
	}
}

// USIG composes a signature SignHalf and VerifyHalf.
type USIG struct {
	sign   *SignHalf
	verify *VerifyHalf
}

// New returns a USIG using the given signing key and its matching public
// key.
func New(private ed25519.PrivateKey, public ed25519.PublicKey) (*USIG, error) {
	if len(private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("usigsig: invalid Ed25519 private key length %d", len(private))
	}
	if len(public) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("usigsig: invalid Ed25519 public key length %d", len(public))
	}
	signer := &ed25519Signer{key: private}
	verifier := &ed25519Verifier{key: public}
	return &USIG{
		sign:   newSignHalf(signer, verifier, []byte(public)),
		verify: newVerifyHalf(),
	}, nil
}

// NewVerifyHalf returns a standalone, empty VerifyHalf with no matching
// SignHalf. It is meant for processes that only ever verify, never
// sign, under this backend.
func NewVerifyHalf() *VerifyHalf {
	return newVerifyHalf()
}

// NewEd25519 generates a fresh Ed25519 keypair via the system CSPRNG and
// returns a USIG wrapping it.
func NewEd25519() (*USIG, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usig.ErrRemoteAttestationFailed, err)
	}
	return New(priv, pub)
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

// PrivateKeyBytes returns the raw Ed25519 private key backing u. It
// exists for callers (such as usigctl) that need to persist key
// material across process restarts.
func (u *USIG) PrivateKeyBytes() []byte {
	key, ok := u.sign.signer.(*ed25519Signer)
	if !ok {
		return nil
	}
	out := make([]byte, len(key.key))
	copy(out, key.key)
	return out
}

var (
	_ usig.Envelope                         = Envelope{}
	_ usig.SignHalf[Envelope, Attestation]   = (*SignHalf)(nil)
	_ usig.VerifyHalf[Envelope, Attestation] = (*VerifyHalf)(nil)
	_ usig.Usig[Envelope, Attestation]       = (*USIG)(nil)
)
