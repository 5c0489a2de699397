package usigsig

import (
	"fmt"

	"github.com/abcperf/usig-go"
	"github.com/abcperf/usig-go/usigwire"
)

// Envelope is the signature backend's counter-bound signature: a counter
// paired with a digital signature.
type Envelope struct {
	counter   uint64
	signature []byte
}

// Counter returns the counter this envelope's signature is bound to.
func (e Envelope) Counter() usig.Count {
	return usig.Count(e.counter)
}

// Signature returns the raw signature bytes.
func (e Envelope) Signature() []byte {
	return e.signature
}

// Clone returns a deep copy of e.
func (e Envelope) Clone() Envelope {
	sig := make([]byte, len(e.signature))
	copy(sig, e.signature)
	return Envelope{counter: e.counter, signature: sig}
}

// MarshalBinary returns the deterministic wire form of e. The signed
// message is never included.
func (e Envelope) MarshalBinary() ([]byte, error) {
	return usigwire.EncodeEnvelope(e.counter, e.signature)
}

// UnmarshalBinary restores e from the wire form produced by
// MarshalBinary.
func (e *Envelope) UnmarshalBinary(data []byte) error {
	counter, sig, err := usigwire.DecodeEnvelope(data)
	if err != nil {
		return err
	}
	e.counter = counter
	e.signature = sig
	return nil
}

// String implements fmt.Stringer for debug printing.
func (e Envelope) String() string {
	return fmt.Sprintf("usigsig.Envelope{counter: %d, signature: %x}", e.counter, e.signature)
}

// Attestation is the signature backend's enrollment material: the
// signer's public verification key.
type Attestation struct {
	Alg string
	Key []byte
}
