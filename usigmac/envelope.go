package usigmac

import (
	"fmt"

	"github.com/abcperf/usig-go"
	"github.com/abcperf/usig-go/usigwire"
)

// Envelope is the MAC backend's counter-bound signature: a counter paired
// with an HMAC tag.
type Envelope struct {
	counter uint64
	tag     []byte
}

// Counter returns the counter this envelope's tag is bound to.
func (e Envelope) Counter() usig.Count {
	return usig.Count(e.counter)
}

// Tag returns the raw MAC tag bytes.
func (e Envelope) Tag() []byte {
	return e.tag
}

// Clone returns a deep copy of e.
func (e Envelope) Clone() Envelope {
	tag := make([]byte, len(e.tag))
	copy(tag, e.tag)
	return Envelope{counter: e.counter, tag: tag}
}

// MarshalBinary returns the deterministic wire form of e. The signed
// message is never included.
func (e Envelope) MarshalBinary() ([]byte, error) {
	return usigwire.EncodeEnvelope(e.counter, e.tag)
}

// UnmarshalBinary restores e from the wire form produced by
// MarshalBinary.
func (e *Envelope) UnmarshalBinary(data []byte) error {
	counter, tag, err := usigwire.DecodeEnvelope(data)
	if err != nil {
		return err
	}
	e.counter = counter
	e.tag = tag
	return nil
}

// String implements fmt.Stringer for debug printing.
func (e Envelope) String() string {
	return fmt.Sprintf("usigmac.Envelope{counter: %d, tag: %x}", e.counter, e.tag)
}

// Attestation is the MAC backend's enrollment material: the raw shared
// key, tagged with the algorithm it was derived for.
type Attestation struct {
	Alg string
	Key []byte
}
