// Package usigwire provides the deterministic CBOR wire encoding shared
// by every USIG backend's envelope and attestation types. An envelope's
// serialized form carries only its counter and authentication body; the
// signed message never appears in it.
package usigwire

import "github.com/fxamacker/cbor/v2"

// Pre-configured modes for CBOR encoding and decoding, mirroring the
// canonical-CBOR configuration used throughout the COSE ecosystem: sorted
// map keys, no indefinite-length items, and no duplicate map keys on
// decode, so that two encoders never disagree on the byte form of the
// same value.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(err)
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		IntDec:      cbor.IntDecConvertSigned,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes v using the package's canonical encode mode.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v using the package's decode mode.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
