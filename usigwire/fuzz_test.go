//go:build go1.18
// +build go1.18

package usigwire_test

import (
	"testing"

	"github.com/abcperf/usig-go/usigwire"
)

func FuzzDecodeEnvelope(f *testing.F) {
	seed, err := usigwire.EncodeEnvelope(3, []byte{1, 2, 3, 4})
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)
	f.Add([]byte{})
	f.Add([]byte{0x82})

	f.Fuzz(func(t *testing.T, data []byte) {
		// DecodeEnvelope must never panic on malformed input, only
		// return an error.
		_, _, _ = usigwire.DecodeEnvelope(data)
	})
}
